package extract

import (
	"encoding/json"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// extractedRecipe is the field set the model is instructed to return.
type extractedRecipe struct {
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	ImageURL            *string             `json:"image_url"`
	Category            string              `json:"category"`
	Tags                []string            `json:"tags"`
	Difficulty          string              `json:"difficulty"`
	PrepTimeMinutes     *int                `json:"prep_time_minutes"`
	CookTimeMinutes     *int                `json:"cook_time_minutes"`
	Servings            *int                `json:"servings"`
	Ingredients         []models.Ingredient `json:"ingredients"`
	Steps               []models.Step       `json:"steps"`
	SuitableForLunchBox bool                `json:"suitable_for_lunch_box"`
	IsLightMeal         bool                `json:"is_light_meal"`
}

// parseModelResponse strips any Markdown fence from the model output,
// parses it and applies field defaults for anything the model omitted.
func parseModelResponse(raw string) (*extractedRecipe, error) {
	cleaned := common.StripCodeFence(raw)

	var extracted extractedRecipe
	if err := json.Unmarshal([]byte(cleaned), &extracted); err != nil {
		return nil, common.NewParseError("Kunde inte tolka AI-svar som JSON", cleaned, err)
	}

	applyDefaults(&extracted)
	return &extracted, nil
}

func applyDefaults(extracted *extractedRecipe) {
	if extracted.Tags == nil {
		extracted.Tags = []string{}
	}
	if extracted.Ingredients == nil {
		extracted.Ingredients = []models.Ingredient{}
	}
	if extracted.Steps == nil {
		extracted.Steps = []models.Step{}
	}
	if extracted.Difficulty == "" {
		extracted.Difficulty = models.DifficultyMedium
	}
	if extracted.Servings == nil || *extracted.Servings <= 0 {
		servings := 4
		extracted.Servings = &servings
	}
}
