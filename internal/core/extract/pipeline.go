package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

const urlSystemPrompt = `Du är en expert på att extrahera receptinformation från HTML.
Extrahera följande fält från receptet:
- title (string)
- description (string, kort sammanfattning)
- image_url (string, hitta första relevanta receptbilden, ofta i og:image eller recipe-bild)
- category (string: "förrätt", "varmrätt", "dessert", "bakverk", "dryck")
- tags (array: ex ["low-carb", "vegetariskt", "snabb", "helg"])
- difficulty (string: "enkel", "medel", "avancerad")
- prep_time_minutes (number)
- cook_time_minutes (number)
- servings (number)
- ingredients (array av {name, amount, unit})
- steps (array av strängar med instruktioner)
- suitable_for_lunch_box (boolean)
- is_light_meal (boolean)

Svara ENDAST med valid JSON utan markdown-formatering eller extra text.`

const imageSystemPrompt = `Du är en expert på att extrahera receptinformation från bilder.
Analysera bilden/bilderna och extrahera receptinformation.
Om det är flera bilder, kombinera informationen till ETT recept.

Extrahera följande fält:
- title (string)
- description (string, kort sammanfattning)
- category (string: "förrätt", "varmrätt", "dessert", "bakverk", "dryck")
- tags (array: ex ["low-carb", "vegetariskt", "snabb", "helg"])
- difficulty (string: "enkel", "medel", "avancerad")
- prep_time_minutes (number eller null)
- cook_time_minutes (number eller null)
- servings (number eller null)
- ingredients (array av {name, amount, unit})
- steps (array av strängar med instruktioner)
- suitable_for_lunch_box (boolean)
- is_light_meal (boolean)

Om något saknas i bilden, gissa rimligt baserat på recepttypen.
Svara ENDAST med valid JSON utan markdown-formatering.`

// imageSourceName marks recipes created from uploaded photos.
const imageSourceName = "Bilduppladdning"

// ModelClient is the language model collaborator.
type ModelClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error)
	CompleteWithImages(ctx context.Context, systemPrompt string, userPrompt string, imageDataURLs []string, maxTokens int) (string, error)
}

// RecipeWriter persists extracted recipes.
type RecipeWriter interface {
	Create(recipe *models.Recipe) error
}

// ObjectStore persists image bytes and resolves their public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) error
	PublicURL(objectPath string) string
}

// Fetcher loads a bounded page body for prompting.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// ImageInput is one uploaded photo.
type ImageInput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Pipeline turns a URL or a set of photos into a persisted recipe.
type Pipeline struct {
	model     ModelClient
	recipes   RecipeWriter
	store     ObjectStore
	fetcher   Fetcher
	maxImages int
}

func NewPipeline(model ModelClient, recipes RecipeWriter, store ObjectStore, fetcher Fetcher, maxImages int) *Pipeline {
	return &Pipeline{
		model:     model,
		recipes:   recipes,
		store:     store,
		fetcher:   fetcher,
		maxImages: maxImages,
	}
}

// FromURL extracts a recipe from a web page and persists it.
func (p *Pipeline) FromURL(ctx context.Context, rawURL string) (*models.RecipeView, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, common.NewValidationError("URL krävs")
	}

	pageURL := NormalizeURL(rawURL)

	html, err := p.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf("Extrahera recept från denna HTML:\n\n%s", html)
	response, err := p.model.Complete(ctx, urlSystemPrompt, userPrompt, 0)
	if err != nil {
		return nil, err
	}

	extracted, err := parseModelResponse(response)
	if err != nil {
		return nil, err
	}

	sourceName := SourceName(pageURL)
	recipe := p.buildRecipe(extracted)
	recipe.SourceURL = &pageURL
	recipe.SourceName = &sourceName
	recipe.ImageURL = extracted.ImageURL

	if err := p.recipes.Create(recipe); err != nil {
		return nil, common.NewPersistenceError("Kunde inte spara receptet", err)
	}

	view := recipe.View()
	return &view, nil
}

// FromImages extracts a recipe from 1-4 photos and persists it. The main
// image upload is best-effort; a storage failure degrades to a recipe
// without an image, never a failed extraction.
func (p *Pipeline) FromImages(ctx context.Context, images []ImageInput, mainImageIndex int) (*models.RecipeView, error) {
	if len(images) == 0 {
		return nil, common.NewValidationError("Minst en bild krävs")
	}
	if len(images) > p.maxImages {
		return nil, common.NewValidationError(fmt.Sprintf("Max %d bilder", p.maxImages))
	}
	if mainImageIndex < 0 || mainImageIndex >= len(images) {
		mainImageIndex = 0
	}

	dataURLs := make([]string, 0, len(images))
	for _, img := range images {
		contentType := img.ContentType
		if contentType == "" {
			contentType = "image/jpeg"
		}
		dataURLs = append(dataURLs, fmt.Sprintf("data:%s;base64,%s",
			contentType, base64.StdEncoding.EncodeToString(img.Data)))
	}

	response, err := p.model.CompleteWithImages(ctx, imageSystemPrompt,
		"Extrahera receptet från dessa bilder:", dataURLs, 0)
	if err != nil {
		return nil, err
	}

	extracted, err := parseModelResponse(response)
	if err != nil {
		return nil, err
	}

	recipe := p.buildRecipe(extracted)
	sourceName := imageSourceName
	recipe.SourceName = &sourceName
	recipe.ImageURL = p.uploadMainImage(ctx, images[mainImageIndex])

	if err := p.recipes.Create(recipe); err != nil {
		return nil, common.NewPersistenceError("Kunde inte spara receptet", err)
	}

	view := recipe.View()
	return &view, nil
}

func (p *Pipeline) buildRecipe(extracted *extractedRecipe) *models.Recipe {
	return &models.Recipe{
		Title:               extracted.Title,
		Description:         extracted.Description,
		Category:            extracted.Category,
		Tags:                models.StringList(extracted.Tags),
		Difficulty:          extracted.Difficulty,
		PrepTimeMinutes:     extracted.PrepTimeMinutes,
		CookTimeMinutes:     extracted.CookTimeMinutes,
		Servings:            *extracted.Servings,
		Ingredients:         models.EncodeIngredients(extracted.Ingredients),
		Steps:               models.EncodeSteps(extracted.Steps),
		SuitableForLunchBox: extracted.SuitableForLunchBox,
		IsLightMeal:         extracted.IsLightMeal,
	}
}

// uploadMainImage stores the representative photo and returns its public
// URL, or nil when storage is unavailable or failing.
func (p *Pipeline) uploadMainImage(ctx context.Context, img ImageInput) *string {
	if p.store == nil {
		return nil
	}

	ext := strings.TrimPrefix(path.Ext(img.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectPath := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)

	if err := p.store.Upload(ctx, objectPath, img.Data, contentType); err != nil {
		common.LogError("image upload failed, saving recipe without image",
			zap.Error(err),
			zap.String("path", objectPath),
		)
		return nil
	}

	url := p.store.PublicURL(objectPath)
	return &url
}
