package shopping

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// ListItem is one line of a generated shopping list. Amount is the running
// sum over every accepted recipe that needs the ingredient.
type ListItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Amount   float64  `json:"amount"`
	Unit     string   `json:"unit"`
	Category string   `json:"category"`
	Recipes  []string `json:"recipes"`
}

// SuggestionReader loads accepted suggestions with their recipes.
type SuggestionReader interface {
	ListAcceptedWithRecipes(householdID string, startDate string, endDate string) ([]models.MealSuggestion, error)
}

// Service generates shopping lists from accepted meal suggestions.
type Service struct {
	suggestions SuggestionReader
}

func NewService(suggestions SuggestionReader) *Service {
	return &Service{suggestions: suggestions}
}

// Generate aggregates the ingredients of every accepted suggestion in the
// date range. Entries merge on lowercased name plus unit, so a "g" row and a
// "dl" row for the same ingredient stay separate; there is no unit
// conversion. Output order is first-encounter order.
func (s *Service) Generate(householdID string, startDate string, endDate string) ([]ListItem, error) {
	suggestions, err := s.suggestions.ListAcceptedWithRecipes(householdID, startDate, endDate)
	if err != nil {
		return nil, common.NewPersistenceError("Kunde inte läsa veckans middagar", err)
	}

	itemsByKey := make(map[string]*ListItem)
	order := make([]string, 0)

	for _, suggestion := range suggestions {
		recipe := suggestion.Recipe
		if recipe == nil {
			continue
		}
		ingredients := recipe.DecodeIngredients()
		if len(ingredients) == 0 {
			continue
		}

		for _, ingredient := range ingredients {
			key := fmt.Sprintf("%s-%s", strings.ToLower(ingredient.Name), ingredient.Unit)

			amount, parseErr := strconv.ParseFloat(strings.TrimSpace(ingredient.Amount), 64)
			if parseErr != nil {
				// Non-numeric amounts ("efter smak", "1/2") contribute
				// nothing to the sum but the line still appears.
				common.LogDebug("non-numeric ingredient amount skipped in sum",
					zap.String("ingredient", ingredient.Name),
					zap.String("amount", ingredient.Amount),
				)
				amount = 0
			}

			if existing, ok := itemsByKey[key]; ok {
				existing.Amount += amount
				existing.Recipes = append(existing.Recipes, recipe.Title)
				continue
			}

			itemsByKey[key] = &ListItem{
				ID:       key,
				Name:     ingredient.Name,
				Amount:   amount,
				Unit:     ingredient.Unit,
				Category: Categorize(ingredient.Name),
				Recipes:  []string{recipe.Title},
			}
			order = append(order, key)
		}
	}

	list := make([]ListItem, 0, len(order))
	for _, key := range order {
		list = append(list, *itemsByKey[key])
	}
	return list, nil
}
