package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
)

type fakeSuggestionReader struct {
	suggestions []models.MealSuggestion
	err         error
}

func (f *fakeSuggestionReader) ListAcceptedWithRecipes(householdID string, startDate string, endDate string) ([]models.MealSuggestion, error) {
	return f.suggestions, f.err
}

func acceptedSuggestion(title string, ingredients []models.Ingredient) models.MealSuggestion {
	return models.MealSuggestion{
		Status: models.SuggestionAccepted,
		Recipe: &models.Recipe{
			Title:       title,
			Ingredients: models.EncodeIngredients(ingredients),
		},
	}
}

func TestGenerateMergesSameNameAndUnit(t *testing.T) {
	reader := &fakeSuggestionReader{suggestions: []models.MealSuggestion{
		acceptedSuggestion("Pannkakor", []models.Ingredient{
			{Name: "Ägg", Amount: "2", Unit: "st"},
		}),
		acceptedSuggestion("Omelett", []models.Ingredient{
			{Name: "ägg", Amount: "2", Unit: "st"},
		}),
	}}

	list, err := NewService(reader).Generate("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.Equal(t, "Ägg", list[0].Name)
	assert.Equal(t, 4.0, list[0].Amount)
	assert.Equal(t, "st", list[0].Unit)
	assert.Equal(t, []string{"Pannkakor", "Omelett"}, list[0].Recipes)
}

func TestGenerateKeepsDifferentUnitsApart(t *testing.T) {
	reader := &fakeSuggestionReader{suggestions: []models.MealSuggestion{
		acceptedSuggestion("Bröd", []models.Ingredient{
			{Name: "Mjöl", Amount: "500", Unit: "g"},
		}),
		acceptedSuggestion("Pannkakor", []models.Ingredient{
			{Name: "Mjöl", Amount: "3", Unit: "dl"},
		}),
	}}

	list, err := NewService(reader).Generate("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, 500.0, list[0].Amount)
	assert.Equal(t, "g", list[0].Unit)
	assert.Equal(t, 3.0, list[1].Amount)
	assert.Equal(t, "dl", list[1].Unit)
}

func TestGenerateNonNumericAmountContributesZero(t *testing.T) {
	reader := &fakeSuggestionReader{suggestions: []models.MealSuggestion{
		acceptedSuggestion("Gryta", []models.Ingredient{
			{Name: "Salt", Amount: "efter smak", Unit: ""},
			{Name: "Salt", Amount: "1", Unit: ""},
		}),
	}}

	list, err := NewService(reader).Generate("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	require.Len(t, list, 1)

	// The non-numeric line still appears but only the numeric one sums.
	assert.Equal(t, 1.0, list[0].Amount)
	assert.Len(t, list[0].Recipes, 2)
}

func TestGenerateSkipsSuggestionsWithoutRecipe(t *testing.T) {
	reader := &fakeSuggestionReader{suggestions: []models.MealSuggestion{
		{Status: models.SuggestionAccepted, Recipe: nil},
		acceptedSuggestion("Soppa", []models.Ingredient{
			{Name: "Lök", Amount: "1", Unit: "st"},
		}),
	}}

	list, err := NewService(reader).Generate("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lök", list[0].Name)
}

func TestGenerateCategorizesAndOrdersByFirstEncounter(t *testing.T) {
	reader := &fakeSuggestionReader{suggestions: []models.MealSuggestion{
		acceptedSuggestion("Tacos", []models.Ingredient{
			{Name: "Nötfärs", Amount: "500", Unit: "g"},
			{Name: "Tomat", Amount: "2", Unit: "st"},
		}),
		acceptedSuggestion("Köttfärssås", []models.Ingredient{
			{Name: "Lök", Amount: "1", Unit: "st"},
			{Name: "Nötfärs", Amount: "400", Unit: "g"},
		}),
	}}

	list, err := NewService(reader).Generate("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "Nötfärs", list[0].Name)
	assert.Equal(t, 900.0, list[0].Amount)
	assert.Equal(t, CategoryMeat, list[0].Category)
	assert.Equal(t, []string{"Tacos", "Köttfärssås"}, list[0].Recipes)

	assert.Equal(t, "Tomat", list[1].Name)
	assert.Equal(t, CategoryVegetables, list[1].Category)

	assert.Equal(t, "Lök", list[2].Name)
	assert.Equal(t, CategoryVegetables, list[2].Category)
}

func TestGenerateEmptyRangeGivesEmptyList(t *testing.T) {
	reader := &fakeSuggestionReader{}

	list, err := NewService(reader).Generate("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
