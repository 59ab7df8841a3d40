package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
)

func openTestDB(t *testing.T) (*RecipeRepository, *PlanRepository) {
	t.Helper()
	database, err := Open(":memory:")
	require.NoError(t, err)
	return NewRecipeRepository(database), NewPlanRepository(database)
}

func TestRecipeCreateAndGet(t *testing.T) {
	recipes, _ := openTestDB(t)

	recipe := models.Recipe{
		Title:       "Kycklinggryta",
		Category:    models.CategoryMain,
		Ingredients: models.EncodeIngredients([]models.Ingredient{{Name: "Kyckling", Amount: "500", Unit: "g"}}),
		Steps:       models.EncodeSteps([]models.Step{{Instruction: "Bryn"}}),
	}
	require.NoError(t, recipes.Create(&recipe))
	require.NotEmpty(t, recipe.ID)

	loaded, found, err := recipes.GetByID(recipe.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Kycklinggryta", loaded.Title)
	require.Len(t, loaded.DecodeIngredients(), 1)

	_, found, err = recipes.GetByID("saknas")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRecipeListOrderAndLimit(t *testing.T) {
	recipes, _ := openTestDB(t)

	for _, title := range []string{"Första", "Andra", "Tredje"} {
		require.NoError(t, recipes.Create(&models.Recipe{Title: title}))
	}

	all, err := recipes.List(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := recipes.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSaveRatingUpserts(t *testing.T) {
	recipes, _ := openTestDB(t)

	recipe := models.Recipe{Title: "Tacos"}
	require.NoError(t, recipes.Create(&recipe))

	first := models.RecipeRating{UserID: "u1", RecipeID: recipe.ID, Rating: 2}
	require.NoError(t, recipes.SaveRating(&first))

	second := models.RecipeRating{UserID: "u1", RecipeID: recipe.ID, Rating: 5}
	require.NoError(t, recipes.SaveRating(&second))

	ratings, err := recipes.ListRatingsSince(time.Now().AddDate(0, 0, -1))
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Rating)
}

func TestUpsertDayPlanReplacesSameDate(t *testing.T) {
	_, plans := openTestDB(t)

	home := models.EatingHome
	out := models.EatingOut
	first := models.DayPlan{HouseholdID: "h1", UserID: "u1", Date: "2026-02-09", EatingStatus: &home}
	require.NoError(t, plans.UpsertDayPlan(&first))

	second := models.DayPlan{HouseholdID: "h1", UserID: "u1", Date: "2026-02-09", EatingStatus: &out}
	require.NoError(t, plans.UpsertDayPlan(&second))

	listed, err := plans.ListDayPlans("h1", "2026-02-09", "2026-02-09")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].EatingStatus)
	assert.Equal(t, models.EatingOut, *listed[0].EatingStatus)
}

func TestListDayPlansRangeIsInclusive(t *testing.T) {
	_, plans := openTestDB(t)

	for _, date := range []string{"2026-02-08", "2026-02-09", "2026-02-15", "2026-02-16"} {
		require.NoError(t, plans.UpsertDayPlan(&models.DayPlan{HouseholdID: "h1", Date: date}))
	}

	listed, err := plans.ListDayPlans("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "2026-02-09", listed[0].Date)
	assert.Equal(t, "2026-02-15", listed[1].Date)
}

func TestSuggestionLifecycle(t *testing.T) {
	recipes, plans := openTestDB(t)

	recipe := models.Recipe{
		Title:       "Lax i ugn",
		Ingredients: models.EncodeIngredients([]models.Ingredient{{Name: "Lax", Amount: "600", Unit: "g"}}),
	}
	require.NoError(t, recipes.Create(&recipe))

	inserted, err := plans.InsertSuggestions([]models.MealSuggestion{{
		HouseholdID: "h1",
		Date:        "2026-02-10",
		RecipeID:    recipe.ID,
		Status:      models.SuggestionSuggested,
		MealType:    "dinner",
	}})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	require.NotEmpty(t, inserted[0].ID)

	// Not yet accepted: invisible to the shopping and reminder paths.
	accepted, err := plans.ListAcceptedWithRecipes("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	assert.Empty(t, accepted)

	updated, found, err := plans.UpdateSuggestionStatus(inserted[0].ID, models.SuggestionAccepted)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.SuggestionAccepted, updated.Status)

	accepted, err = plans.ListAcceptedWithRecipes("h1", "2026-02-09", "2026-02-15")
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.NotNil(t, accepted[0].Recipe)
	assert.Equal(t, "Lax i ugn", accepted[0].Recipe.Title)

	suggestion, found, err := plans.FindAcceptedForDate("h1", "2026-02-10")
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, suggestion.Recipe)

	_, found, err = plans.FindAcceptedForDate("h1", "2026-02-11")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateSuggestionStatusMissing(t *testing.T) {
	_, plans := openTestDB(t)

	_, found, err := plans.UpdateSuggestionStatus("saknas", models.SuggestionAccepted)
	require.NoError(t, err)
	assert.False(t, found)
}
