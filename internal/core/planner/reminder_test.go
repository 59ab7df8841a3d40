package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
)

type fakeSuggestionFinder struct {
	suggestion models.MealSuggestion
	found      bool
	err        error
}

func (f *fakeSuggestionFinder) FindAcceptedForDate(householdID string, date string) (models.MealSuggestion, bool, error) {
	return f.suggestion, f.found, f.err
}

func acceptedDinner(title string, ingredients []models.Ingredient) models.MealSuggestion {
	return models.MealSuggestion{
		Status: models.SuggestionAccepted,
		Recipe: &models.Recipe{
			Title:       title,
			Ingredients: models.EncodeIngredients(ingredients),
		},
	}
}

func TestReminderCheckMeatDinner(t *testing.T) {
	finder := &fakeSuggestionFinder{
		suggestion: acceptedDinner("Kycklinggryta", []models.Ingredient{
			{Name: "Kycklingfilé", Amount: "500", Unit: "g"},
			{Name: "Grädde", Amount: "2", Unit: "dl"},
		}),
		found: true,
	}
	svc := NewReminderService(finder)
	svc.now = func() time.Time {
		return time.Date(2026, 2, 9, 18, 0, 0, 0, time.UTC)
	}

	reminder, err := svc.Check("h1", "2026-02-10")
	require.NoError(t, err)

	assert.True(t, reminder.NeedsReminder)
	require.NotNil(t, reminder.Recipe)
	assert.Equal(t, "Kycklinggryta", *reminder.Recipe)
	require.NotNil(t, reminder.Message)
	assert.Equal(t, "Ta ut Kycklinggryta ur frysen! 🧊", *reminder.Message)
	require.NotNil(t, reminder.ScheduledFor)
	assert.Equal(t, "2026-02-10T18:00:00Z", *reminder.ScheduledFor)
}

func TestReminderCheckVegetarianDinner(t *testing.T) {
	finder := &fakeSuggestionFinder{
		suggestion: acceptedDinner("Grönsakssoppa", []models.Ingredient{
			{Name: "Broccoli", Amount: "1", Unit: "st"},
			{Name: "Ris", Amount: "2", Unit: "dl"},
		}),
		found: true,
	}

	reminder, err := NewReminderService(finder).Check("h1", "2026-02-10")
	require.NoError(t, err)
	assert.False(t, reminder.NeedsReminder)
	assert.Nil(t, reminder.Message)
}

func TestReminderCheckShrimpNeedsNoThawing(t *testing.T) {
	finder := &fakeSuggestionFinder{
		suggestion: acceptedDinner("Räkpasta", []models.Ingredient{
			{Name: "Räkor", Amount: "300", Unit: "g"},
		}),
		found: true,
	}

	reminder, err := NewReminderService(finder).Check("h1", "2026-02-10")
	require.NoError(t, err)
	assert.False(t, reminder.NeedsReminder)
}

func TestReminderCheckNoAcceptedDinner(t *testing.T) {
	reminder, err := NewReminderService(&fakeSuggestionFinder{found: false}).Check("h1", "2026-02-10")
	require.NoError(t, err)
	assert.False(t, reminder.NeedsReminder)
}

func TestReminderCheckEmptyIngredients(t *testing.T) {
	finder := &fakeSuggestionFinder{
		suggestion: acceptedDinner("Resterkväll", nil),
		found:      true,
	}

	reminder, err := NewReminderService(finder).Check("h1", "2026-02-10")
	require.NoError(t, err)
	assert.False(t, reminder.NeedsReminder)
}

func TestReminderCheckStoreError(t *testing.T) {
	_, err := NewReminderService(&fakeSuggestionFinder{err: errors.New("db locked")}).Check("h1", "2026-02-10")
	require.Error(t, err)
}
