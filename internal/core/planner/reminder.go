package planner

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// frozenMeatPattern matches ingredients that are usually stored frozen and
// need to thaw overnight. Narrower than the shopping categorizer's meat
// set: räkor go straight from the freezer to the pan.
var frozenMeatPattern = regexp.MustCompile(`kyckling|kött|fläsk|nöt|lamm|fisk|lax|torsk`)

// Reminder is the meat-reminder check result.
type Reminder struct {
	NeedsReminder bool    `json:"needsReminder"`
	Recipe        *string `json:"recipe,omitempty"`
	Message       *string `json:"message,omitempty"`
	ScheduledFor  *string `json:"scheduledFor,omitempty"`
}

// SuggestionFinder loads the accepted suggestion for one date.
type SuggestionFinder interface {
	FindAcceptedForDate(householdID string, date string) (models.MealSuggestion, bool, error)
}

// ReminderService decides whether tomorrow's dinner needs a take-out-of-
// the-freezer reminder.
type ReminderService struct {
	suggestions SuggestionFinder
	now         func() time.Time
}

func NewReminderService(suggestions SuggestionFinder) *ReminderService {
	return &ReminderService{
		suggestions: suggestions,
		now:         time.Now,
	}
}

// Check returns a reminder when the accepted recipe for the date contains a
// frozen meat or fish ingredient. A missing suggestion or recipe means no
// reminder, never an error.
func (s *ReminderService) Check(householdID string, date string) (Reminder, error) {
	suggestion, found, err := s.suggestions.FindAcceptedForDate(householdID, date)
	if err != nil {
		return Reminder{}, common.NewPersistenceError("Kunde inte läsa middagsplanen", err)
	}
	if !found || suggestion.Recipe == nil {
		return Reminder{NeedsReminder: false}, nil
	}

	recipe := suggestion.Recipe
	ingredients := recipe.DecodeIngredients()
	if len(ingredients) == 0 {
		return Reminder{NeedsReminder: false}, nil
	}

	hasMeat := false
	for _, ingredient := range ingredients {
		if frozenMeatPattern.MatchString(strings.ToLower(ingredient.Name)) {
			hasMeat = true
			break
		}
	}
	if !hasMeat {
		return Reminder{NeedsReminder: false}, nil
	}

	message := fmt.Sprintf("Ta ut %s ur frysen! 🧊", recipe.Title)
	scheduledFor := s.now().Add(24 * time.Hour).UTC().Format(time.RFC3339)
	return Reminder{
		NeedsReminder: true,
		Recipe:        &recipe.Title,
		Message:       &message,
		ScheduledFor:  &scheduledFor,
	}, nil
}
