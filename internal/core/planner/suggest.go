package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

const (
	// DateLayout is the wire and storage format for plan dates.
	DateLayout = "2006-01-02"

	candidateRecipeCap = 50
	ratingLookbackDays = 14
	lowRatingThreshold = 3
)

// ModelClient is the language model collaborator.
type ModelClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string, maxTokens int) (string, error)
}

// PlanStore loads day plans and writes suggestions.
type PlanStore interface {
	ListDayPlans(householdID string, startDate string, endDate string) ([]models.DayPlan, error)
	InsertSuggestions(suggestions []models.MealSuggestion) ([]models.MealSuggestion, error)
}

// RecipeReader loads suggestion candidates and recent ratings.
type RecipeReader interface {
	ListCandidates(limit int) ([]models.Recipe, error)
	ListRatingsSince(cutoff time.Time) ([]models.RecipeRating, error)
}

// Suggester generates a week of dinner suggestions.
type Suggester struct {
	model   ModelClient
	plans   PlanStore
	recipes RecipeReader
	now     func() time.Time
}

func NewSuggester(model ModelClient, plans PlanStore, recipes RecipeReader) *Suggester {
	return &Suggester{
		model:   model,
		plans:   plans,
		recipes: recipes,
		now:     time.Now,
	}
}

// suggestionEntry is one element of the JSON array the model returns.
type suggestionEntry struct {
	Date     string `json:"date"`
	RecipeID string `json:"recipe_id"`
	Reason   string `json:"reason"`
}

// GenerateWeek plans dinners for the seven days starting at startDate and
// persists them with status "suggested". Prior suggestions for the range
// are left in place; regenerating adds rows rather than replacing them.
func (s *Suggester) GenerateWeek(ctx context.Context, householdID string, startDate string) ([]models.MealSuggestion, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, common.NewValidationError("Ogiltigt startdatum")
	}
	endDate := start.AddDate(0, 0, 6).Format(DateLayout)

	dayPlans, err := s.plans.ListDayPlans(householdID, startDate, endDate)
	if err != nil {
		return nil, common.NewPersistenceError("Kunde inte läsa veckoplaneringen", err)
	}

	candidates, err := s.recipes.ListCandidates(candidateRecipeCap)
	if err != nil {
		return nil, common.NewPersistenceError("Kunde inte läsa recepten", err)
	}

	avoidTitles := s.loadAvoidList(candidates)

	prompt := buildWeekPrompt(dayPlans, candidates, avoidTitles)

	response, err := s.model.Complete(ctx, "", prompt, 0)
	if err != nil {
		return nil, err
	}

	cleaned := common.StripCodeFence(response)
	var entries []suggestionEntry
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, common.NewParseError("Kunde inte tolka AI-svar som JSON", cleaned, err)
	}

	// recipe_id values are taken at face value; a made-up id is caught by
	// the storage layer's referential check, not here.
	suggestions := make([]models.MealSuggestion, 0, len(entries))
	for _, entry := range entries {
		reason := entry.Reason
		suggestions = append(suggestions, models.MealSuggestion{
			HouseholdID: householdID,
			Date:        entry.Date,
			RecipeID:    entry.RecipeID,
			Status:      models.SuggestionSuggested,
			MealType:    "dinner",
			Reason:      &reason,
		})
	}

	saved, err := s.plans.InsertSuggestions(suggestions)
	if err != nil {
		return nil, common.NewPersistenceError("Kunde inte spara förslagen", err)
	}
	return saved, nil
}

// loadAvoidList resolves recently low-rated recipes to titles. Advisory
// only: it becomes prompt text, not a hard filter.
func (s *Suggester) loadAvoidList(candidates []models.Recipe) []string {
	cutoff := s.now().AddDate(0, 0, -ratingLookbackDays)
	ratings, err := s.recipes.ListRatingsSince(cutoff)
	if err != nil {
		return nil
	}

	titlesByID := make(map[string]string, len(candidates))
	for _, recipe := range candidates {
		titlesByID[recipe.ID] = recipe.Title
	}

	seen := make(map[string]bool)
	avoid := make([]string, 0)
	for _, rating := range ratings {
		if rating.Rating >= lowRatingThreshold {
			continue
		}
		title, ok := titlesByID[rating.RecipeID]
		if !ok || seen[title] {
			continue
		}
		seen[title] = true
		avoid = append(avoid, title)
	}
	return avoid
}

func buildWeekPrompt(dayPlans []models.DayPlan, candidates []models.Recipe, avoidTitles []string) string {
	var sb strings.Builder

	sb.WriteString("Du är en AI-kock som planerar middagar för en vecka.\n\nVECKOPLANERING:\n")
	for _, plan := range dayPlans {
		status := "okänd"
		if plan.EatingStatus != nil {
			status = *plan.EatingStatus
		}
		availability := "okänd tid"
		if plan.TimeAvailability != nil {
			availability = *plan.TimeAvailability
		}
		fmt.Fprintf(&sb, "%s: %s (%s)\n", plan.Date, status, availability)
	}

	sb.WriteString("\nTILLGÄNGLIGA RECEPT:\n")
	for _, recipe := range candidates {
		prepTime := "?"
		if recipe.PrepTimeMinutes != nil {
			prepTime = fmt.Sprintf("%d", *recipe.PrepTimeMinutes)
		}
		difficulty := recipe.Difficulty
		if difficulty == "" {
			difficulty = models.DifficultyMedium
		}
		fmt.Fprintf(&sb, "- %s (%s min, %s) [id: %s]\n", recipe.Title, prepTime, difficulty, recipe.ID)
	}

	sb.WriteString(`
REGLER:
- Båda hemma + tidigt = Marcus lagar (enkelt recept <30 min)
- Båda hemma + sent = snabbt & enkelt (max 20 min)
- En ute = lätt middag för den hemma
- Fredag = lite extra, gärna något kul
- Lördag = festligt, gärna 2-rätters
- Undvik recept som fått <3 stjärnor senaste 2 veckorna
`)

	if len(avoidTitles) > 0 {
		fmt.Fprintf(&sb, "\nUNDVIK (lågt betyg senaste två veckorna): %s\n", strings.Join(avoidTitles, ", "))
	}

	sb.WriteString(`
Generera 7 middagsförslag (måndag-söndag) med:
1. recipe_id (hitta från listan ovan)
2. reason (kort förklaring varför detta recept passar dagen)

Svara ENDAST med JSON array, ingen markdown:
[{"date": "2026-02-10", "recipe_id": "uuid-från-listan", "reason": "text"}]`)

	return sb.String()
}
