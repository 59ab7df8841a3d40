package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
)

// PlanRepository handles day plans and meal suggestions.
type PlanRepository struct {
	database *gorm.DB
}

func NewPlanRepository(database *gorm.DB) *PlanRepository {
	return &PlanRepository{database: database}
}

// UpsertDayPlan replaces a household's plan for a date. Planning sessions
// overwrite; no history is kept.
func (repo *PlanRepository) UpsertDayPlan(plan *models.DayPlan) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "household_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "eating_status", "time_availability", "updated_at"}),
	}).Create(plan).Error
}

// ListDayPlans returns a household's plans with date in [startDate, endDate].
func (repo *PlanRepository) ListDayPlans(householdID string, startDate string, endDate string) ([]models.DayPlan, error) {
	plans := make([]models.DayPlan, 0)
	if err := repo.database.
		Where("household_id = ? AND date >= ? AND date <= ?", householdID, startDate, endDate).
		Order("date ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// InsertSuggestions bulk-inserts suggestion rows; generated ids are written
// back into the slice.
func (repo *PlanRepository) InsertSuggestions(suggestions []models.MealSuggestion) ([]models.MealSuggestion, error) {
	if len(suggestions) == 0 {
		return suggestions, nil
	}
	if err := repo.database.Create(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

// ListAcceptedWithRecipes returns accepted suggestions for the range with
// their recipes preloaded.
func (repo *PlanRepository) ListAcceptedWithRecipes(householdID string, startDate string, endDate string) ([]models.MealSuggestion, error) {
	suggestions := make([]models.MealSuggestion, 0)
	if err := repo.database.
		Preload("Recipe").
		Where("household_id = ? AND status = ? AND date >= ? AND date <= ?",
			householdID, models.SuggestionAccepted, startDate, endDate).
		Find(&suggestions).Error; err != nil {
		return nil, err
	}
	return suggestions, nil
}

// FindAcceptedForDate returns the accepted suggestion for a single date, if
// any.
func (repo *PlanRepository) FindAcceptedForDate(householdID string, date string) (models.MealSuggestion, bool, error) {
	suggestion := models.MealSuggestion{}
	result := repo.database.
		Preload("Recipe").
		Where("household_id = ? AND date = ? AND status = ?", householdID, date, models.SuggestionAccepted).
		Limit(1).
		Find(&suggestion)
	if result.Error != nil {
		return models.MealSuggestion{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MealSuggestion{}, false, nil
	}
	return suggestion, true, nil
}

// UpdateSuggestionStatus sets the status of one suggestion.
func (repo *PlanRepository) UpdateSuggestionStatus(id string, status string) (models.MealSuggestion, bool, error) {
	suggestion := models.MealSuggestion{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&suggestion)
	if result.Error != nil {
		return models.MealSuggestion{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.MealSuggestion{}, false, nil
	}
	suggestion.Status = status
	if err := repo.database.Model(&suggestion).Update("status", status).Error; err != nil {
		return models.MealSuggestion{}, false, err
	}
	return suggestion, true, nil
}
