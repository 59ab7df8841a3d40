package db

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
)

// RecipeRepository handles persistence of recipes and their ratings.
type RecipeRepository struct {
	database *gorm.DB
}

func NewRecipeRepository(database *gorm.DB) *RecipeRepository {
	return &RecipeRepository{database: database}
}

func (repo *RecipeRepository) Create(recipe *models.Recipe) error {
	return repo.database.Create(recipe).Error
}

func (repo *RecipeRepository) GetByID(id string) (models.Recipe, bool, error) {
	recipe := models.Recipe{}
	result := repo.database.Where("id = ?", id).Limit(1).Find(&recipe)
	if result.Error != nil {
		return models.Recipe{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Recipe{}, false, nil
	}
	return recipe, true, nil
}

func (repo *RecipeRepository) List(limit int) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	query := repo.database.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListCandidates loads recipes for suggestion prompting. The cap is
// arbitrary; there is no relevance ordering beyond storage order.
func (repo *RecipeRepository) ListCandidates(limit int) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0)
	if err := repo.database.Limit(limit).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (repo *RecipeRepository) UpdateImageURL(id string, imageURL string) error {
	return repo.database.Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", imageURL).Error
}

// SaveRating upserts a user's rating for a recipe.
func (repo *RecipeRepository) SaveRating(rating *models.RecipeRating) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment"}),
	}).Create(rating).Error
}

// ListRatingsSince returns ratings created at or after the cutoff.
func (repo *RecipeRepository) ListRatingsSince(cutoff time.Time) ([]models.RecipeRating, error) {
	ratings := make([]models.RecipeRating, 0)
	if err := repo.database.Where("created_at >= ?", cutoff).Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
