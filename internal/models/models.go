package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

// Recipe categories.
const (
	CategoryStarter = "förrätt"
	CategoryMain    = "varmrätt"
	CategoryDessert = "dessert"
	CategoryBaking  = "bakverk"
	CategoryDrink   = "dryck"
)

// Recipe difficulties.
const (
	DifficultyEasy     = "enkel"
	DifficultyMedium   = "medel"
	DifficultyAdvanced = "avancerad"
)

// Suggestion lifecycle. A suggestion never moves back from accepted.
const (
	SuggestionSuggested = "suggested"
	SuggestionAccepted  = "accepted"
	SuggestionReplaced  = "replaced"
)

// Day plan eating statuses.
const (
	EatingHome     = "home"
	EatingOut      = "out"
	EatingLunchBox = "lunch_box"
	EatingLight    = "light"
)

// Day plan time availability.
const (
	TimeEarly = "early"
	TimeLate  = "late"
)

// Recipe is a stored recipe. Ingredients and Steps are semi-structured JSON
// columns; read them through their Decode helpers, never directly.
type Recipe struct {
	ID                  string  `gorm:"primaryKey" json:"id"`
	Title               string  `gorm:"not null" json:"title"`
	Description         string  `json:"description"`
	ImageURL            *string `json:"image_url"`
	SourceURL           *string `json:"source_url"`
	SourceName          *string `json:"source_name"`
	Category            string  `json:"category"`
	Tags                StringList `gorm:"type:text;serializer:json" json:"tags"`
	Difficulty          string  `gorm:"not null;default:medel" json:"difficulty"`
	PrepTimeMinutes     *int    `json:"prep_time_minutes"`
	CookTimeMinutes     *int    `json:"cook_time_minutes"`
	Servings            int     `gorm:"not null;default:4" json:"servings"`
	Ingredients         string  `gorm:"type:text" json:"-"`
	Steps               string  `gorm:"type:text" json:"-"`
	SuitableForLunchBox bool    `gorm:"not null;default:false" json:"suitable_for_lunch_box"`
	IsLightMeal         bool    `gorm:"not null;default:false" json:"is_light_meal"`
	IsFancy             bool    `gorm:"not null;default:false" json:"is_fancy"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// DecodeIngredients normalizes the stored ingredient column.
func (r *Recipe) DecodeIngredients() []Ingredient {
	return NormalizeIngredients([]byte(r.Ingredients))
}

// DecodeSteps normalizes the stored step column.
func (r *Recipe) DecodeSteps() []Step {
	return NormalizeSteps([]byte(r.Steps))
}

// DayPlan is one household member's plan for a calendar date. Statuses stay
// nil until the user sets them.
type DayPlan struct {
	ID               string  `gorm:"primaryKey" json:"id"`
	UserID           string  `gorm:"index" json:"user_id"`
	HouseholdID      string  `gorm:"not null;uniqueIndex:uidx_household_date" json:"household_id"`
	Date             string  `gorm:"type:date;not null;uniqueIndex:uidx_household_date" json:"date"`
	EatingStatus     *string `json:"eating_status"`
	TimeAvailability *string `json:"time_availability"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *DayPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// MealSuggestion links a household and date to a recipe. Downstream
// aggregation assumes at most one accepted suggestion per household and
// date; nothing here enforces it.
type MealSuggestion struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	HouseholdID string  `gorm:"not null;index" json:"household_id"`
	Date        string  `gorm:"type:date;not null" json:"date"`
	RecipeID    string  `gorm:"not null" json:"recipe_id"`
	MealType    string  `gorm:"not null;default:dinner" json:"meal_type"`
	Status      string  `gorm:"not null;default:suggested" json:"status"`
	Reason      *string `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (s *MealSuggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// RecipeRating is a 1-5 star rating with an optional comment. Used as a
// negative filter when generating weekly suggestions.
type RecipeRating struct {
	UserID    string    `gorm:"primaryKey" json:"user_id"`
	RecipeID  string    `gorm:"primaryKey" json:"recipe_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// StringList is a JSON-serialized string slice column.
type StringList []string
