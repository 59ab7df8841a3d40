package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name       string
		ingredient string
		want       string
	}{
		{"chicken is meat", "Kycklingfilé", CategoryMeat},
		{"minced beef is meat", "Nötfärs", CategoryMeat},
		{"salmon is meat", "Laxfilé", CategoryMeat},
		{"shrimp is meat", "Räkor", CategoryMeat},
		{"milk is dairy", "Mjölk", CategoryDairy},
		{"cream is dairy", "Vispgrädde", CategoryDairy},
		{"eggs are dairy", "Ägg", CategoryDairy},
		{"butter is dairy", "Smör", CategoryDairy},
		{"onion is vegetables", "Gul lök", CategoryVegetables},
		{"garlic is vegetables", "Vitlök", CategoryVegetables},
		{"potato is vegetables", "Potatis", CategoryVegetables},
		{"pasta is pantry", "Pasta penne", CategoryPantry},
		{"rice is pantry", "Jasminris", CategoryPantry},
		{"flour is pantry", "Vetemjöl", CategoryPantry},
		{"oil is pantry", "Olivolja", CategoryPantry},
		{"unknown is other", "Saffran", CategoryOther},
		{"empty is other", "", CategoryOther},
		{"matching is case insensitive", "KYCKLING", CategoryMeat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.ingredient))
		})
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	// "mjölkfritt smör" matches both dairy keywords; table order decides.
	assert.Equal(t, CategoryDairy, Categorize("mjölkfritt smör"))
	// "fisksås" matches meat before pantry.
	assert.Equal(t, CategoryMeat, Categorize("fisksås"))
}
