package shopping

import (
	"regexp"
	"strings"
)

// Food categories used to group the shopping list.
const (
	CategoryMeat       = "meat"
	CategoryDairy      = "dairy"
	CategoryVegetables = "vegetables"
	CategoryPantry     = "pantry"
	CategoryOther      = "other"
)

// categoryPattern pairs a category with its keyword pattern. Order matters:
// the first match wins, so "mjölkfritt smör" is dairy, never pantry.
type categoryPattern struct {
	category string
	pattern  *regexp.Regexp
}

// The keyword table is Swedish and deliberately so; the households using
// this plan in Swedish. Changing a keyword changes category assignment.
var categoryPatterns = []categoryPattern{
	{CategoryMeat, regexp.MustCompile(`kyckling|kött|fläsk|nöt|lamm|fisk|lax|torsk|räk`)},
	{CategoryDairy, regexp.MustCompile(`mjölk|ost|grädde|yoghurt|smör|ägg`)},
	{CategoryVegetables, regexp.MustCompile(`tomat|gurka|sallad|paprika|lök|vitlök|morrot|broccoli|blomkål|potatis`)},
	{CategoryPantry, regexp.MustCompile(`pasta|ris|mjöl|socker|salt|peppar|olja|vinäger|sås`)},
}

// Categorize maps an ingredient name to a food category by keyword match.
func Categorize(ingredientName string) string {
	name := strings.ToLower(ingredientName)
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(name) {
			return cp.category
		}
	}
	return CategoryOther
}
