package models

import (
	"encoding/json"
	"strings"
)

// Ingredient is one entry of a recipe's ingredient list. Amount stays a
// string because imported recipes carry values like "1/2" or "efter smak".
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Step is one instruction. Imported recipes store either bare strings or
// objects with an optional duration.
type Step struct {
	Instruction     string `json:"instruction"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

func (s *Step) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var instruction string
		if err := json.Unmarshal(data, &instruction); err != nil {
			return err
		}
		s.Instruction = instruction
		s.DurationMinutes = nil
		return nil
	}

	type alias Step
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = Step(obj)
	return nil
}

// unwrapArray peels a JSON-encoded string down to the array it contains.
// Some stored rows hold a native array, others hold the array re-encoded as
// a string; both are tolerated at this boundary so nothing else has to be.
func unwrapArray(raw []byte) []byte {
	data := []byte(strings.TrimSpace(string(raw)))
	for len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(inner))
	}
	if len(data) == 0 || data[0] != '[' {
		return nil
	}
	return data
}

// NormalizeIngredients decodes an ingredient column into a slice, never nil.
func NormalizeIngredients(raw []byte) []Ingredient {
	ingredients := make([]Ingredient, 0)
	data := unwrapArray(raw)
	if data == nil {
		return ingredients
	}
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return make([]Ingredient, 0)
	}
	return ingredients
}

// NormalizeSteps decodes a step column into a slice, never nil.
func NormalizeSteps(raw []byte) []Step {
	steps := make([]Step, 0)
	data := unwrapArray(raw)
	if data == nil {
		return steps
	}
	if err := json.Unmarshal(data, &steps); err != nil {
		return make([]Step, 0)
	}
	return steps
}

// EncodeIngredients marshals ingredients for storage.
func EncodeIngredients(ingredients []Ingredient) string {
	if ingredients == nil {
		ingredients = make([]Ingredient, 0)
	}
	data, _ := json.Marshal(ingredients)
	return string(data)
}

// EncodeSteps marshals steps for storage.
func EncodeSteps(steps []Step) string {
	if steps == nil {
		steps = make([]Step, 0)
	}
	data, _ := json.Marshal(steps)
	return string(data)
}

// RecipeView is the JSON shape returned to clients, with the semi-structured
// columns decoded.
type RecipeView struct {
	Recipe
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
}

// View decodes the recipe's JSON columns for a response.
func (r *Recipe) View() RecipeView {
	return RecipeView{
		Recipe:      *r,
		Ingredients: r.DecodeIngredients(),
		Steps:       r.DecodeSteps(),
	}
}
