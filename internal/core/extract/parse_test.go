package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

func TestParseModelResponse(t *testing.T) {
	raw := `{
		"title": "Kycklinggryta",
		"description": "En krämig gryta",
		"category": "varmrätt",
		"tags": ["snabb"],
		"difficulty": "enkel",
		"prep_time_minutes": 15,
		"cook_time_minutes": 30,
		"servings": 4,
		"ingredients": [{"name": "Kycklingfilé", "amount": "500", "unit": "g"}],
		"steps": ["Bryn kycklingen", {"instruction": "Låt sjuda", "duration_minutes": 20}],
		"suitable_for_lunch_box": true,
		"is_light_meal": false
	}`

	extracted, err := parseModelResponse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Kycklinggryta", extracted.Title)
	assert.Equal(t, "varmrätt", extracted.Category)
	assert.Equal(t, []string{"snabb"}, extracted.Tags)
	require.Len(t, extracted.Ingredients, 1)
	assert.Equal(t, "Kycklingfilé", extracted.Ingredients[0].Name)
	require.Len(t, extracted.Steps, 2)
	assert.Equal(t, "Bryn kycklingen", extracted.Steps[0].Instruction)
	require.NotNil(t, extracted.Steps[1].DurationMinutes)
	assert.Equal(t, 20, *extracted.Steps[1].DurationMinutes)
	assert.True(t, extracted.SuitableForLunchBox)
}

func TestParseModelResponseStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"title\": \"Pannkakor\"}\n```"

	extracted, err := parseModelResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Pannkakor", extracted.Title)
}

func TestParseModelResponseAppliesDefaults(t *testing.T) {
	extracted, err := parseModelResponse(`{"title": "Soppa"}`)
	require.NoError(t, err)

	assert.Equal(t, models.DifficultyMedium, extracted.Difficulty)
	require.NotNil(t, extracted.Servings)
	assert.Equal(t, 4, *extracted.Servings)
	assert.NotNil(t, extracted.Tags)
	assert.Empty(t, extracted.Tags)
	assert.NotNil(t, extracted.Ingredients)
	assert.NotNil(t, extracted.Steps)
}

func TestParseModelResponseInvalidJSON(t *testing.T) {
	_, err := parseModelResponse("Tyvärr kan jag inte hitta något recept på sidan.")
	require.Error(t, err)

	var ce *common.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, common.ErrCodeParse, ce.Code)
	assert.Contains(t, ce.Details, "Tyvärr")
}

func TestParseModelResponseTruncatesExcerpt(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	_, err := parseModelResponse(string(long))
	require.Error(t, err)

	var ce *common.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Len(t, ce.Details, 200)
}
