package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n[1]\n```  ", "[1]"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.in))
		})
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	err := ParseJSON(`{"a": 1} trailing`, &v)
	require.Error(t, err)
}

func TestParseJSONAcceptsSingleValue(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, ParseJSON(`{"a": 1}`, &v))
	assert.Contains(t, v, "a")
}

func TestDecodeJSONStrictRejectsUnknownFields(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	err := ParseJSON(`{"a": 1, "b": 2}`, &v)
	require.NoError(t, err)

	err = DecodeJSONStrict(strings.NewReader(`{"a": 1, "b": 2}`), &v)
	require.Error(t, err)
}
