package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmarshalModelJSON_ToleratesMarkdownFences(t *testing.T) {
	raw := "```json\n{\"calories\": 420, \"confidence\": \"medium\"}\n```"

	var est CalorieEstimate
	assert.NoError(t, unmarshalModelJSON(raw, &est))
	assert.Equal(t, 420, est.Calories)
	assert.Equal(t, "medium", est.Confidence)
}

func TestUnmarshalModelJSON_PlainObject(t *testing.T) {
	var in RecipeInput
	raw := `{"title":"Banana Bread","servings":8,"ingredients":[{"name":"bananas","quantity":"3","unit":""}],"tags":["baking"]}`
	assert.NoError(t, unmarshalModelJSON(raw, &in))
	assert.Equal(t, "Banana Bread", in.Title)
	assert.Equal(t, 8, in.Servings)
	if assert.Len(t, in.Ingredients, 1) {
		assert.Equal(t, "bananas", in.Ingredients[0].Name)
	}
}

func TestUnmarshalModelJSON_NoObject(t *testing.T) {
	var est CalorieEstimate
	assert.Error(t, unmarshalModelJSON("the model refused to answer", &est))
	assert.Error(t, unmarshalModelJSON("} backwards {", &est))
}

func TestNormalizeConfidence(t *testing.T) {
	cases := map[string]string{
		"high":      "high",
		" High ":    "high",
		"MEDIUM":    "medium",
		"low":       "low",
		"certain":   "low",
		"":          "low",
		"very high": "low",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeConfidence(in), "input %q", in)
	}
}

func TestNewGeminiService_RequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewGeminiService(context.Background())
	assert.Error(t, err)
}
