package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// CalorieEstimate is the model's per-serving guess for one recipe.
type CalorieEstimate struct {
	Calories   int    `json:"calories"`
	Confidence string `json:"confidence"` // "low" | "medium" | "high"
}

// RecipeAI is the slice of the AI client the handlers need. Tests
// substitute a fake.
type RecipeAI interface {
	EstimateCalories(ctx context.Context, ingredients []string, servings int) (*CalorieEstimate, error)
	ParseRecipeText(ctx context.Context, text string) (*RecipeInput, error)
	ParseRecipeImage(ctx context.Context, imageData []byte, format string) (*RecipeInput, error)
}

type GeminiService struct {
	model *genai.GenerativeModel
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiService{model: client.GenerativeModel("gemini-1.5-flash")}, nil
}

// EstimateCalories asks the model for a per-serving calorie figure
// for the given ingredient lines.
func (g *GeminiService) EstimateCalories(ctx context.Context, ingredients []string, servings int) (*CalorieEstimate, error) {
	if servings <= 0 {
		servings = 1
	}

	prompt := fmt.Sprintf(
		"Estimate the calories per serving for a recipe with %d servings and these ingredients:\n%s\n"+
			"Return a single clean JSON object with two keys: 'calories' (integer, per serving) and "+
			"'confidence' ('low', 'medium' or 'high'). No markdown formatting.",
		servings, strings.Join(ingredients, "\n"),
	)

	text, err := g.generate(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var est CalorieEstimate
	if err := unmarshalModelJSON(text, &est); err != nil {
		return nil, err
	}
	est.Confidence = normalizeConfidence(est.Confidence)
	if est.Calories < 0 {
		est.Calories = 0
	}
	return &est, nil
}

// ParseRecipeText turns a pasted or scraped blob into the recipe
// create payload shape.
func (g *GeminiService) ParseRecipeText(ctx context.Context, text string) (*RecipeInput, error) {
	prompt := recipeJSONPrompt + "\n\nText:\n" + text
	return g.parseRecipe(ctx, genai.Text(prompt))
}

// ParseRecipeImage does the same for a photographed recipe card or
// cookbook page.
func (g *GeminiService) ParseRecipeImage(ctx context.Context, imageData []byte, format string) (*RecipeInput, error) {
	return g.parseRecipe(ctx, genai.ImageData(format, imageData), genai.Text(recipeJSONPrompt))
}

const recipeJSONPrompt = "Extract the recipe. Return a single clean JSON object with these keys: " +
	"'title' (string), 'source' (string, empty if unknown), 'servings' (integer, 0 if unknown), " +
	"'instructions' (string, numbered steps separated by newlines), " +
	"'ingredients' (array of objects with string keys 'name', 'quantity', 'unit'), " +
	"'tags' (array of lowercase strings, at most 10). " +
	"The response must be plain JSON with no markdown formatting (e.g. ```json)."

func (g *GeminiService) parseRecipe(ctx context.Context, parts ...genai.Part) (*RecipeInput, error) {
	text, err := g.generate(ctx, parts...)
	if err != nil {
		return nil, err
	}

	var input RecipeInput
	if err := unmarshalModelJSON(text, &input); err != nil {
		return nil, err
	}
	return &input, nil
}

func (g *GeminiService) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response format from Gemini")
	}
	return string(text), nil
}

// unmarshalModelJSON tolerates markdown fences around the object by
// slicing from the first "{" to the last "}".
func unmarshalModelJSON(raw string, out interface{}) error {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || start > end {
		return fmt.Errorf("could not find JSON object in response: %s", raw)
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), out); err != nil {
		return fmt.Errorf("failed to unmarshal model JSON: %w", err)
	}
	return nil
}

func normalizeConfidence(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "high":
		return "high"
	case "medium":
		return "medium"
	default:
		return "low"
	}
}
