package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredientLine(t *testing.T) {
	cases := []struct {
		line string
		want ParsedIngredient
	}{
		// quantity + unit + name
		{"2 cups all-purpose flour", ParsedIngredient{Name: "all-purpose flour", Quantity: "2", Unit: "cups"}},
		{"1 1/2 cups sugar", ParsedIngredient{Name: "sugar", Quantity: "1 1/2", Unit: "cups"}},
		{"10 oz. frozen spinach", ParsedIngredient{Name: "frozen spinach", Quantity: "10", Unit: "oz"}},
		{"1.5 lbs chicken thighs", ParsedIngredient{Name: "chicken thighs", Quantity: "1.5", Unit: "lbs"}},
		{"2-3 tbsp olive oil", ParsedIngredient{Name: "olive oil", Quantity: "2-3", Unit: "tbsp"}},
		{"2 to 3 cups chicken broth", ParsedIngredient{Name: "chicken broth", Quantity: "2 to 3", Unit: "cups"}},
		{"1 can of crushed tomatoes", ParsedIngredient{Name: "crushed tomatoes", Quantity: "1", Unit: "can"}},
		{"3 cloves garlic, minced", ParsedIngredient{Name: "garlic, minced", Quantity: "3", Unit: "cloves"}},
		{"500 g ground beef", ParsedIngredient{Name: "ground beef", Quantity: "500", Unit: "g"}},
		{"1 Cup milk", ParsedIngredient{Name: "milk", Quantity: "1", Unit: "cup"}},

		// unicode fractions fold to ASCII before matching
		{"¾ cup whole milk", ParsedIngredient{Name: "whole milk", Quantity: "3/4", Unit: "cup"}},
		{"1½ sticks butter", ParsedIngredient{Name: "butter", Quantity: "1 1/2", Unit: "sticks"}},

		// quantity + size + name: the size word stays in the name
		{"2 large eggs", ParsedIngredient{Name: "large eggs", Quantity: "2"}},
		{"1 medium onion, diced", ParsedIngredient{Name: "medium onion, diced", Quantity: "1"}},

		// quantity + name
		{"3 apples", ParsedIngredient{Name: "apples", Quantity: "3"}},
		{"12 chocolate chip cookies", ParsedIngredient{Name: "chocolate chip cookies", Quantity: "12"}},

		// bare name
		{"salt to taste", ParsedIngredient{Name: "salt to taste"}},
		{"a pinch of nutmeg", ParsedIngredient{Name: "a pinch of nutmeg"}},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseIngredientLine(tc.line))
		})
	}
}

// "1 green pepper" must not read "g" as grams.
func TestParseIngredientLine_SingleLetterUnitNeedsBoundary(t *testing.T) {
	got := ParseIngredientLine("1 green pepper")
	assert.Equal(t, ParsedIngredient{Name: "green pepper", Quantity: "1"}, got)
}

func TestFoldFractions(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1½", "1 1/2"},
		{"½ cup", "1/2 cup"},
		{"3⁄4 cup", "3/4 cup"}, // U+2044 fraction slash
		{"  2   cups  ", "2 cups"},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FoldFractions(tc.in), "input %q", tc.in)
	}
}

func TestParseServings(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"Serves 4 to 6", 4},
		{"6 servings", 6},
		{"4-6", 4},
		{"makes about a dozen", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseServings(tc.in), "input %q", tc.in)
	}
}
