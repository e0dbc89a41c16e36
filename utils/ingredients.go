package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedIngredient is one recipe ingredient line decomposed into
// quantity / unit / name. Quantity stays a string so "1 1/2" and
// "2-3" survive a round trip untouched.
type ParsedIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// ---------- Patterns ----------

// Quantity: mixed number, plain fraction, range, or decimal. Mixed
// numbers come first so "2 1/2" is not split into "2" plus a fraction.
const quantityPattern = `(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?\s*(?:-|–|to)\s*\d+(?:\.\d+)?|\d+(?:\.\d+)?)`

// Measurement words seen in scraped ingredient lists. Single letters
// (g, l) only match when followed by whitespace, so "1 green pepper"
// falls through to the next rule.
const unitPattern = `(cups?|tablespoons?|tbsps?|tbs|teaspoons?|tsps?|fluid\s+ounces?|fl\.?\s?oz|ounces?|oz|pounds?|lbs?|kilograms?|kgs?|kg|grams?|g|milliliters?|millilitres?|mls?|ml|liters?|litres?|l|quarts?|qts?|pints?|pts?|gallons?|gals?|sticks?|cloves?|cans?|jars?|packages?|pkgs?|packets?|boxes?|bags?|bunches?|bunch|sprigs?|slices?|pieces?|pinches?|pinch|dashes?|dash|heads?|stalks?|ribs?|strips?|fillets?|sheets?|handfuls?|wedges?|cubes?|bottles?|cartons?|containers?|loaves|loaf|ears?|envelopes?|scoops?|drops?)`

// Size words that describe the item rather than measure it; they stay
// part of the name ("2 large eggs" → name "large eggs").
const sizePattern = `((?:extra-)?large|medium|small|big|jumbo|heaping|generous|scant|thin|thick)`

var (
	qtyUnitRe = regexp.MustCompile(`(?i)^` + quantityPattern + `\s*` + unitPattern + `\.?\s+(?:of\s+)?(.+)$`)
	qtySizeRe = regexp.MustCompile(`(?i)^` + quantityPattern + `\s+` + sizePattern + `\s+(.+)$`)
	qtyNameRe = regexp.MustCompile(`(?i)^` + quantityPattern + `\s+(.+)$`)

	digitRunRe = regexp.MustCompile(`\d+`)
	spacesRe   = regexp.MustCompile(`\s+`)
)

// Vulgar fraction code points folded to ASCII before matching. The
// leading space keeps "1½" readable as "1 1/2"; runs of spaces are
// collapsed afterwards.
var fractionFolder = strings.NewReplacer(
	"¼", " 1/4", "½", " 1/2", "¾", " 3/4",
	"⅓", " 1/3", "⅔", " 2/3",
	"⅕", " 1/5", "⅖", " 2/5", "⅗", " 3/5", "⅘", " 4/5",
	"⅙", " 1/6", "⅚", " 5/6",
	"⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
	"⁄", "/",
)

// FoldFractions rewrites unicode fraction glyphs as ASCII fractions
// and collapses runs of whitespace.
func FoldFractions(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(fractionFolder.Replace(s), " "))
}

// ParseIngredientLine decomposes one free-text ingredient line.
// Rules apply first-match-wins:
//  1. quantity + unit + name   ("2 cups flour")
//  2. quantity + size + name   ("2 large eggs")
//  3. quantity + name          ("3 apples")
//  4. bare name                ("salt to taste")
func ParseIngredientLine(line string) ParsedIngredient {
	line = FoldFractions(line)

	if m := qtyUnitRe.FindStringSubmatch(line); m != nil {
		return ParsedIngredient{
			Name:     strings.TrimSpace(m[3]),
			Quantity: strings.TrimSpace(m[1]),
			Unit:     strings.ToLower(strings.TrimSpace(m[2])),
		}
	}
	if m := qtySizeRe.FindStringSubmatch(line); m != nil {
		return ParsedIngredient{
			Name:     strings.TrimSpace(m[2] + " " + m[3]),
			Quantity: strings.TrimSpace(m[1]),
		}
	}
	if m := qtyNameRe.FindStringSubmatch(line); m != nil {
		return ParsedIngredient{
			Name:     strings.TrimSpace(m[2]),
			Quantity: strings.TrimSpace(m[1]),
		}
	}
	return ParsedIngredient{Name: line}
}

// ParseServings pulls the first run of digits out of a yield string
// ("Serves 4 to 6" → 4). Returns 0 when there is none.
func ParseServings(s string) int {
	if m := digitRunRe.FindString(s); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}
