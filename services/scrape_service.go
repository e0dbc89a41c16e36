package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/mbuckingham74/moms-recipes-sub001/utils"
)

const (
	scrapeUserAgent = "Mozilla/5.0 (compatible; MomsRecipesBot/1.0; +https://github.com/mbuckingham74/moms-recipes)"

	// cap on tags pulled from keywords/cuisine fields
	maxScrapedTags = 10

	// cap on the fallback text blob handed to the AI parser
	textBudget = 8000
)

var (
	ErrInvalidURL    = errors.New("only http and https URLs can be scraped")
	ErrScrapeTimeout = errors.New("the site took too long to respond")
)

// ScrapeStatusError reports a non-2xx response from the target site.
type ScrapeStatusError struct {
	StatusCode int
}

func (e *ScrapeStatusError) Error() string {
	return fmt.Sprintf("the site responded with HTTP %d", e.StatusCode)
}

// ScrapedRecipe mirrors the recipe create payload so the client can
// review the extraction and submit it back unchanged.
type ScrapedRecipe struct {
	Title        string                   `json:"title"`
	Source       string                   `json:"source"`
	Servings     int                      `json:"servings"`
	Instructions string                   `json:"instructions"`
	Ingredients  []utils.ParsedIngredient `json:"ingredients"`
	Tags         []string                 `json:"tags"`
	ImageURL     string                   `json:"image_url,omitempty"`
}

// ScrapeResult carries either a structured recipe or the cleaned page
// text for AI-assisted parsing.
type ScrapeResult struct {
	Structured bool           `json:"structured"`
	Recipe     *ScrapedRecipe `json:"recipe,omitempty"`
	Text       string         `json:"text,omitempty"`
}

type ScrapeService struct {
	client *http.Client
}

func NewScrapeService() *ScrapeService {
	return &ScrapeService{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ScrapeURL fetches the page and tries the structured JSON-LD route
// first, falling back to a cleaned text blob. The scheme check runs
// before any network traffic.
func (s *ScrapeService) ScrapeURL(rawURL string) (*ScrapeResult, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidURL
	}

	doc, err := s.fetchDocument(parsed.String())
	if err != nil {
		return nil, err
	}

	if recipe := extractJSONLDRecipe(doc); recipe != nil {
		recipe.Source = parsed.String()
		return &ScrapeResult{Structured: true, Recipe: recipe}, nil
	}

	return &ScrapeResult{Text: extractReadableText(doc)}, nil
}

func (s *ScrapeService) fetchDocument(u string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return nil, ErrScrapeTimeout
		}
		return nil, fmt.Errorf("could not reach the site: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ScrapeStatusError{StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}
	return doc, nil
}

// ---------- JSON-LD extraction ----------

func extractJSONLDRecipe(doc *goquery.Document) *ScrapedRecipe {
	var recipe *ScrapedRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var raw interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &raw); err != nil {
			return true // skip malformed blocks
		}
		if node := findRecipeNode(raw); node != nil {
			recipe = normalizeRecipeNode(node)
			return false
		}
		return true
	})
	return recipe
}

// findRecipeNode unwraps top-level arrays and @graph containers until
// it hits an object typed as a Recipe.
func findRecipeNode(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		if isType(v["@type"], "Recipe") {
			return v
		}
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if node := findRecipeNode(item); node != nil {
					return node
				}
			}
		}
	case []interface{}:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	}
	return nil
}

// @type may be a single string or a list of strings.
func isType(t interface{}, want string) bool {
	switch v := t.(type) {
	case string:
		return strings.EqualFold(v, want)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

func normalizeRecipeNode(node map[string]interface{}) *ScrapedRecipe {
	recipe := &ScrapedRecipe{
		Title:        strings.TrimSpace(asString(node["name"])),
		Servings:     utils.ParseServings(yieldString(node["recipeYield"])),
		Instructions: renderInstructions(node["recipeInstructions"]),
		ImageURL:     firstImageURL(node["image"]),
	}

	for _, line := range stringList(node["recipeIngredient"]) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, utils.ParseIngredientLine(line))
	}

	tags := append(flexibleStringList(node["keywords"]), flexibleStringList(node["recipeCuisine"])...)
	recipe.Tags = utils.NormalizeTagNames(tags)
	if len(recipe.Tags) > maxScrapedTags {
		recipe.Tags = recipe.Tags[:maxScrapedTags]
	}

	return recipe
}

// renderInstructions flattens the half-dozen shapes sites use for
// recipeInstructions into one numbered text block. HowToSection
// groups keep their name as a heading; numbering continues across
// sections.
func renderInstructions(v interface{}) string {
	switch steps := v.(type) {
	case string:
		return strings.TrimSpace(steps)
	case []interface{}:
		var b strings.Builder
		n := 0
		for _, item := range steps {
			writeInstructionItem(&b, item, &n)
		}
		return strings.TrimSpace(b.String())
	}
	return ""
}

func writeInstructionItem(b *strings.Builder, item interface{}, n *int) {
	switch step := item.(type) {
	case string:
		writeStep(b, step, n)
	case map[string]interface{}:
		if isType(step["@type"], "HowToSection") {
			if name := strings.TrimSpace(asString(step["name"])); name != "" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(name + ":\n")
			}
			if list, ok := step["itemListElement"].([]interface{}); ok {
				for _, sub := range list {
					writeInstructionItem(b, sub, n)
				}
			}
			return
		}
		text := asString(step["text"])
		if text == "" {
			text = asString(step["name"])
		}
		writeStep(b, text, n)
	}
}

func writeStep(b *strings.Builder, text string, n *int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	*n++
	fmt.Fprintf(b, "%d. %s\n", *n, text)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// recipeYield shows up as a string, a number, or a list of either.
func yieldString(v interface{}) string {
	switch y := v.(type) {
	case string:
		return y
	case float64:
		return strconv.Itoa(int(y))
	case []interface{}:
		for _, item := range y {
			if s := yieldString(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func stringList(v interface{}) []string {
	switch l := v.(type) {
	case string:
		return []string{l}
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, item := range l {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// keywords is either a comma-joined string or a list.
func flexibleStringList(v interface{}) []string {
	if s, ok := v.(string); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return stringList(v)
}

// image can be a URL, a list, or an ImageObject.
func firstImageURL(v interface{}) string {
	switch img := v.(type) {
	case string:
		return img
	case []interface{}:
		for _, item := range img {
			if u := firstImageURL(item); u != "" {
				return u
			}
		}
	case map[string]interface{}:
		return asString(img["url"])
	}
	return ""
}

// ---------- Text fallback ----------

var boilerplateSelectors = []string{
	"script", "style", "noscript", "nav", "header", "footer", "aside", "form", "iframe",
	".advertisement", ".ads", ".ad", ".social", ".share", ".comments", "#comments",
	".sidebar", ".related", ".newsletter",
}

// tried in order; first match wins
var contentSelectors = []string{
	".recipe", ".recipe-content", ".recipe-card", "[itemtype*='Recipe']",
	"article", "main", ".post-content", ".entry-content", ".content", "#content",
}

func extractReadableText(doc *goquery.Document) string {
	for _, sel := range boilerplateSelectors {
		doc.Find(sel).Remove()
	}

	text := ""
	for _, sel := range contentSelectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			text = node.Text()
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}

	text = collapseWhitespace(text)
	if len(text) > textBudget {
		cut := textBudget
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
