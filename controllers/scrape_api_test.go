package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbuckingham74/moms-recipes-sub001/controllers"
	"github.com/mbuckingham74/moms-recipes-sub001/services"
)

type stubScraper struct {
	result *services.ScrapeResult
	err    error
	gotURL string
}

func (s *stubScraper) ScrapeURL(rawURL string) (*services.ScrapeResult, error) {
	s.gotURL = rawURL
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func withScraper(t *testing.T, s controllers.RecipeScraper) {
	t.Helper()
	prev := controllers.Scraper
	controllers.Scraper = s
	t.Cleanup(func() { controllers.Scraper = prev })
}

func TestScrape_RequiresURL(t *testing.T) {
	r := setupAPI(t)
	csrf := fetchCSRF(t, r)

	rr := doJSON(t, r, http.MethodPost, "/api/scrape", adminToken(t), csrf, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "url is required")
}

func TestScrape_InvalidSchemeIsCallerError(t *testing.T) {
	r := setupAPI(t)
	csrf := fetchCSRF(t, r)

	payload := map[string]string{"url": "ftp://example.com/pie"}
	rr := doJSON(t, r, http.MethodPost, "/api/scrape", adminToken(t), csrf, payload)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScrape_UpstreamErrorsMapToGatewayStatuses(t *testing.T) {
	r := setupAPI(t)
	csrf := fetchCSRF(t, r)
	admin := adminToken(t)
	payload := map[string]string{"url": "https://example.com/pie"}

	withScraper(t, &stubScraper{err: services.ErrScrapeTimeout})
	rr := doJSON(t, r, http.MethodPost, "/api/scrape", admin, csrf, payload)
	assert.Equal(t, http.StatusGatewayTimeout, rr.Code)

	withScraper(t, &stubScraper{err: &services.ScrapeStatusError{StatusCode: 503}})
	rr = doJSON(t, r, http.MethodPost, "/api/scrape", admin, csrf, payload)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "HTTP 503")
}

func TestScrape_StructuredPage(t *testing.T) {
	r := setupAPI(t)
	csrf := fetchCSRF(t, r)

	page := `<html><head><script type="application/ld+json">
	{"@type":"Recipe","name":"Skillet Cornbread","recipeYield":"8 servings",
	 "recipeIngredient":["1 cup cornmeal"],"recipeInstructions":"Mix and bake."}
	</script></head><body></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	rr := doJSON(t, r, http.MethodPost, "/api/scrape", adminToken(t), csrf, map[string]string{"url": srv.URL})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result services.ScrapeResult
	decodeBody(t, rr, &result)
	assert.True(t, result.Structured)
	if assert.NotNil(t, result.Recipe) {
		assert.Equal(t, "Skillet Cornbread", result.Recipe.Title)
		assert.Equal(t, 8, result.Recipe.Servings)
		assert.Equal(t, srv.URL, result.Recipe.Source)
	}
}

func TestScrape_PassesURLThrough(t *testing.T) {
	r := setupAPI(t)
	csrf := fetchCSRF(t, r)

	stub := &stubScraper{result: &services.ScrapeResult{Text: "some page text"}}
	withScraper(t, stub)

	rr := doJSON(t, r, http.MethodPost, "/api/scrape", adminToken(t), csrf, map[string]string{"url": "https://example.com/meatloaf"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://example.com/meatloaf", stub.gotURL)
	assert.Contains(t, rr.Body.String(), `"structured":false`)
}
