package controllers

import (
	"errors"
	"net/http"

	"github.com/mbuckingham74/moms-recipes-sub001/services"

	"github.com/gin-gonic/gin"
)

// RecipeScraper is the slice of the scrape service the handler needs.
type RecipeScraper interface {
	ScrapeURL(rawURL string) (*services.ScrapeResult, error)
}

// Scraper is swapped for a stub in tests.
var Scraper RecipeScraper = services.NewScrapeService()

type ScrapeInput struct {
	URL string `json:"url" binding:"required"`
}

// POST /api/scrape
func ScrapeRecipe(c *gin.Context) {
	var input ScrapeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"url is required"}})
		return
	}

	result, err := Scraper.ScrapeURL(input.URL)
	if err != nil {
		c.JSON(scrapeErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// invalid input is the caller's fault; everything else is the site's
func scrapeErrorStatus(err error) int {
	var statusErr *services.ScrapeStatusError
	switch {
	case errors.Is(err, services.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrScrapeTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &statusErr):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
