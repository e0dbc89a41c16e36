package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mbuckingham74/moms-recipes-sub001/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AIClient is set at startup when GEMINI_API_KEY is present; tests
// inject a fake. Nil means the AI endpoints report unavailable.
var AIClient services.RecipeAI

const aiTimeout = 30 * time.Second

// POST /api/recipes/:id/estimate-calories
func EstimateCalories(c *gin.Context) {
	if AIClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI estimation is not configured"})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid recipe id"}})
		return
	}

	recipe, err := services.GetRecipe(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(recipe.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"recipe has no ingredients to estimate from"}})
		return
	}

	lines := make([]string, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		parts := make([]string, 0, 3)
		for _, p := range []string{ing.Quantity, ing.Unit, ing.Name} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
	defer cancel()

	est, err := AIClient.EstimateCalories(ctx, lines, recipe.Servings)
	if err != nil {
		log.Printf("calorie estimation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "calorie estimation failed upstream"})
		return
	}

	updated, err := services.SetRecipeCalories(id, est.Calories, est.Confidence)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"estimated_calories":  updated.EstimatedCalories,
		"calories_confidence": updated.CaloriesConfidence,
	})
}
