package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mbuckingham74/moms-recipes-sub001/models"
	"github.com/mbuckingham74/moms-recipes-sub001/services"
	"github.com/mbuckingham74/moms-recipes-sub001/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/recipes
func ListRecipes(c *gin.Context) {
	recipes, err := services.ListRecipes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipeSummaries(recipes))
}

// GET /api/recipes/search?q=&tag=&ingredient=
func SearchRecipes(c *gin.Context) {
	recipes, err := services.SearchRecipes(c.Query("q"), c.Query("tag"), c.Query("ingredient"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipeSummaries(recipes))
}

// GET /api/recipes/:id
func GetRecipe(c *gin.Context) {
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
	c.JSON(http.StatusOK, recipe)
}

// POST /api/recipes
func CreateRecipe(c *gin.Context) {
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid JSON payload: " + err.Error()}})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	recipe, err := services.CreateRecipe(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// PUT /api/recipes/:id
func UpdateRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid recipe id"}})
		return
	}

	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid JSON payload: " + err.Error()}})
		return
	}
	if errs := input.Validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	recipe, err := services.UpdateRecipe(id, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DELETE /api/recipes/:id
func DeleteRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid recipe id"}})
		return
	}

	// fetch first so the stored image can be cleaned up afterwards
	recipe, err := services.GetRecipe(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeleteRecipe(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if recipe.ImagePath != "" {
		if err := utils.RemoveRecipeImage(recipe.ImagePath); err != nil {
			log.Printf("failed to remove image for deleted recipe %d: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// compact rows for list/search views
func recipeSummaries(recipes []models.Recipe) []gin.H {
	out := make([]gin.H, 0, len(recipes))
	for _, r := range recipes {
		tags := make([]string, 0, len(r.Tags))
		for _, t := range r.Tags {
			tags = append(tags, t.Name)
		}
		out = append(out, gin.H{
			"id":                 r.ID,
			"title":              r.Title,
			"tags":               tags,
			"image_path":         r.ImagePath,
			"servings":           r.Servings,
			"estimated_calories": r.EstimatedCalories,
			"created_at":         r.CreatedAt,
		})
	}
	return out
}
