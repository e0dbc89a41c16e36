// services/recipe_service.go
package services

import (
	"fmt"
	"strings"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/models"
	"github.com/mbuckingham74/moms-recipes-sub001/utils"

	"gorm.io/gorm"
)

type IngredientInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type RecipeInput struct {
	Title        string            `json:"title"`
	Source       string            `json:"source"`
	Instructions string            `json:"instructions"`
	Servings     int               `json:"servings"`
	Ingredients  []IngredientInput `json:"ingredients"`
	Tags         []string          `json:"tags"`
}

// Validate returns every problem with the payload at once so the
// client can show them all.
func (in *RecipeInput) Validate() []string {
	var errs []string
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "title is required")
	}
	if in.Servings < 0 {
		errs = append(errs, "servings must not be negative")
	}
	for i, ing := range in.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			errs = append(errs, fmt.Sprintf("ingredient %d: name is required", i+1))
		}
	}
	return errs
}

func CreateRecipe(input RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:        strings.TrimSpace(input.Title),
		Source:       strings.TrimSpace(input.Source),
		Instructions: input.Instructions,
		Servings:     input.Servings,
	}

	// parent row, ingredient rows and tag links land together or not at all
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceIngredients(tx, recipe.ID, input.Ingredients); err != nil {
			return err
		}
		return replaceTags(tx, recipe, input.Tags)
	})
	if err != nil {
		return nil, err
	}

	return GetRecipe(recipe.ID)
}

func GetRecipe(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := config.DB.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tags").
		First(&recipe, id).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &recipe, nil
}

func ListRecipes() ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := config.DB.
		Preload("Tags").
		Order("created_at DESC").
		Find(&recipes).Error
	return recipes, err
}

// SearchRecipes combines the three filters with AND. A filter left
// empty is skipped; no match is an empty slice, never an error.
func SearchRecipes(title, tag, ingredient string) ([]models.Recipe, error) {
	q := config.DB.Model(&models.Recipe{}).Distinct("recipes.*").Preload("Tags")

	if title != "" {
		q = q.Where("recipes.title LIKE ?", "%"+title+"%")
	}
	if tag != "" {
		q = q.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("LOWER(tags.name) = ?", strings.ToLower(strings.TrimSpace(tag)))
	}
	if ingredient != "" {
		q = q.
			Joins("JOIN ingredients ON ingredients.recipe_id = recipes.id").
			Where("ingredients.name LIKE ?", "%"+ingredient+"%")
	}

	var recipes []models.Recipe
	err := q.Order("recipes.created_at DESC").Find(&recipes).Error
	return recipes, err
}

func UpdateRecipe(id uint, input RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := config.DB.First(&recipe, id).Error; err != nil {
		return nil, err
	}

	recipe.Title = strings.TrimSpace(input.Title)
	recipe.Source = strings.TrimSpace(input.Source)
	recipe.Instructions = input.Instructions
	recipe.Servings = input.Servings

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}
		if err := replaceIngredients(tx, recipe.ID, input.Ingredients); err != nil {
			return err
		}
		return replaceTags(tx, &recipe, input.Tags)
	})
	if err != nil {
		return nil, err
	}

	return GetRecipe(recipe.ID)
}

func DeleteRecipe(id uint) error {
	var recipe models.Recipe
	if err := config.DB.First(&recipe, id).Error; err != nil {
		return err
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// SetRecipeImage records the stored path on the recipe and returns
// the previous one so the caller can clean it up.
func SetRecipeImage(id uint, path string) (string, error) {
	var recipe models.Recipe
	if err := config.DB.First(&recipe, id).Error; err != nil {
		return "", err
	}
	previous := recipe.ImagePath
	recipe.ImagePath = path
	if err := config.DB.Save(&recipe).Error; err != nil {
		return "", err
	}
	return previous, nil
}

// SetRecipeCalories persists an AI estimate alongside its confidence.
func SetRecipeCalories(id uint, calories int, confidence string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := config.DB.First(&recipe, id).Error; err != nil {
		return nil, err
	}
	recipe.EstimatedCalories = calories
	recipe.CaloriesConfidence = confidence
	if err := config.DB.Save(&recipe).Error; err != nil {
		return nil, err
	}
	return GetRecipe(recipe.ID)
}

// delete old rows, re-create trimmed ones in payload order
func replaceIngredients(tx *gorm.DB, recipeID uint, items []IngredientInput) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Ingredient{}).Error; err != nil {
		return err
	}
	for i, it := range items {
		ing := &models.Ingredient{
			RecipeID: recipeID,
			Name:     strings.TrimSpace(it.Name),
			Quantity: strings.TrimSpace(it.Quantity),
			Unit:     strings.TrimSpace(it.Unit),
			Position: i,
		}
		if err := tx.Create(ing).Error; err != nil {
			return err
		}
	}
	return nil
}

// find-or-create each normalized tag, then swap the association set
func replaceTags(tx *gorm.DB, recipe *models.Recipe, names []string) error {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range utils.NormalizeTagNames(names) {
		var tag models.Tag
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			return err
		}
		tags = append(tags, tag)
	}
	return tx.Model(recipe).Association("Tags").Replace(&tags)
}
