package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/models"
)

// ErrPendingInvalid means the staged payload cannot become a recipe
// yet; the message carries what is missing.
var ErrPendingInvalid = errors.New("staged recipe is incomplete")

// CreatePendingRecipe stages an upload together with whatever the
// parser made of it.
func CreatePendingRecipe(filename, rawText string, parsed *RecipeInput) (*models.PendingRecipe, error) {
	pending := &models.PendingRecipe{
		Filename: filename,
		RawText:  rawText,
		Status:   "pending",
	}
	if parsed != nil {
		b, err := json.Marshal(parsed)
		if err != nil {
			return nil, fmt.Errorf("failed to encode parsed recipe: %w", err)
		}
		pending.ParsedJSON = string(b)
	}

	if err := config.DB.Create(pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

func ListPendingRecipes() ([]models.PendingRecipe, error) {
	var rows []models.PendingRecipe
	err := config.DB.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func GetPendingRecipe(id uint) (*models.PendingRecipe, error) {
	var pending models.PendingRecipe
	if err := config.DB.First(&pending, id).Error; err != nil {
		return nil, err
	}
	return &pending, nil
}

// ApprovePendingRecipe turns the staged payload into a real recipe
// through the normal create path, then drops the staging row.
func ApprovePendingRecipe(id uint) (*models.Recipe, error) {
	pending, err := GetPendingRecipe(id)
	if err != nil {
		return nil, err
	}

	var input RecipeInput
	if pending.ParsedJSON != "" {
		if err := json.Unmarshal([]byte(pending.ParsedJSON), &input); err != nil {
			return nil, fmt.Errorf("staged recipe JSON is unreadable: %w", err)
		}
	}
	if errs := input.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrPendingInvalid, strings.Join(errs, "; "))
	}

	recipe, err := CreateRecipe(input)
	if err != nil {
		return nil, err
	}

	if err := config.DB.Delete(pending).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func DeletePendingRecipe(id uint) error {
	pending, err := GetPendingRecipe(id)
	if err != nil {
		return err
	}
	return config.DB.Delete(pending).Error
}
