package controllers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mbuckingham74/moms-recipes-sub001/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var allowedTextExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// POST /api/pending  multipart field "file"
// Text files keep their raw content, photos go through the AI vision parse.
func UploadPendingRecipe(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"a file is required"}})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedTextExtensions[ext] && !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"only .txt, .md, .jpg, .jpeg and .png files are accepted"}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read upload"})
		return
	}

	var rawText string
	var parsed *services.RecipeInput

	if allowedTextExtensions[ext] {
		rawText = string(data)
		// best effort: a failed parse still stages the raw text
		if AIClient != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
			defer cancel()
			if p, err := AIClient.ParseRecipeText(ctx, rawText); err == nil {
				parsed = p
			} else {
				log.Printf("pending text parse failed: %v", err)
			}
		}
	} else {
		if AIClient == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI parsing is not configured"})
			return
		}
		format := "jpeg"
		if ext == ".png" {
			format = "png"
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), aiTimeout)
		defer cancel()
		parsed, err = AIClient.ParseRecipeImage(ctx, data, format)
		if err != nil {
			log.Printf("pending image parse failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not read a recipe out of the photo"})
			return
		}
	}

	pending, err := services.CreatePendingRecipe(fileHeader.Filename, rawText, parsed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pending)
}

// GET /api/pending
func ListPendingRecipes(c *gin.Context) {
	rows, err := services.ListPendingRecipes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /api/pending/:id
func GetPendingRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid pending recipe id"}})
		return
	}

	pending, err := services.GetPendingRecipe(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pending)
}

// POST /api/pending/:id/approve
func ApprovePendingRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid pending recipe id"}})
		return
	}

	recipe, err := services.ApprovePendingRecipe(id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending recipe not found"})
		case errors.Is(err, services.ErrPendingInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DELETE /api/pending/:id
func DeletePendingRecipe(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid pending recipe id"}})
		return
	}

	if err := services.DeletePendingRecipe(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pending recipe removed"})
}
