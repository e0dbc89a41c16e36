package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mbuckingham74/moms-recipes-sub001/services"
	"github.com/mbuckingham74/moms-recipes-sub001/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// POST /api/recipes/:id/image  multipart field "image"
func UploadRecipeImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid recipe id"}})
		return
	}

	// confirm the recipe exists before touching storage
	if _, err := services.GetRecipe(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"image file is required"}})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"only jpg, jpeg and png images are accepted"}})
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

	path, err := utils.StoreRecipeImage(data, ext)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"could not process image: " + err.Error()}})
		return
	}

	previous, err := services.SetRecipeImage(id, path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if previous != "" && previous != path {
		if err := utils.RemoveRecipeImage(previous); err != nil {
			log.Printf("failed to remove replaced image %s: %v", previous, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"image_path": path})
}

// DELETE /api/recipes/:id/image
func DeleteRecipeImage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"invalid recipe id"}})
		return
	}

	previous, err := services.SetRecipeImage(id, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if previous != "" {
		if err := utils.RemoveRecipeImage(previous); err != nil {
			log.Printf("failed to remove image %s: %v", previous, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "image removed"})
}
