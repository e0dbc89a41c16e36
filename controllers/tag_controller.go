package controllers

import (
	"net/http"

	"github.com/mbuckingham74/moms-recipes-sub001/services"

	"github.com/gin-gonic/gin"
)

// GET /api/tags
func ListTags(c *gin.Context) {
	tags, err := services.ListTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tags)
}
