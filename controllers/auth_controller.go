package controllers

import (
	"net/http"

	"github.com/mbuckingham74/moms-recipes-sub001/middlewares"
	"github.com/mbuckingham74/moms-recipes-sub001/services"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"username and password are required"}})
		return
	}

	token, user, err := services.AuthenticateUser(input.Username, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

// GET /api/csrf-token
func CSRFToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"csrf_token": middlewares.IssueCSRFToken()})
}

// GET /api/me
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":       c.MustGet("userID"),
		"username": c.GetString("username"),
		"role":     c.GetString("role"),
	})
}
