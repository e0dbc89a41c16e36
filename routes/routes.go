package routes

import (
	"net/http"
	"time"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/controllers"
	"github.com/mbuckingham74/moms-recipes-sub001/middlewares"
	"github.com/mbuckingham74/moms-recipes-sub001/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.EnvOr("FRONTEND_ORIGIN", "http://localhost:5173")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// liveness and stored photos stay public
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "moms-recipes backend is running"})
	})
	r.Static("/uploads", utils.UploadsDir())

	api := r.Group("/api")
	api.Use(middlewares.CSRFMiddleware())

	// the token endpoint is a GET, so it passes its own middleware;
	// login needs a token like every other POST
	api.GET("/csrf-token", controllers.CSRFToken)
	api.POST("/auth/login", controllers.Login)

	authed := api.Group("")
	authed.Use(middlewares.AuthMiddleware())
	{
		authed.GET("/me", controllers.Me)

		authed.GET("/recipes", controllers.ListRecipes)
		authed.GET("/recipes/search", controllers.SearchRecipes)
		authed.GET("/recipes/:id", controllers.GetRecipe)
		authed.GET("/tags", controllers.ListTags)
		authed.GET("/pending", controllers.ListPendingRecipes)
		authed.GET("/pending/:id", controllers.GetPendingRecipe)
	}

	// every mutating route needs the admin role
	admin := authed.Group("")
	admin.Use(middlewares.RequireAdmin())
	{
		admin.POST("/recipes", controllers.CreateRecipe)
		admin.PUT("/recipes/:id", controllers.UpdateRecipe)
		admin.DELETE("/recipes/:id", controllers.DeleteRecipe)

		admin.POST("/recipes/:id/image", controllers.UploadRecipeImage)
		admin.DELETE("/recipes/:id/image", controllers.DeleteRecipeImage)
		admin.POST("/recipes/:id/estimate-calories", controllers.EstimateCalories)

		admin.POST("/scrape", controllers.ScrapeRecipe)

		admin.POST("/pending", controllers.UploadPendingRecipe)
		admin.POST("/pending/:id/approve", controllers.ApprovePendingRecipe)
		admin.DELETE("/pending/:id", controllers.DeletePendingRecipe)
	}

	return r
}
