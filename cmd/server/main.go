package main

import (
	"context"
	"log"
	"os"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/controllers"
	"github.com/mbuckingham74/moms-recipes-sub001/routes"
	"github.com/mbuckingham74/moms-recipes-sub001/services"
	"github.com/mbuckingham74/moms-recipes-sub001/utils"
)

func main() {
	config.InitDB()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	if os.Getenv("IMAGE_STORAGE") == "s3" {
		utils.InitS3()
	}

	if os.Getenv("GEMINI_API_KEY") != "" {
		ai, err := services.NewGeminiService(context.Background())
		if err != nil {
			log.Fatalf("Failed to initialise Gemini client: %v", err)
		}
		controllers.AIClient = ai
	} else {
		log.Println("GEMINI_API_KEY not set; calorie estimation and upload parsing are disabled")
	}

	r := routes.SetupRouter()
	if err := r.Run(":" + config.EnvOr("PORT", "8080")); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
