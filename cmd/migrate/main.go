package main

import (
	"fmt"
	"log"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/mbuckingham74/moms-recipes-sub001/config"
	"github.com/mbuckingham74/moms-recipes-sub001/models"
)

// Brings pre-calorie-era databases up to date. Safe to run twice:
// columns are only added when missing.
func main() {
	driver := flag.String("driver", "", "override DB_DRIVER (sqlite|mysql)")
	dbPath := flag.String("db", "", "override DB_PATH for sqlite")
	flag.Parse()

	if *driver != "" {
		os.Setenv("DB_DRIVER", *driver)
	}
	if *dbPath != "" {
		os.Setenv("DB_PATH", *dbPath)
	}

	db, err := config.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if !db.Migrator().HasTable(&models.Recipe{}) {
		log.Fatal("recipes table not found; run the server once to create the schema")
	}

	added, err := config.AddCalorieColumns(db)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	for _, column := range added {
		fmt.Printf("added recipes.%s\n", column)
	}
	if len(added) == 0 {
		fmt.Println("nothing to do")
	}
}
