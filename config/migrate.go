package config

import (
	"gorm.io/gorm"

	"github.com/mbuckingham74/moms-recipes-sub001/models"
)

// CalorieColumns are the recipe fields added after the first release.
var CalorieColumns = []string{"servings", "estimated_calories", "calories_confidence"}

// AddCalorieColumns adds whichever calorie-era columns are still
// missing from recipes and reports the ones it created. Running it
// against an up-to-date schema changes nothing.
func AddCalorieColumns(db *gorm.DB) ([]string, error) {
	migrator := db.Migrator()
	var added []string
	for _, column := range CalorieColumns {
		if migrator.HasColumn(&models.Recipe{}, column) {
			continue
		}
		if err := migrator.AddColumn(&models.Recipe{}, column); err != nil {
			return added, err
		}
		added = append(added, column)
	}
	return added, nil
}
