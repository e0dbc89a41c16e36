package services

import (
	"github.com/mbuckingham74/moms-recipes-sub001/config"
)

type TagCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ListTags returns every tag with the number of recipes using it,
// alphabetically. Unused tags still show up with a zero count.
func ListTags() ([]TagCount, error) {
	var rows []TagCount
	err := config.DB.
		Table("tags").
		Select("tags.id, tags.name, COUNT(recipe_tags.recipe_id) AS count").
		Joins("LEFT JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name ASC").
		Scan(&rows).Error
	return rows, err
}
