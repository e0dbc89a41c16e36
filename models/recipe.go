package models

import "time"

// One Recipe plus its ordered ingredient list and tags.
type Recipe struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	Source             string    `gorm:"size:512" json:"source"` // URL or free text ("Grandma's card box")
	Instructions       string    `gorm:"type:text" json:"instructions"`
	Servings           int       `json:"servings"`
	EstimatedCalories  int       `json:"estimated_calories"` // per serving, 0 = never estimated
	CaloriesConfidence string    `gorm:"size:16" json:"calories_confidence"` // "" | "low" | "medium" | "high"
	ImagePath          string    `gorm:"size:512" json:"image_path"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Ingredients []Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;" json:"tags"`
}

// Each Ingredient keeps quantity as free text ("1 1/2", "a pinch").
// Position preserves the order the cook wrote them in.
type Ingredient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID uint   `gorm:"index;not null" json:"-"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Quantity string `gorm:"size:64" json:"quantity"`
	Unit     string `gorm:"size:64" json:"unit"`
	Position int    `json:"position"`
}
