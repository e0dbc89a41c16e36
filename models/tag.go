package models

// Tag names are stored lowercase and deduplicated before insert.
type Tag struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Recipes []Recipe `gorm:"many2many:recipe_tags;" json:"-"`
}
