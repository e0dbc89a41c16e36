package models

import "time"

// A PendingRecipe stages an uploaded file (text or photo) until a
// person reviews it. ParsedJSON mirrors the recipe create payload.
type PendingRecipe struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Filename   string    `gorm:"size:255" json:"filename"`
	RawText    string    `gorm:"type:text" json:"raw_text"`
	ParsedJSON string    `gorm:"type:text" json:"parsed_json"`
	Status     string    `gorm:"size:16;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
