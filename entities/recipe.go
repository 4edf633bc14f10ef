package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CuisineType string    `json:"cuisine_type"`
	Difficulty  string    `json:"difficulty"` // Easy/Medium/Hard
	PrepTimeMin int       `json:"prep_time_min"`
	CookTimeMin int       `json:"cook_time_min"`
	Servings    int       `json:"servings"`

	// JSON-encoded arrays of domain.Ingredient / domain.Step
	Ingredients string `gorm:"type:text" json:"-"`
	Steps       string `gorm:"type:text" json:"-"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
