package entities

import (
	"time"

	"github.com/google/uuid"
)

type CookingSession struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	RecipeID    uuid.UUID  `json:"recipe_id"`
	RecipeTitle string     `json:"recipe_title"`
	Status      string     `json:"status"` // in_progress | completed
	StartedAt   time.Time  `gorm:"type:timestamp" json:"started_at"`
	CompletedAt *time.Time `gorm:"type:timestamp" json:"completed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
}
