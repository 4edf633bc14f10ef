package domain

import (
	"errors"
	"time"
)

const MaxHistoryItems = 50

var (
	MessageSuccessStartCooking    = "cooking session started"
	MessageSuccessCompleteCooking = "cooking session completed"
	MessageSuccessGetHistory      = "success get cooking history"

	MessageFailedStartCooking    = "failed to start cooking session"
	MessageFailedCompleteCooking = "failed to complete cooking session"
	MessageFailedGetHistory      = "failed to get cooking history"

	ErrNoActiveCookingSession = errors.New("no active cooking session")
)

const (
	CookingStatusInProgress = "in_progress"
	CookingStatusCompleted  = "completed"
)

type (
	StartCookingResponse struct {
		SessionID string `json:"session_id"`
	}

	CookingSessionResponse struct {
		ID          string     `json:"id"`
		UserID      string     `json:"user_id"`
		RecipeID    string     `json:"recipe_id"`
		RecipeTitle string     `json:"recipe_title"`
		Status      string     `json:"status"`
		StartedAt   time.Time  `json:"started_at"`
		CompletedAt *time.Time `json:"completed_at,omitempty"`
	}

	CookingHistoryResponse struct {
		Items []CookingSessionResponse `json:"items"`
	}
)
