package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	MaxListLimit     = 50
	DefaultListLimit = 20
)

var (
	MessageSuccessCreateRecipe = "recipe created"
	MessageSuccessUpdateRecipe = "recipe updated"
	MessageSuccessDeleteRecipe = "recipe deleted"
	MessageSuccessGetRecipes   = "success get recipes"
	MessageSuccessGetRecipe    = "success get recipe detail"

	MessageFailedCreateRecipe = "failed to create recipe"
	MessageFailedUpdateRecipe = "failed to update recipe"
	MessageFailedDeleteRecipe = "failed to delete recipe"
	MessageFailedGetRecipes   = "failed to get recipes"
	MessageFailedGetRecipe    = "failed to get recipe detail"

	ErrRecipeNotFound         = errors.New("recipe not found")
	ErrNotRecipeOwner         = errors.New("not allowed")
	ErrInvalidIngredientsJSON = errors.New("invalid ingredients_json")
	ErrInvalidStepsJSON       = errors.New("invalid steps_json")
	ErrMediaIndexMismatch     = errors.New("media index list must match file list length")
	ErrMediaIndexOutOfRange   = errors.New("invalid step index for media file")
	ErrInvalidVideoType       = errors.New("invalid video type")
)

type (
	Ingredient struct {
		Name string  `json:"name"`
		Qty  float64 `json:"qty"`
		Unit string  `json:"unit"`
	}

	Step struct {
		Text   string   `json:"text"`
		Images []string `json:"images"`
		Videos []string `json:"videos"`
	}

	CreateRecipeRequest struct {
		Title           string `form:"title" validate:"required"`
		Description     string `form:"description"`
		CuisineType     string `form:"cuisine_type"`
		Difficulty      string `form:"difficulty"`
		PrepTimeMin     int    `form:"prep_time_min" validate:"min=0"`
		CookTimeMin     int    `form:"cook_time_min" validate:"min=0"`
		Servings        int    `form:"servings" validate:"min=1"`
		IngredientsJSON string `form:"ingredients_json"`
		StepsJSON       string `form:"steps_json"`

		// Uploaded media files, matched to steps by the parallel index lists.
		StepImages   []*multipart.FileHeader `form:"-"`
		StepImageIdx []int                   `form:"-"`
		StepVideos   []*multipart.FileHeader `form:"-"`
		StepVideoIdx []int                   `form:"-"`
	}

	UpdateRecipeRequest struct {
		Title           *string `form:"title"`
		Description     *string `form:"description"`
		CuisineType     *string `form:"cuisine_type"`
		Difficulty      *string `form:"difficulty"`
		PrepTimeMin     *int    `form:"prep_time_min"`
		CookTimeMin     *int    `form:"cook_time_min"`
		Servings        *int    `form:"servings"`
		IngredientsJSON *string `form:"ingredients_json"`
		StepsJSON       *string `form:"steps_json"`
	}

	SearchRecipesRequest struct {
		Query      string
		Cuisine    string
		Difficulty string
		MaxTime    *int
		Skip       int
		Limit      int
	}

	RecipeSummary struct {
		ID          string       `json:"id"`
		UserID      string       `json:"user_id"`
		Title       string       `json:"title"`
		Description string       `json:"description"`
		CuisineType string       `json:"cuisine_type"`
		Difficulty  string       `json:"difficulty"`
		PrepTimeMin int          `json:"prep_time_min"`
		CookTimeMin int          `json:"cook_time_min"`
		Servings    int          `json:"servings"`
		Ingredients []Ingredient `json:"ingredients"`
		CreatedAt   time.Time    `json:"created_at"`
		UpdatedAt   time.Time    `json:"updated_at"`
	}

	RecipeDetail struct {
		RecipeSummary
		Steps []Step `json:"steps"`
	}

	RecipeListResponse struct {
		Items []RecipeSummary `json:"items"`
		Total int64           `json:"total"`
		Skip  int             `json:"skip"`
		Limit int             `json:"limit"`
	}
)
