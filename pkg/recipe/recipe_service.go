package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils/storage"
)

type (
	RecipeService interface {
		Create(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		Update(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) error
		Delete(ctx context.Context, recipeID string, userID string) error
		Search(ctx context.Context, req domain.SearchRecipesRequest) (domain.RecipeListResponse, error)
		Mine(ctx context.Context, userID string) ([]domain.RecipeSummary, error)
		GetByID(ctx context.Context, recipeID string) (domain.RecipeDetail, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		storage          storage.Storage
	}
)

func NewRecipeService(recipeRepository RecipeRepository, storage storage.Storage) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		storage:          storage,
	}
}

func parseIngredients(raw string) ([]domain.Ingredient, error) {
	if strings.TrimSpace(raw) == "" {
		raw = "[]"
	}
	ingredients := []domain.Ingredient{}
	if err := json.Unmarshal([]byte(raw), &ingredients); err != nil {
		return nil, domain.ErrInvalidIngredientsJSON
	}
	return ingredients, nil
}

func parseSteps(raw string) ([]domain.Step, error) {
	if strings.TrimSpace(raw) == "" {
		raw = "[]"
	}
	steps := []domain.Step{}
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, domain.ErrInvalidStepsJSON
	}
	return steps, nil
}

// checkMediaIndexes validates the parallel index list against the file list
// and the step bounds. Runs before any file is written so a bad request has
// no side effects.
func checkMediaIndexes(fileCount int, indexes []int, stepCount int) error {
	if fileCount == 0 {
		return nil
	}
	if len(indexes) != fileCount {
		return domain.ErrMediaIndexMismatch
	}
	for _, idx := range indexes {
		if idx < 0 || idx >= stepCount {
			return domain.ErrMediaIndexOutOfRange
		}
	}
	return nil
}

func (s *recipeService) Create(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	ingredients, err := parseIngredients(req.IngredientsJSON)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	steps, err := parseSteps(req.StepsJSON)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	for i := range steps {
		steps[i].Images = []string{}
		steps[i].Videos = []string{}
	}

	if err := checkMediaIndexes(len(req.StepImages), req.StepImageIdx, len(steps)); err != nil {
		return domain.RecipeDetail{}, err
	}
	if err := checkMediaIndexes(len(req.StepVideos), req.StepVideoIdx, len(steps)); err != nil {
		return domain.RecipeDetail{}, err
	}
	for _, file := range req.StepVideos {
		if !storage.Allowed(file, storage.AllowVideo...) {
			return domain.RecipeDetail{}, domain.ErrInvalidVideoType
		}
	}

	for i, file := range req.StepImages {
		objectKey, err := s.storage.UploadFile(uuid.New().String(), file, "images")
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		idx := req.StepImageIdx[i]
		steps[idx].Images = append(steps[idx].Images, s.storage.GetPublicLink(objectKey))
	}

	for i, file := range req.StepVideos {
		objectKey, err := s.storage.UploadFile(uuid.New().String(), file, "videos", storage.AllowVideo...)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
		idx := req.StepVideoIdx[i]
		steps[idx].Videos = append(steps[idx].Videos, s.storage.GetPublicLink(objectKey))
	}

	ingredientsJSON, err := json.Marshal(ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      userUUID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CuisineType: strings.TrimSpace(req.CuisineType),
		Difficulty:  strings.TrimSpace(req.Difficulty),
		PrepTimeMin: req.PrepTimeMin,
		CookTimeMin: req.CookTimeMin,
		Servings:    req.Servings,
		Ingredients: string(ingredientsJSON),
		Steps:       string(stepsJSON),
	}

	if err := s.recipeRepository.Create(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, err
	}

	return toRecipeDetail(recipe), nil
}

func (s *recipeService) findOwned(ctx context.Context, recipeID string, userID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	if recipe.UserID.String() != userID {
		return nil, domain.ErrNotRecipeOwner
	}
	return recipe, nil
}

func (s *recipeService) Update(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string) error {
	recipe, err := s.findOwned(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if req.Title != nil {
		recipe.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		recipe.Description = strings.TrimSpace(*req.Description)
	}
	if req.CuisineType != nil {
		recipe.CuisineType = strings.TrimSpace(*req.CuisineType)
	}
	if req.Difficulty != nil {
		recipe.Difficulty = strings.TrimSpace(*req.Difficulty)
	}
	if req.PrepTimeMin != nil {
		recipe.PrepTimeMin = *req.PrepTimeMin
	}
	if req.CookTimeMin != nil {
		recipe.CookTimeMin = *req.CookTimeMin
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}

	if req.IngredientsJSON != nil {
		ingredients, err := parseIngredients(*req.IngredientsJSON)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(ingredients)
		if err != nil {
			return err
		}
		recipe.Ingredients = string(raw)
	}

	if req.StepsJSON != nil {
		steps, err := parseSteps(*req.StepsJSON)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(steps)
		if err != nil {
			return err
		}
		recipe.Steps = string(raw)
	}

	return s.recipeRepository.Save(ctx, recipe)
}

func (s *recipeService) Delete(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.findOwned(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	return s.recipeRepository.Delete(ctx, recipe.ID.String())
}

func (s *recipeService) Search(ctx context.Context, req domain.SearchRecipesRequest) (domain.RecipeListResponse, error) {
	if req.Skip < 0 {
		req.Skip = 0
	}
	if req.Limit <= 0 {
		req.Limit = domain.DefaultListLimit
	}
	if req.Limit > domain.MaxListLimit {
		req.Limit = domain.MaxListLimit
	}

	recipes, count, err := s.recipeRepository.Search(ctx, req)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	items := make([]domain.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, toRecipeSummary(recipe))
	}

	return domain.RecipeListResponse{
		Items: items,
		Total: count,
		Skip:  req.Skip,
		Limit: req.Limit,
	}, nil
}

func (s *recipeService) Mine(ctx context.Context, userID string) ([]domain.RecipeSummary, error) {
	recipes, err := s.recipeRepository.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.RecipeSummary, 0, len(recipes))
	for _, recipe := range recipes {
		items = append(items, toRecipeSummary(recipe))
	}
	return items, nil
}

func (s *recipeService) GetByID(ctx context.Context, recipeID string) (domain.RecipeDetail, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.RecipeDetail{}, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, err
	}
	return toRecipeDetail(recipe), nil
}

func toRecipeSummary(recipe *entities.Recipe) domain.RecipeSummary {
	ingredients := []domain.Ingredient{}
	if recipe.Ingredients != "" {
		_ = json.Unmarshal([]byte(recipe.Ingredients), &ingredients)
	}

	return domain.RecipeSummary{
		ID:          recipe.ID.String(),
		UserID:      recipe.UserID.String(),
		Title:       recipe.Title,
		Description: recipe.Description,
		CuisineType: recipe.CuisineType,
		Difficulty:  recipe.Difficulty,
		PrepTimeMin: recipe.PrepTimeMin,
		CookTimeMin: recipe.CookTimeMin,
		Servings:    recipe.Servings,
		Ingredients: ingredients,
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
	}
}

func toRecipeDetail(recipe *entities.Recipe) domain.RecipeDetail {
	steps := []domain.Step{}
	if recipe.Steps != "" {
		_ = json.Unmarshal([]byte(recipe.Steps), &steps)
	}

	return domain.RecipeDetail{
		RecipeSummary: toRecipeSummary(recipe),
		Steps:         steps,
	}
}
