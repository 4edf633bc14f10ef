package recipe

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
)

type (
	RecipeRepository interface {
		Create(ctx context.Context, recipe *entities.Recipe) error
		FindByID(ctx context.Context, id string) (*entities.Recipe, error)
		Save(ctx context.Context, recipe *entities.Recipe) error
		Delete(ctx context.Context, id string) error
		Search(ctx context.Context, req domain.SearchRecipesRequest) ([]*entities.Recipe, int64, error)
		FindByUser(ctx context.Context, userID string) ([]*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) FindByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Save(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

// applyFilters translates the search request into WHERE clauses. LOWER/LIKE
// keeps the substring filters case-insensitive on both postgres and sqlite.
func applyFilters(q *gorm.DB, req domain.SearchRecipesRequest) *gorm.DB {
	if req.Cuisine != "" {
		q = q.Where("LOWER(cuisine_type) LIKE ?", "%"+strings.ToLower(req.Cuisine)+"%")
	}
	if req.Difficulty != "" {
		q = q.Where("difficulty = ?", req.Difficulty)
	}
	if req.MaxTime != nil {
		q = q.Where("cook_time_min <= ?", *req.MaxTime)
	}
	if req.Query != "" {
		pattern := "%" + strings.ToLower(req.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return q
}

func (r *recipeRepository) Search(ctx context.Context, req domain.SearchRecipesRequest) ([]*entities.Recipe, int64, error) {
	var count int64
	if err := applyFilters(r.db.WithContext(ctx).Model(&entities.Recipe{}), req).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []*entities.Recipe
	if err := applyFilters(r.db.WithContext(ctx).Model(&entities.Recipe{}), req).
		Omit("steps").
		Order("created_at desc").
		Offset(req.Skip).
		Limit(req.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) FindByUser(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Omit("steps").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
