package cooking

import (
	"context"

	"gorm.io/gorm"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
)

type (
	CookingRepository interface {
		CreateSession(ctx context.Context, session *entities.CookingSession) error
		FindLatestInProgress(ctx context.Context, userID, recipeID string) (*entities.CookingSession, error)
		Save(ctx context.Context, session *entities.CookingSession) error
		FindByUser(ctx context.Context, userID string, limit int) ([]*entities.CookingSession, error)
	}

	cookingRepository struct {
		db *gorm.DB
	}
)

func NewCookingRepository(db *gorm.DB) CookingRepository {
	return &cookingRepository{db: db}
}

func (r *cookingRepository) CreateSession(ctx context.Context, session *entities.CookingSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// FindLatestInProgress returns the most recently started in_progress session
// for the (user, recipe) pair.
func (r *cookingRepository) FindLatestInProgress(ctx context.Context, userID, recipeID string) (*entities.CookingSession, error) {
	var session entities.CookingSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND status = ?", userID, recipeID, domain.CookingStatusInProgress).
		Order("started_at desc").
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *cookingRepository) Save(ctx context.Context, session *entities.CookingSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *cookingRepository) FindByUser(ctx context.Context, userID string, limit int) ([]*entities.CookingSession, error) {
	var sessions []*entities.CookingSession
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at desc").
		Limit(limit).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
