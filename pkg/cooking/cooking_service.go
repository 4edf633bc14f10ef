package cooking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/recipe"
)

type (
	CookingService interface {
		Start(ctx context.Context, recipeID string, userID string) (domain.StartCookingResponse, error)
		Complete(ctx context.Context, recipeID string, userID string) error
		History(ctx context.Context, userID string) (domain.CookingHistoryResponse, error)
	}

	cookingService struct {
		cookingRepository CookingRepository
		recipeRepository  recipe.RecipeRepository
	}
)

func NewCookingService(cookingRepository CookingRepository, recipeRepository recipe.RecipeRepository) CookingService {
	return &cookingService{
		cookingRepository: cookingRepository,
		recipeRepository:  recipeRepository,
	}
}

func (s *cookingService) Start(ctx context.Context, recipeID string, userID string) (domain.StartCookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.StartCookingResponse{}, domain.ErrParseUUID
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.StartCookingResponse{}, domain.ErrRecipeNotFound
	}

	r, err := s.recipeRepository.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StartCookingResponse{}, domain.ErrRecipeNotFound
		}
		return domain.StartCookingResponse{}, err
	}

	session := &entities.CookingSession{
		ID:          uuid.New(),
		UserID:      userUUID,
		RecipeID:    recipeUUID,
		RecipeTitle: r.Title,
		Status:      domain.CookingStatusInProgress,
		StartedAt:   time.Now(),
	}

	if err := s.cookingRepository.CreateSession(ctx, session); err != nil {
		return domain.StartCookingResponse{}, err
	}

	return domain.StartCookingResponse{SessionID: session.ID.String()}, nil
}

func (s *cookingService) Complete(ctx context.Context, recipeID string, userID string) error {
	if _, err := uuid.Parse(recipeID); err != nil {
		return domain.ErrNoActiveCookingSession
	}

	session, err := s.cookingRepository.FindLatestInProgress(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNoActiveCookingSession
		}
		return err
	}

	now := time.Now()
	session.Status = domain.CookingStatusCompleted
	session.CompletedAt = &now
	return s.cookingRepository.Save(ctx, session)
}

func (s *cookingService) History(ctx context.Context, userID string) (domain.CookingHistoryResponse, error) {
	sessions, err := s.cookingRepository.FindByUser(ctx, userID, domain.MaxHistoryItems)
	if err != nil {
		return domain.CookingHistoryResponse{}, err
	}

	items := make([]domain.CookingSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, domain.CookingSessionResponse{
			ID:          session.ID.String(),
			UserID:      session.UserID.String(),
			RecipeID:    session.RecipeID.String(),
			RecipeTitle: session.RecipeTitle,
			Status:      session.Status,
			StartedAt:   session.StartedAt,
			CompletedAt: session.CompletedAt,
		})
	}

	return domain.CookingHistoryResponse{Items: items}, nil
}
