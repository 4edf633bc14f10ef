package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/jwt"
)

const minPasswordLength = 6

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		storage        storage.Storage
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, storage storage.Storage) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		storage:        storage,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(req.Password) < minPasswordLength {
		return domain.AuthResponse{}, domain.ErrPasswordTooShort
	}

	if _, err := s.userRepository.FindByEmail(ctx, email); err == nil {
		return domain.AuthResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	if _, err := s.userRepository.FindByUsername(ctx, username); err == nil {
		return domain.AuthResponse{}, domain.ErrUsernameAlreadyTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	var profileImage string
	if req.ProfileImage != nil {
		if !storage.Allowed(req.ProfileImage, storage.AllowImage...) {
			return domain.AuthResponse{}, domain.ErrInvalidImageType
		}

		objectKey, err := s.storage.UploadFile(
			uuid.New().String(),
			req.ProfileImage,
			"profiles",
			storage.AllowImage...,
		)
		if err != nil {
			return domain.AuthResponse{}, err
		}
		profileImage = s.storage.GetPublicLink(objectKey)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Bio:          strings.TrimSpace(req.Bio),
		ProfileImage: profileImage,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		return domain.AuthResponse{}, err
	}

	if mailing.Configured() {
		go func() {
			body := fmt.Sprintf("<p>Hi %s, welcome to RecipeShare. Start sharing your recipes at %s.</p>",
				user.Username, utils.GetConfig("APP_URL"))
			if err := mailing.SendMail(user.Email, "Welcome to RecipeShare", body); err != nil {
				log.Warnf("failed to send welcome mail: %v", err)
			}
		}()
	}

	token := s.jwtService.GenerateToken(user.ID.String(), user.Email, user.Username)
	return domain.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrInvalidCredentials
		}
		return domain.AuthResponse{}, err
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return domain.AuthResponse{}, domain.ErrInvalidCredentials
	}

	token := s.jwtService.GenerateToken(user.ID.String(), user.Email, user.Username)
	return domain.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
	}
}
