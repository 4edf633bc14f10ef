package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister = "registered"
	MessageSuccessLogin    = "logged in"
	MessageSuccessGetMe    = "success get profile"

	MessageFailedRegister = "failed to register"
	MessageFailedLogin    = "failed to login"

	ErrPasswordTooShort     = errors.New("password must be at least 6 chars")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrUsernameAlreadyTaken = errors.New("username already exists")
	ErrInvalidImageType     = errors.New("invalid image type")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Username     string                `form:"username" validate:"required,min=2"`
		Email        string                `form:"email" validate:"required,email"`
		Password     string                `form:"password" validate:"required"`
		Bio          string                `form:"bio"`
		ProfileImage *multipart.FileHeader `form:"-"`
	}

	LoginRequest struct {
		Email    string `form:"email" validate:"required,email"`
		Password string `form:"password" validate:"required"`
	}

	UserResponse struct {
		ID           string    `json:"id"`
		Username     string    `json:"username"`
		Email        string    `json:"email"`
		Bio          string    `json:"bio"`
		ProfileImage string    `json:"profile_image,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)
