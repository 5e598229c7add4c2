package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"flyaway/internal/models/db_models"
	"flyaway/internal/models/request_models"
	"flyaway/internal/models/response_models"
	"flyaway/internal/repositories"
	"flyaway/pkg/uploads"
	"flyaway/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.UserResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (string, error)
	// LoginWithGoogle consumes an identity already verified by the OAuth
	// gateway. Idempotent: an existing account with the same email is
	// reused, otherwise one is provisioned without a password.
	LoginWithGoogle(ctx context.Context, request request_models.GoogleLoginRequest) (string, error)
	GetByID(ctx context.Context, userID string) (*response_models.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (*response_models.UserResponse, error)
	SetAvatar(ctx context.Context, userID string, data []byte, filename string) (*response_models.UserResponse, error)
}

type AccountService struct {
	userRepo repositories.UserRepository
	files    uploads.Store
}

func NewAccountService(userRepo repositories.UserRepository, files uploads.Store) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		files:    files,
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.UserResponse, error) {

	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: &hashedPassword,
		Provider:     db_models.ProviderLocal,
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		// The unique index is the real duplicate check; the lookup above
		// only narrows the race window.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, utils.ErrDatabaseError
	}

	return userToResponse(user), nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (string, error) {

	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrUserNotFound
	}

	if user.PasswordHash == nil {
		// OAuth-only account, no local credential to verify.
		return "", utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(*user.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) LoginWithGoogle(ctx context.Context, request request_models.GoogleLoginRequest) (string, error) {

	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	if user == nil {
		user = &db_models.User{
			Name:     request.Name,
			Email:    request.Email,
			Provider: db_models.ProviderGoogle,
		}
		if err := a.userRepo.Insert(ctx, user); err != nil {
			return "", utils.ErrDatabaseError
		}
	}

	token, err := utils.CreateToken(user.ID)
	if err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return token, nil
}

func (a *AccountService) GetByID(ctx context.Context, userID string) (*response_models.UserResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return userToResponse(user), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (*response_models.UserResponse, error) {

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Bio != nil {
		user.Bio = request.Bio
	}

	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return userToResponse(user), nil
}

func (a *AccountService) SetAvatar(ctx context.Context, userID string, data []byte, filename string) (*response_models.UserResponse, error) {

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if user.AvatarURL != nil && *user.AvatarURL != "" {
		if err := a.files.Delete(*user.AvatarURL); err != nil {
			log.Printf("Failed to delete previous avatar %s: %v", *user.AvatarURL, err)
		}
	}

	ref, err := a.files.Save(data, filename, "avatars")
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	user.AvatarURL = &ref
	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return userToResponse(user), nil
}

func userToResponse(user *db_models.User) *response_models.UserResponse {
	return &response_models.UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Provider:  user.Provider,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
	}
}
