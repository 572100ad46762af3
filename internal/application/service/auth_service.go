package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"go.uber.org/zap"
)

const minPasswordLength = 8

// AuthService handles authentication and operator accounts
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		log:        log,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User        *entity.User
	AccessToken string
	ExpiresIn   int64
}

// Login authenticates a user and returns an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		s.log.Warn("login rejected", zap.String("email", input.Email))
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Name, user.Email, user.Role.String())
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}

// GetProfile returns the signed-in user
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.UserRole
}

// CreateUser creates an operator account. The role defaults to cashier.
func (s *AuthService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	role := input.Role
	if role == "" {
		role = enum.UserRoleCashier
	}

	var fieldErrs []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(input.Password) < minPasswordLength {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if !role.IsValid() {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "role", Message: "role must be admin or cashier"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("Email already registered")
		}
		return nil, apperror.NewPersistenceError(err)
	}

	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", user.Role.String()))
	return user, nil
}

// ListUsers returns every operator account
func (s *AuthService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewPersistenceError(err)
	}
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
