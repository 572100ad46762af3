package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/billmaster-api/internal/domain/enum"
	"github.com/sangkips/billmaster-api/pkg/apperror"
	"github.com/sangkips/billmaster-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuthService_CreateUserAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	svc := NewAuthService(f.users, jwtManager, zap.NewNop())

	user, err := svc.CreateUser(ctx, &CreateUserInput{Name: "Ravi", Email: " Ravi@Example.com ", Password: "till-pass-1"})
	require.NoError(t, err)
	assert.Equal(t, enum.UserRoleCashier, user.Role)
	assert.Equal(t, "ravi@example.com", user.Email)
	assert.NotEqual(t, "till-pass-1", user.PasswordHash)

	_, err = svc.CreateUser(ctx, &CreateUserInput{Name: "Ravi 2", Email: "ravi@example.com", Password: "till-pass-2"})
	requireAppError(t, err, http.StatusConflict, "Email already registered")

	out, err := svc.Login(ctx, &LoginInput{Email: "RAVI@example.com", Password: "till-pass-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), out.ExpiresIn)

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "cashier", claims.Role)

	_, err = svc.Login(ctx, &LoginInput{Email: "ravi@example.com", Password: "wrong-pass"})
	assert.Equal(t, apperror.ErrInvalidCredentials, err)
	_, err = svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "till-pass-1"})
	assert.Equal(t, apperror.ErrInvalidCredentials, err)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", profile.Name)
}

func TestAuthService_CreateUserValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.users, utils.NewJWTManager("s", time.Hour), zap.NewNop())

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{Email: "not-an-email", Password: "short", Role: "owner"})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity, "Validation failed")
	assert.Len(t, appErr.Errors, 4)
}
