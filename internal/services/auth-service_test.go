package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/service"
)

type authFixture struct {
	service   AuthServiceInterface
	userRepo  *fakeUserRepo
	cacheRepo *fakeCacheRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	cacheRepo := newFakeCacheRepo()
	jwtService := service.NewJWTService("test-secret", time.Hour, 24*time.Hour, zap.NewNop())

	return &authFixture{
		service:   NewAuthService(userRepo, cacheRepo, jwtService, 10*time.Minute, zap.NewNop()),
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
	}
}

func registerPayload() dto.RegisterDTO {
	return dto.RegisterDTO{
		FullName: "Иван Петров",
		Email:    "ivan@example.com",
		Password: "correct-horse",
	}
}

func TestRegister_CreatesBuyer(t *testing.T) {
	f := newAuthFixture(t)

	tokens, err := f.service.Register(context.Background(), registerPayload())
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	user, err := f.userRepo.FindUserByEmail(context.Background(), "ivan@example.com")
	require.NoError(t, err)
	assert.Equal(t, entities.RoleBuyer, user.Role, "регистрация всегда даёт роль покупателя")
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "correct-horse", user.Password, "пароль хранится только хешем")
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerPayload())
	require.NoError(t, err)

	tokens, err := f.service.Login(ctx, dto.LoginDTO{Email: "ivan@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = f.service.Login(ctx, dto.LoginDTO{Email: "ivan@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.service.Login(ctx, dto.LoginDTO{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials,
		"несуществующий email неотличим от неверного пароля")
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := f.service.Register(ctx, registerPayload())
	require.NoError(t, err)

	refreshed, err := f.service.Refresh(ctx, dto.RefreshDTO{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access-токен вместо refresh не принимается.
	_, err = f.service.Refresh(ctx, dto.RefreshDTO{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestGetAuthContext_Caches(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	userID, err := f.userRepo.CreateUser(ctx, entities.User{
		FullName: "Продавец",
		Email:    "seller@example.com",
		Role:     entities.RoleSeller,
	})
	require.NoError(t, err)

	actor, err := f.service.GetAuthContext(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleSeller, actor.Role)
	assert.NotEmpty(t, f.cacheRepo.values, "после первого обращения роль закеширована")

	// Удаляем пользователя из хранилища: пока кеш жив, контекст ещё отдаётся.
	delete(f.userRepo.users, userID)
	cached, err := f.service.GetAuthContext(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleSeller, cached.Role)
}

func TestGetAuthContext_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.GetAuthContext(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
