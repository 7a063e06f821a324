package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/service"
	"equipment-catalog/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	GetAuthContext(ctx context.Context, userID uint64) (*entities.User, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// authContextCacheKey — ключ кеша авторизационных данных пользователя.
func authContextCacheKey(userID uint64) string {
	return fmt.Sprintf("authctx:%d", userID)
}

// cachedAuthContext — то, что кладём в Redis: ровно те поля, по которым
// принимаются решения о доступе. Пароль в кеш не попадает.
type cachedAuthContext struct {
	ID          uint64 `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

func mapUserToDTO(user *entities.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Role:        user.Role,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}

// Register создаёт покупателя. Роль продавца и флаги staff назначаются
// администратором напрямую, через регистрацию их получить нельзя.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error) {
	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	userID, err := s.userRepo.CreateUser(ctx, entities.User{
		FullName: payload.FullName,
		Email:    payload.Email,
		Password: hashedPassword,
		Role:     entities.RoleBuyer,
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(userID)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user.ID)
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Пользователь мог быть удалён после выдачи refresh-токена.
	if _, err := s.userRepo.FindUser(ctx, claims.UserID); err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokens(claims.UserID)
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapUserToDTO(user), nil
}

// GetAuthContext отдаёт роль и флаги пользователя для проверки доступа,
// с кешем в Redis: смена роли доезжает с задержкой не больше TTL кеша.
func (s *AuthService) GetAuthContext(ctx context.Context, userID uint64) (*entities.User, error) {
	key := authContextCacheKey(userID)

	if cached, err := s.cacheRepo.Get(ctx, key); err == nil && cached != "" {
		var payload cachedAuthContext
		if err := json.Unmarshal([]byte(cached), &payload); err == nil {
			return &entities.User{
				ID:          payload.ID,
				FullName:    payload.FullName,
				Email:       payload.Email,
				Role:        payload.Role,
				IsStaff:     payload.IsStaff,
				IsSuperuser: payload.IsSuperuser,
			}, nil
		}
	}

	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cachedAuthContext{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Role:        user.Role,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err == nil {
		if err := s.cacheRepo.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
			s.logger.Warn("не удалось записать авторизационный кеш", zap.Error(err))
		}
	}

	return user, nil
}

func (s *AuthService) issueTokens(userID uint64) (*dto.TokenPairDTO, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(userID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
