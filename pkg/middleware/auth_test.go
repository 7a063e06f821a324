package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-catalog/pkg/service"
	"equipment-catalog/pkg/utils"
)

func setupEcho(t *testing.T) (*echo.Echo, *AuthMiddleware, service.JWTService) {
	t.Helper()
	jwtService := service.NewJWTService("test-secret", time.Hour, 24*time.Hour, zap.NewNop())
	authMW := NewAuthMiddleware(jwtService, zap.NewNop())

	e := echo.New()
	handler := func(c echo.Context) error {
		userID, err := utils.GetUserIDFromCtx(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusOK, map[string]interface{}{"user_id": nil})
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"user_id": userID})
	}
	e.GET("/private", handler, authMW.Auth)
	e.GET("/public", handler, authMW.OptionalAuth)

	return e, authMW, jwtService
}

func TestAuth_AnonymousRejected(t *testing.T) {
	e, _, _ := setupEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	e, _, jwtService := setupEcho(t)

	access, _, err := jwtService.GenerateTokens(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "42")
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	e, _, jwtService := setupEcho(t)

	_, refresh, err := jwtService.GenerateTokens(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	e, _, _ := setupEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	e, _, _ := setupEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "null")
}

func TestOptionalAuth_TokenRecognized(t *testing.T) {
	e, _, jwtService := setupEcho(t)

	access, _, err := jwtService.GenerateTokens(7)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "7")
}

func TestOptionalAuth_BrokenTokenIgnored(t *testing.T) {
	e, _, _ := setupEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer мусор")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
