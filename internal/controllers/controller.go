package controllers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/services"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/utils"
)

func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(400, "неверный идентификатор", err, nil)
	}
	return id, nil
}

// resolveActor достаёт пользователя, положенного auth-мидлварью.
// Анонимный запрос — не ошибка: вернётся nil, решит policy-слой.
func resolveActor(c echo.Context, authService services.AuthServiceInterface) (*entities.User, error) {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return nil, nil
	}
	return authService.GetAuthContext(c.Request().Context(), userID)
}
