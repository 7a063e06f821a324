package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/services"
	"equipment-catalog/pkg/utils"
)

type WorkshopController struct {
	workshopService services.WorkshopServiceInterface
	authService     services.AuthServiceInterface
	logger          *zap.Logger
}

func NewWorkshopController(
	workshopService services.WorkshopServiceInterface,
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) *WorkshopController {
	return &WorkshopController{workshopService: workshopService, authService: authService, logger: logger}
}

func (ctrl *WorkshopController) GetWorkshops(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	workshops, total, err := ctrl.workshopService.GetWorkshops(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, workshops, "Список цехов", http.StatusOK, total)
}

func (ctrl *WorkshopController) FindWorkshop(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	workshop, err := ctrl.workshopService.FindWorkshop(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, workshop, "Цех", http.StatusOK)
}

func (ctrl *WorkshopController) CreateWorkshop(c echo.Context) error {
	var payload dto.CreateWorkshopDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	workshop, err := ctrl.workshopService.CreateWorkshop(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, workshop, "Цех создан", http.StatusCreated)
}

func (ctrl *WorkshopController) UpdateWorkshop(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateWorkshopDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	workshop, err := ctrl.workshopService.UpdateWorkshop(c.Request().Context(), actor, id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, workshop, "Цех обновлён", http.StatusOK)
}

func (ctrl *WorkshopController) DeleteWorkshop(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.workshopService.DeleteWorkshop(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Цех удалён", http.StatusOK)
}
