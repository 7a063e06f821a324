package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/services"
	"equipment-catalog/pkg/utils"
)

type EquipmentTypeController struct {
	typeService services.EquipmentTypeServiceInterface
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewEquipmentTypeController(
	typeService services.EquipmentTypeServiceInterface,
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) *EquipmentTypeController {
	return &EquipmentTypeController{typeService: typeService, authService: authService, logger: logger}
}

func (ctrl *EquipmentTypeController) GetEquipmentTypes(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	equipmentTypes, total, err := ctrl.typeService.GetEquipmentTypes(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipmentTypes, "Список типов оборудования", http.StatusOK, total)
}

func (ctrl *EquipmentTypeController) FindEquipmentType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	equipmentType, err := ctrl.typeService.FindEquipmentType(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipmentType, "Тип оборудования", http.StatusOK)
}

func (ctrl *EquipmentTypeController) CreateEquipmentType(c echo.Context) error {
	var payload dto.CreateEquipmentTypeDTO
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

	equipmentType, err := ctrl.typeService.CreateEquipmentType(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipmentType, "Тип оборудования создан", http.StatusCreated)
}

func (ctrl *EquipmentTypeController) UpdateEquipmentType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateEquipmentTypeDTO
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

	equipmentType, err := ctrl.typeService.UpdateEquipmentType(c.Request().Context(), actor, id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, equipmentType, "Тип оборудования обновлён", http.StatusOK)
}

func (ctrl *EquipmentTypeController) DeleteEquipmentType(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.typeService.DeleteEquipmentType(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Тип оборудования удалён", http.StatusOK)
}
