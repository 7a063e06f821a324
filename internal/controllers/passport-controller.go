package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/services"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/utils"
)

type PassportController struct {
	passportService services.PassportServiceInterface
	authService     services.AuthServiceInterface
	logger          *zap.Logger
}

func NewPassportController(
	passportService services.PassportServiceInterface,
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) *PassportController {
	return &PassportController{passportService: passportService, authService: authService, logger: logger}
}

func (ctrl *PassportController) GetPassports(c echo.Context) error {
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	passports, err := ctrl.passportService.GetPassportsByEquipment(c.Request().Context(), equipmentID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, passports, "Паспорта оборудования", http.StatusOK)
}

func (ctrl *PassportController) UploadPassport(c echo.Context) error {
	equipmentID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.CreatePassportDTO
	if err := c.Bind(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	if err := c.Validate(&payload); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "файл не передан", err, nil), ctrl.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	defer src.Close()

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	passport, err := ctrl.passportService.UploadPassport(c.Request().Context(), actor, equipmentID, services.PassportUpload{
		Description: payload.Description,
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		File:        src,
	})
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, passport, "Паспорт загружен", http.StatusCreated)
}

func (ctrl *PassportController) DeletePassport(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.passportService.DeletePassport(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Паспорт удалён", http.StatusOK)
}
