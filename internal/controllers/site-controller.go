package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/services"
	"equipment-catalog/pkg/utils"
)

type SiteController struct {
	siteService services.SiteServiceInterface
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewSiteController(
	siteService services.SiteServiceInterface,
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) *SiteController {
	return &SiteController{siteService: siteService, authService: authService, logger: logger}
}

func (ctrl *SiteController) GetSites(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	sites, total, err := ctrl.siteService.GetSites(c.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, sites, "Список площадок", http.StatusOK, total)
}

func (ctrl *SiteController) FindSite(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	site, err := ctrl.siteService.FindSite(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, site, "Площадка", http.StatusOK)
}

func (ctrl *SiteController) CreateSite(c echo.Context) error {
	var payload dto.CreateSiteDTO
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

	site, err := ctrl.siteService.CreateSite(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, site, "Площадка создана", http.StatusCreated)
}

func (ctrl *SiteController) UpdateSite(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	var payload dto.UpdateSiteDTO
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

	site, err := ctrl.siteService.UpdateSite(c.Request().Context(), actor, id, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, site, "Площадка обновлена", http.StatusOK)
}

func (ctrl *SiteController) DeleteSite(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.siteService.DeleteSite(c.Request().Context(), actor, id); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Площадка удалена", http.StatusOK)
}
