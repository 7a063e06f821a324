package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/services"
	"equipment-catalog/pkg/utils"
)

type CartController struct {
	cartService services.CartServiceInterface
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewCartController(
	cartService services.CartServiceInterface,
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) *CartController {
	return &CartController{cartService: cartService, authService: authService, logger: logger}
}

func (ctrl *CartController) GetCart(c echo.Context) error {
	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	items, err := ctrl.cartService.GetCart(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, items, "Корзина", http.StatusOK)
}

func (ctrl *CartController) AddToCart(c echo.Context) error {
	var payload dto.AddToCartDTO
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

	item, err := ctrl.cartService.AddToCart(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, item, "Добавлено в корзину", http.StatusOK)
}

func (ctrl *CartController) RemoveFromCart(c echo.Context) error {
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if err := ctrl.cartService.RemoveFromCart(c.Request().Context(), actor, itemID); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Удалено из корзины", http.StatusOK)
}
