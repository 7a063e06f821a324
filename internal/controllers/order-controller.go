package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/services"
	"equipment-catalog/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	authService  services.AuthServiceInterface
	logger       *zap.Logger
}

func NewOrderController(
	orderService services.OrderServiceInterface,
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) *OrderController {
	return &OrderController{orderService: orderService, authService: authService, logger: logger}
}

func (ctrl *OrderController) Checkout(c echo.Context) error {
	var payload dto.CheckoutDTO
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

	order, err := ctrl.orderService.Checkout(c.Request().Context(), actor, payload)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, order, "Заявка оформлена", http.StatusCreated)
}

func (ctrl *OrderController) GetMyOrders(c echo.Context) error {
	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	orders, err := ctrl.orderService.GetMyOrders(c.Request().Context(), actor)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, orders, "Мои заявки", http.StatusOK)
}

func (ctrl *OrderController) FindOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	actor, err := resolveActor(c, ctrl.authService)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	order, err := ctrl.orderService.FindOrder(c.Request().Context(), actor, id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, order, "Заявка", http.StatusOK)
}
