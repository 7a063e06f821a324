package dto

import "equipment-catalog/internal/entities"

type CheckoutDTO struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"phone_number"`
	Comment string `json:"comment"`
}

type OrderRequestDTO struct {
	ID        uint64                       `json:"id"`
	Name      string                       `json:"name"`
	Email     string                       `json:"email"`
	Phone     string                       `json:"phone"`
	Comment   string                       `json:"comment"`
	Items     []entities.OrderItemSnapshot `json:"items"`
	CreatedAt string                       `json:"created_at"`
}
