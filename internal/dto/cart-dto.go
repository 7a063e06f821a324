package dto

import "bytes"

// QuantityValue принимает количество и строкой ("3"), и числом (3):
// форма каталога шлёт строку, API-клиенты — число. Нечисловое или
// неположительное значение сервис приводит к 1.
type QuantityValue string

func (q *QuantityValue) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	*q = QuantityValue(data)
	return nil
}

type AddToCartDTO struct {
	EquipmentID uint64        `json:"equipment_id" validate:"required,gt=0"`
	Quantity    QuantityValue `json:"quantity"`
}

type CartItemDTO struct {
	ID        uint64            `json:"id"`
	Quantity  uint32            `json:"quantity"`
	AddedAt   string            `json:"added_at"`
	Equipment ShortEquipmentDTO `json:"equipment"`
	Site      string            `json:"site"`
	Workshop  string            `json:"workshop"`
}
