package dto

import "encoding/json"

// Attributes приходит как произвольный JSON: форма проверяется в сервисе,
// любая не-объектная форма — это ошибка поля, а не падение бинда.
type CreateEquipmentDTO struct {
	Name            string          `json:"name" validate:"required,max=255"`
	InventoryNumber string          `json:"inventory_number" validate:"required,max=100,inventory_number"`
	EquipmentTypeID uint64          `json:"equipment_type_id" validate:"required,gt=0"`
	SiteID          uint64          `json:"site_id" validate:"required,gt=0"`
	WorkshopID      uint64          `json:"workshop_id" validate:"required,gt=0"`
	Description     string          `json:"description"`
	Attributes      json.RawMessage `json:"attributes,omitempty"`
}

type UpdateEquipmentDTO struct {
	Name            *string         `json:"name,omitempty" validate:"omitempty,max=255"`
	InventoryNumber *string         `json:"inventory_number,omitempty" validate:"omitempty,max=100,inventory_number"`
	EquipmentTypeID *uint64         `json:"equipment_type_id,omitempty" validate:"omitempty,gt=0"`
	SiteID          *uint64         `json:"site_id,omitempty" validate:"omitempty,gt=0"`
	WorkshopID      *uint64         `json:"workshop_id,omitempty" validate:"omitempty,gt=0"`
	Description     *string         `json:"description,omitempty"`
	Attributes      json.RawMessage `json:"attributes,omitempty"`
}

type EquipmentDTO struct {
	ID              uint64            `json:"id"`
	Name            string            `json:"name"`
	InventoryNumber string            `json:"inventory_number"`
	Description     string            `json:"description"`
	Attributes      map[string]string `json:"attributes"`
	ImagePath       *string           `json:"image_path,omitempty"`

	EquipmentType ShortEquipmentTypeDTO `json:"equipment_type"`
	Site          ShortSiteDTO          `json:"site"`
	Workshop      ShortWorkshopDTO      `json:"workshop"`
	CreatedBy     *uint64               `json:"created_by,omitempty"`

	Passports []PassportDTO `json:"passports,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ShortEquipmentDTO struct {
	ID              uint64 `json:"id"`
	Name            string `json:"name"`
	InventoryNumber string `json:"inventory_number"`
}
