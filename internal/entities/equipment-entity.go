package entities

import (
	"fmt"

	"equipment-catalog/pkg/types"
)

type Equipment struct {
	ID              uint64            `json:"id"`
	Name            string            `json:"name"`
	InventoryNumber string            `json:"inventory_number"`
	EquipmentTypeID uint64            `json:"equipment_type_id"`
	SiteID          uint64            `json:"site_id"`
	WorkshopID      uint64            `json:"workshop_id"`
	Description     string            `json:"description"`
	ImagePath       *string           `json:"image_path"`
	Attributes      map[string]string `json:"attributes"`
	CreatedBy       *uint64           `json:"created_by"`

	types.BaseEntity // CreatedAt, UpdatedAt

	// Поля для связанных данных (не колонки в таблице)
	EquipmentType *EquipmentType `db:"-" json:"equipment_type,omitempty"`
	Site          *Site          `db:"-" json:"site,omitempty"`
	Workshop      *Workshop      `db:"-" json:"workshop,omitempty"`
	Passports     []Passport     `db:"-" json:"passports,omitempty"`
}

// DisplayName — представление для снапшота заказа: "Насос (ИНВ-001)".
func (e *Equipment) DisplayName() string {
	return fmt.Sprintf("%s (%s)", e.Name, e.InventoryNumber)
}
