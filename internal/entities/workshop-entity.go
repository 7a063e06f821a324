package entities

import (
	"equipment-catalog/pkg/types"
)

type Workshop struct {
	ID          uint64 `json:"id"`
	SiteID      uint64 `json:"site_id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	types.BaseEntity

	// Заполняется из join'а, не колонка
	Site *Site `db:"-" json:"site,omitempty"`
}
