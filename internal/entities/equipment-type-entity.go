package entities

import (
	"equipment-catalog/pkg/types"
)

// EquipmentType — узел дерева типов. ParentID == nil для корневых типов,
// при удалении родителя потомки становятся корневыми (SET NULL).
type EquipmentType struct {
	ID                uint64   `json:"id"`
	Name              string   `json:"name"`
	ParentID          *uint64  `json:"parent_id"`
	Description       string   `json:"description"`
	DefaultAttributes []string `json:"default_attributes"`

	types.BaseEntity
}
