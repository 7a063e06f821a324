package dto

type CreateEquipmentTypeDTO struct {
	Name              string   `json:"name" validate:"required,max=255"`
	ParentID          *uint64  `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
	Description       string   `json:"description"`
	DefaultAttributes []string `json:"default_attributes"`
}

type UpdateEquipmentTypeDTO struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	ParentID          *uint64  `json:"parent_id,omitempty" validate:"omitempty,gt=0"`
	Description       *string  `json:"description,omitempty"`
	DefaultAttributes []string `json:"default_attributes,omitempty"`
}

type EquipmentTypeDTO struct {
	ID                uint64   `json:"id"`
	Name              string   `json:"name"`
	ParentID          *uint64  `json:"parent_id"`
	Description       string   `json:"description"`
	DefaultAttributes []string `json:"default_attributes"`
}

type ShortEquipmentTypeDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
