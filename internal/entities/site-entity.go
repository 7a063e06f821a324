package entities

import (
	"equipment-catalog/pkg/types"
)

type Site struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`

	types.BaseEntity
}
