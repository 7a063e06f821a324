package dto

import "github.com/aarondl/null/v8"

type CreateSiteDTO struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=255"`
}

type UpdateSiteDTO struct {
	Name    null.String `json:"name,omitempty"    validate:"omitempty,max=255"`
	Address null.String `json:"address,omitempty" validate:"omitempty,max=255"`
}

type SiteDTO struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ShortSiteDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
