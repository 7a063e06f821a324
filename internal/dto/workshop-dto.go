package dto

import "github.com/aarondl/null/v8"

type CreateWorkshopDTO struct {
	SiteID      uint64 `json:"site_id" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type UpdateWorkshopDTO struct {
	SiteID      *uint64     `json:"site_id,omitempty" validate:"omitempty,gt=0"`
	Name        null.String `json:"name,omitempty" validate:"omitempty,max=255"`
	Description null.String `json:"description,omitempty"`
}

type WorkshopDTO struct {
	ID          uint64       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Site        ShortSiteDTO `json:"site"`
}

type ShortWorkshopDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
