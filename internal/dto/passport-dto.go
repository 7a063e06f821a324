package dto

type CreatePassportDTO struct {
	Description string `json:"description" form:"description" validate:"max=255"`
}

type PassportDTO struct {
	ID          uint64 `json:"id"`
	EquipmentID uint64 `json:"equipment_id"`
	Description string `json:"description"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	URL         string `json:"url"`
	UploadedAt  string `json:"uploaded_at"`
}
