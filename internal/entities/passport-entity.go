package entities

import "time"

type Passport struct {
	ID          uint64    `db:"id" json:"id"`
	EquipmentID uint64    `db:"equipment_id" json:"equipment_id"`
	Description string    `db:"description" json:"description"`
	FileName    string    `db:"file_name" json:"file_name"`
	FilePath    string    `db:"file_path" json:"file_path"`
	FileSize    int64     `db:"file_size" json:"file_size"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}
