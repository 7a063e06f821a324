package entities

import "time"

// OrderItemSnapshot — денормализованная копия строки корзины на момент
// оформления. После создания заявки никогда не пересчитывается по живым
// данным: переименование или удаление оборудования историю не трогает.
type OrderItemSnapshot struct {
	EquipmentID uint64 `json:"equipment_id"`
	Equipment   string `json:"equipment"`
	Type        string `json:"type"`
	Site        string `json:"site"`
	Workshop    string `json:"workshop"`
	Quantity    uint32 `json:"quantity"`
}

type OrderRequest struct {
	ID        uint64              `db:"id" json:"id"`
	UserID    *uint64             `db:"user_id" json:"user_id"`
	Name      string              `db:"name" json:"name"`
	Email     string              `db:"email" json:"email"`
	Phone     string              `db:"phone" json:"phone"`
	Comment   string              `db:"comment" json:"comment"`
	Items     []OrderItemSnapshot `db:"items" json:"items"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
}
