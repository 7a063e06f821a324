package entities

import "time"

// CartItem — строка корзины. Пара (user_id, equipment_id) уникальна:
// повторное добавление наращивает quantity, а не плодит строки.
type CartItem struct {
	ID          uint64    `db:"id" json:"id"`
	UserID      uint64    `db:"user_id" json:"user_id"`
	EquipmentID uint64    `db:"equipment_id" json:"equipment_id"`
	Quantity    uint32    `db:"quantity" json:"quantity"`
	AddedAt     time.Time `db:"added_at" json:"added_at"`

	Equipment *Equipment `db:"-" json:"equipment,omitempty"`
}
