package entities

import (
	"equipment-catalog/pkg/types"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

type User struct {
	ID          uint64 `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"-"`
	Role        string `json:"role"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`

	types.BaseEntity
}

func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}
