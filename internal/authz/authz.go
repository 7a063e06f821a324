package authz

import (
	"equipment-catalog/internal/entities"
)

// Action — операция над ресурсом, проверяемая перед мутацией.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// Decision — результат проверки: разрешено или нет, и почему.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ownable — ресурсы с владельцем (created_by).
type ownable interface {
	OwnerID() *uint64
}

// EquipmentResource оборачивает оборудование для объектной проверки.
type EquipmentResource struct {
	Equipment *entities.Equipment
}

func (r EquipmentResource) OwnerID() *uint64 { return r.Equipment.CreatedBy }

// PassportResource наследует владельца от своего оборудования.
type PassportResource struct {
	Equipment *entities.Equipment
}

func (r PassportResource) OwnerID() *uint64 { return r.Equipment.CreatedBy }

// ReferenceResource — справочные данные (площадки, цеха, типы).
type ReferenceResource struct{}

// CartResource и OrderResource доступны любому аутентифицированному
// пользователю, но только для собственных строк; принадлежность
// проверяется запросом в репозитории (WHERE user_id), здесь — только роль.
type CartResource struct{}
type OrderResource struct{}

// Can — единственная точка принятия решения о доступе.
// Правила по ролям:
//   - аноним: только чтение;
//   - покупатель: чтение, корзина и оформление заявки;
//   - продавец: создание каталога и выгрузка всегда, изменение/удаление —
//     только своих записей (created_by == actor);
//   - staff/superuser: без ограничений, проверка владельца не применяется.
func Can(actor *entities.User, action Action, resource interface{}) Decision {
	if action == ActionView {
		return allow()
	}

	if actor == nil {
		return deny("требуется вход в систему")
	}

	if actor.IsStaff || actor.IsSuperuser {
		return allow()
	}

	switch resource.(type) {
	case CartResource, OrderResource:
		// Корзина и заявки доступны любому аутентифицированному.
		return allow()
	}

	if !actor.IsSeller() {
		return deny("недостаточно прав: требуется роль продавца")
	}

	if action == ActionCreate || action == ActionExport {
		return allow()
	}

	// update/delete: продавец правит только свои записи
	if res, ok := resource.(ownable); ok {
		owner := res.OwnerID()
		if owner == nil || *owner != actor.ID {
			return deny("можно изменять только свои записи")
		}
		return allow()
	}

	// Справочники без владельца продавец может править целиком.
	if _, ok := resource.(ReferenceResource); ok {
		return allow()
	}

	return deny("операция не разрешена")
}
