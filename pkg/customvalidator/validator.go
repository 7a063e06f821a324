// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("inventory_number", isInventoryNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("phone_number", isPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}

	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}

// Инвентарный номер: буквы/цифры/дефисы/точки, без пробелов.
func isInventoryNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Za-zА-Яа-я0-9.\-/]+$`)
	return re.MatchString(fl.Field().String())
}

// Телефон в заявке необязателен, но если указан — цифры, пробелы, +, -, скобки.
func isPhoneNumber(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	re := regexp.MustCompile(`^[0-9+\-() ]{5,20}$`)
	return re.MatchString(s)
}
