package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Каталог
	ErrRecordInUse = fmt.Errorf("запись используется оборудованием и не может быть удалена")
	ErrCartIsEmpty = fmt.Errorf("корзина пуста, заказывать нечего")
)

// HttpError несёт HTTP-статус, сообщение для клиента и подробности по полям.
// Details попадает в тело ответа, Context — только в лог.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]string
	Context map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

// NewValidationError — ошибка валидации с привязкой к конкретным полям.
func NewValidationError(message string, details map[string]string) *HttpError {
	return &HttpError{
		Code:    http.StatusBadRequest,
		Message: message,
		Details: details,
	}
}

func NewForbiddenError(reason string) *HttpError {
	msg := "доступ запрещён"
	if reason != "" {
		msg = reason
	}
	return &HttpError{
		Code:    http.StatusForbidden,
		Message: msg,
		Err:     ErrForbidden,
	}
}
