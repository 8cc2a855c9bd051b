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
	ErrUserNotFound            = fmt.Errorf("пользователь не найден")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Жизненный цикл оборудования
	ErrEquipmentNotAssigned    = fmt.Errorf("оборудование сейчас никому не выдано")
	ErrEquipmentAlreadyOwned   = fmt.Errorf("оборудование уже выдано другому сотруднику")
	ErrEquipmentNotIssuable    = fmt.Errorf("оборудование в текущем статусе нельзя выдать")
	ErrInvalidStatusTransition = fmt.Errorf("недопустимый переход статуса")

	// Управление пользователями
	ErrSelfDemotion = fmt.Errorf("нельзя понизить собственную роль")
)

// HttpError - структурная ошибка приложения: HTTP-код, сообщение для
// пользователя, внутренняя ошибка для логов и опциональные детали
// (например, ошибки валидации по полям).
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
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

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// Фабрики под конкретные классы ошибок, чтобы контроллеры и сервисы
// не собирали коды руками.

func NewUnauthorizedError(message string, err error) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message, err, nil)
}

func NewForbiddenError(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, ErrForbidden, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

// NewInvalidStateError - нарушено предусловие перехода (409, а не 400:
// запрос корректен, но текущее состояние записи его не допускает).
func NewInvalidStateError(message string, err error) *HttpError {
	return NewHttpError(http.StatusConflict, message, err, nil)
}

func NewValidationError(message string, details map[string]interface{}) *HttpError {
	return NewHttpError(http.StatusUnprocessableEntity, message, ErrBadRequest, details)
}

func NewInternalError(message string, err error) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message, err, nil)
}
