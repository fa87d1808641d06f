// Package apperr определяет доменные ошибки сервиса и их отображение
// в HTTP-статусы. Сервисы оборачивают эти ошибки через fmt.Errorf("%s: %w", ...),
// обработчики распознают их с помощью errors.Is на границе HTTP.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken — попытка регистрации с уже занятым email.
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials — неверный email или пароль при входе.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBlocked — учетная запись заблокирована администратором.
	ErrBlocked = errors.New("account is blocked")
	// ErrForbidden — у вызывающего нет прав на операцию (чужая запись или не та роль).
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound — запрошенная сущность не существует.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyProcessed — заявка уже принята или отклонена.
	ErrAlreadyProcessed = errors.New("request already processed")
	// ErrNotActive — бронирование не в статусе active.
	ErrNotActive = errors.New("booking is not active")
	// ErrInvalidTransition — недопустимый переход статуса бронирования.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Message возвращает каноническое пользовательское сообщение для доменной
// ошибки или пустую строку для неопознанной: внутренние детали наружу
// не отдаются.
func Message(err error) string {
	for _, known := range []error{
		ErrEmailTaken, ErrInvalidCredentials, ErrBlocked, ErrForbidden,
		ErrNotFound, ErrAlreadyProcessed, ErrNotActive, ErrInvalidTransition,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return ""
}

// HTTPStatus возвращает HTTP-статус для доменной ошибки.
// Неопознанные ошибки считаются внутренними (500).
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrBlocked), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyProcessed),
		errors.Is(err, ErrNotActive),
		errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
