// Package response содержит типы и функции для формирования унифицированных
// JSON-ответов HTTP-обработчиков. Конверт ответа: status "success" при
// успехе, "fail" для ошибок клиента (4xx), "error" для ошибок сервера (5xx).
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Status  string `json:"status"`            // success, fail или error
	Message string `json:"message,omitempty"` // Текст ошибки (при неуспехе)
	Results *int   `json:"results,omitempty"` // Количество элементов (для списков)
	Data    any    `json:"data,omitempty"`    // Данные ответа (при успехе)
}

const (
	// StatusSuccess — значение статуса для успешного ответа.
	StatusSuccess = "success"
	// StatusFail — значение статуса для ошибки на стороне клиента.
	StatusFail = "fail"
	// StatusError — значение статуса для ошибки на стороне сервера.
	StatusError = "error"
)

// OKWithData возвращает успешный Response с переданными данными.
func OKWithData(data any) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

// OKWithList возвращает успешный Response со списком и его размером.
func OKWithList(data any, results int) Response {
	return Response{
		Status:  StatusSuccess,
		Results: &results,
		Data:    data,
	}
}

// Fail возвращает Response для клиентской ошибки с переданным сообщением.
func Fail(msg string) Response {
	return Response{
		Status:  StatusFail,
		Message: msg,
	}
}

// Error возвращает Response для серверной ошибки с переданным сообщением.
func Error(msg string) Response {
	return Response{
		Status:  StatusError,
		Message: msg,
	}
}

// FromStatus выбирает конверт fail/error по HTTP-статусу.
func FromStatus(code int, msg string) Response {
	if code >= http.StatusInternalServerError {
		return Error(msg)
	}
	return Fail(msg)
}

// ValidationError формирует Response со статусом fail на основе ошибок валидации.
// Каждое нарушение превращается в человеко-читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "gt", "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a positive number", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has an unsupported value", err.Field()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status:  StatusFail,
		Message: strings.Join(errsMsgs, ", "),
	}
}
