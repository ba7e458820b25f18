package utils

import (
	"errors"
	"net/http"

	"github.com/Xornee/langify-your-daily-english-boost/backend/models"
	"github.com/Xornee/langify-your-daily-english-boost/backend/utils/validate"
	"github.com/gofiber/fiber/v2"
)

// Коды ошибок, которые фронтенд может различать без разбора текста
const (
	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeValidation         = "validation_failed"
	CodeInvalidCredentials = "invalid_credentials"
	CodeConflict           = "conflict"
	CodeInternal           = "internal"
)

// SuccessResponse структура для успешных ответов
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Success создает успешный JSON ответ, meta передается опционально (счетчики, пагинация)
func Success(c *fiber.Ctx, status int, data interface{}, meta ...interface{}) error {
	response := SuccessResponse{Success: true, Data: data}
	if len(meta) > 0 {
		response.Meta = meta[0]
	}
	return c.Status(status).JSON(response)
}

// Error пишет ответ с ошибкой
func Error(c *fiber.Ctx, status int, code, message string, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(status).JSON(response)
}

// ValidationError отдает 422 с ошибками по полям
func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return Error(c, fiber.StatusUnprocessableEntity, CodeValidation, "Validation failed", fields)
}

// DomainError maps a service error onto the HTTP status the API promises.
// Persistence failures are not echoed to the client.
func DomainError(c *fiber.Ctx, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return ValidationError(c, map[string]string{verr.Field: verr.Message})
	case validate.Fields(err) != nil:
		return ValidationError(c, validate.Fields(err))
	case errors.Is(err, models.ErrNotFound):
		return Error(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		return Error(c, fiber.StatusUnauthorized, CodeInvalidCredentials, err.Error())
	case errors.Is(err, models.ErrConflict):
		return Error(c, fiber.StatusConflict, CodeConflict, err.Error())
	default:
		return InternalServerError(c, "Could not complete request")
	}
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, CodeBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, CodeForbidden, message)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, CodeInternal, message)
}
