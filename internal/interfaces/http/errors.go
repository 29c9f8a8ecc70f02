package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/process-hub/internal/application/dto"
	"github.com/jhoicas/process-hub/internal/domain"
)

// errText resumen del campo "error" por código HTTP; el detalle va en "message".
type errText map[int]string

// statusFor traduce errores de dominio a códigos HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde {error, message}. En 500 el detalle solo se registra, salvo falta de configuración.
func writeError(c *fiber.Ctx, err error, texts errText) error {
	status := statusFor(err)
	summary := texts[status]
	if summary == "" {
		summary = utils.StatusMessage(status)
	}
	body := dto.ErrorResponse{Error: summary, Message: err.Error()}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("error interno")
		if !errors.Is(err, domain.ErrNotConfigured) {
			body.Message = ""
		}
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body", Message: "cuerpo inválido"})
}

// ErrorHandler cubre rutas inexistentes (404), métodos no permitidos (405) y errores no manejados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	summary := "Internal Server Error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
		summary = fe.Message
		if status == fiber.StatusMethodNotAllowed {
			summary = "Method not allowed"
		}
	}
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("error no manejado")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: summary})
}
