package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
	"github.com/MrEshunOfficial/category-api/internal/domain"
	"github.com/MrEshunOfficial/category-api/pkg/logger"
)

// Códigos de error del cuerpo {error, code, details}.
const (
	CodeInvalidBody = "INVALID_BODY"
	CodeValidation  = "VALIDATION"
	CodeNotFound    = "NOT_FOUND"
	CodeDuplicate   = "DUPLICATE"
	CodeInternal    = "INTERNAL"
)

// writeError traduce un error de aplicación a status HTTP + dto.ErrorResponse.
// Un ValidationError gana sobre su causa (un nombre en uso durante update es 400, no 409).
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "datos inválidos", Code: CodeValidation, Details: vErr.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "datos inválidos", Code: CodeValidation, Details: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "recurso no encontrado", Code: CodeNotFound, Details: err.Error(),
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "el nombre ya existe", Code: CodeDuplicate, Details: err.Error(),
		})
	default:
		if log != nil {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error inesperado")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "error interno", Code: CodeInternal, Details: err.Error(),
		})
	}
}

func badBody(c *fiber.Ctx, details string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: "cuerpo inválido", Code: CodeInvalidBody, Details: details,
	})
}
