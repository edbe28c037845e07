package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// internalError responde 500 con un cuerpo genérico. El detalle se loguea en el
// servidor y nunca viaja al cliente.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:    "INTERNAL",
		Message: "error interno del servidor",
	})
}
