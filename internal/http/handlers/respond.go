package handlers

import (
	"database/sql"
	"errors"

	applog "electra/internal/log"
	"electra/internal/services"

	"github.com/gofiber/fiber/v2"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// serviceError maps service-layer failures onto the API's error taxonomy:
// validation -> 400 with details, missing row -> 404, anything else -> 500.
func serviceError(c *fiber.Ctx, action string, err error, notFoundMsg string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		applog.Security(c, action+".validation", map[string]any{"details": ve.Details})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation error",
			"details": ve.Details,
		})
	case errors.Is(err, sql.ErrNoRows):
		return jsonError(c, fiber.StatusNotFound, notFoundMsg)
	default:
		applog.Error(c, action+".fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
