package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "mercadito/internal/log"
	"mercadito/internal/services"
)

// fail maps a service failure to the single JSON error envelope
// {"msg": ..., "error": ...}. Internal errors keep their detail in the log,
// never in the response body.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "invalid request", "error": err.Error()})
	case errors.Is(err, services.ErrBadCredentials):
		applog.Security(c, action, map[string]any{"reason": "bad_credentials"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"msg": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, action, map[string]any{"reason": "forbidden"})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"msg": "access denied"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": err.Error()})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"msg": "something went wrong"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"msg": "malformed request body"})
}
