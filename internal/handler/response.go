package handler

import (
	"errors"

	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// respondError maps domain errors onto HTTP statuses. Anything it does not
// recognise is logged and reported as a 500 without details.
func respondError(c *fiber.Ctx, err error) error {
	if verr, ok := model.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message, "field": verr.Field})
	}

	var conflict *model.ConflictError
	switch {
	case errors.Is(err, model.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflict.Message})
	}

	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

// getActor reads the user info the auth middleware put in the context.
func getActor(c *fiber.Ctx) service.Actor {
	actor := service.SystemActor
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		actor.ID = id
	}
	if name, ok := c.Locals("user_name").(string); ok && name != "" {
		actor.Username = name
	}
	return actor
}

func invalidID(c *fiber.Ctx, entity string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid " + entity + " ID"})
}
