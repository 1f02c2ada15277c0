// Package handlers holds the Fiber route handlers. Store and service errors
// are mapped to HTTP statuses here; nothing propagates uncaught to the client.
package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/harborlight/backend/internal/storage"
)

// storeErr maps storage errors at the route boundary: not-found to 404,
// duplicates to 400 with a descriptive message, anything else to a generic
// 500 with the detail logged server-side.
func storeErr(c *fiber.Ctx, err error, conflictMsg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, storage.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": conflictMsg})
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// missingFields answers a validation failure with the missing field set
// spelled out.
func missingFields(c *fiber.Ctx, fields []string) error {
	return badRequest(c, "Missing required fields: "+strings.Join(fields, ", "))
}
