package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/birchwood/internal/apperr"
)

// ErrorHandler maps the application's error taxonomy onto HTTP statuses and
// the standard response envelope. Wired into fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validation *apperr.ValidationError
	if errors.As(err, &validation) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"error":   "validation failed",
			"errors":  validation.Errors,
		})
	}

	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   notFound.Error(),
		})
	}

	var invalidState *apperr.InvalidStateError
	if errors.As(err, &invalidState) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   invalidState.Error(),
		})
	}

	var storage *apperr.StorageError
	if errors.As(err, &storage) {
		log.Printf("[HTTP] storage error: %v", storage)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "storage failure",
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	}

	log.Printf("[HTTP] unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "internal server error",
	})
}
