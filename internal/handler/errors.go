package handler

import (
	"errors"
	"strconv"

	"go-flowcash/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps the service error taxonomy onto HTTP statuses. Every
// error terminates at this boundary as a user-facing message.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	var stockErr *service.InsufficientStockError

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &validationErr):
		status = fiber.StatusBadRequest
	case errors.As(err, &stockErr):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// parseID parses a positive integer route parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
