package errors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// MapToHTTPStatus translates domain sentinels into HTTP status codes at the
// fiber edge. Anything unknown stays a 500 so internals don't leak.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrCustomerAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, ErrCustomerNotFound), errors.Is(err, ErrCartNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrInvalidPassword):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
