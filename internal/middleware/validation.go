package middleware

import (
	"github.com/gofiber/fiber/v2"

	"textquiz/internal/validation"
)

const (
	ValidatedUserIDKey    = "validated_user_id"
	ValidatedSessionIDKey = "validated_session_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(validator *validation.Validator) *ValidationMiddleware {
	return &ValidationMiddleware{validator: validator}
}

// ValidateUserIDQuery validates the user_id query parameter
func (vm *ValidationMiddleware) ValidateUserIDQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if errs := vm.validator.ValidateUserID(userID); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedUserIDKey, userID)
		return c.Next()
	}
}

// ValidateSessionIDParam validates the :id path parameter
func (vm *ValidationMiddleware) ValidateSessionIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateSessionID(id); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedSessionIDKey, id)
		return c.Next()
	}
}
