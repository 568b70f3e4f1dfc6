package handlers

import (
	"errors"

	"willeasy/internal/core/domain"
	"willeasy/internal/pkg/response"
	"willeasy/internal/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validate is shared by every handler
var validate = validation.New()

// normalizer is implemented by requests that clean their fields before validation
type normalizer interface {
	normalize()
}

// parseAndValidate parses the JSON body into req and runs its validate tags
func parseAndValidate(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return domain.NewValidationError("body", "Invalid request body")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := validate.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return domain.NewValidationError("body", "Invalid request body")
		}
		return validation.FirstFieldError(err)
	}
	return nil
}

// respondError maps a domain error onto the response envelope
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.ValidationFailed(c, verr.Field, verr.Reason)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, domain.ErrSessionExpired):
		return response.Unauthorized(c, "Session expired, please sign in again")
	case errors.Is(err, domain.ErrSessionNotFound):
		return response.Unauthorized(c, "Invalid session")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "You don't have permission to access this resource")
	case errors.Is(err, domain.ErrDuplicateAccount),
		errors.Is(err, domain.ErrInvalidTransition):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrDocumentNotFound),
		errors.Is(err, domain.ErrSignupNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrOTPInvalid),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrOTPAttempts),
		errors.Is(err, domain.ErrOTPNotVerified):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
