package serverutils

import (
	"fmt"
	"strings"

	"humanlenk-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// FieldError is one entry of the field-level error list returned on 400s.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseAndValidate decodes the JSON body into req and validates its tags.
func ParseAndValidate(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	return validateStruct(req)
}

// ParseQueryAndValidate decodes query parameters into req and validates.
func ParseQueryAndValidate(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.QueryParser(req); err != nil {
		return apperror.BadRequest("Invalid query parameters")
	}
	return validateStruct(req)
}

func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.BadRequest("Validation failed")
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   lowerFirst(fe.Field()),
			Message: describeViolation(fe),
		})
	}
	return apperror.BadRequest("Validation failed").WithDetails(fields)
}

func describeViolation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed constraint %q", fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
