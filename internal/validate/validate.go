package validate

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation(
		"noAllRepeatingChars",
		noAllRepeatingChars,
	); err != nil {
		log.Fatalf("failed to register custom validation: %v", err)
	}
}

// StructFields validates the `validate` tags on a struct and returns a
// map of field name to failed rule, suitable for the errors field of a
// json error response.
func StructFields(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fieldErrors[fieldError.Field()] = fmt.Sprintf(
			"failed on the '%s' rule",
			fieldError.Tag(),
		)
	}

	return &FieldErrors{Fields: fieldErrors}
}

// FieldErrors carries per-field validation failures.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, rule := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, rule))
	}

	return strings.Join(parts, "; ")
}

// noAllRepeatingChars rejects strings made of a single repeated
// character, e.g. "aaaaaaaaaa" as a product name.
func noAllRepeatingChars(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) < 2 {
		return true
	}

	first := rune(value[0])
	for _, r := range value {
		if r != first {
			return true
		}
	}

	return false
}
