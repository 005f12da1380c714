package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the JSON field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return v
}

// Check validates the payload against its struct tags and returns
// human-readable violation messages. An empty slice means valid.
// Check never touches the store and has no side effects.
func Check(payload interface{}) []string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	violations := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		violations = append(violations, message(e))
	}
	return violations
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", e.Field(), lowerFirst(e.Param()))
	case "gt":
		return fmt.Sprintf("%s must be a positive integer", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
