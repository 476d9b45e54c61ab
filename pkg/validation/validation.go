// Package validation turns go-playground validator failures into field-level errors
// that the service layer can inspect and the HTTP layer can render.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e), strings.Join(messages, "; "))
}

// HasField reports whether any error concerns the named field.
func (e Errors) HasField(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Translator renders validator failures. Custom holds messages for the caller's own
// tags; each is a format string receiving the field name.
type Translator struct {
	Custom map[string]string
	// Namespaced reports nested fields as "Space.Slots[0].ID" instead of "ID".
	Namespaced bool
}

// Translate converts err when it is a validator failure and returns it unchanged otherwise.
func (t Translator) Translate(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if t.Namespaced {
			field = fe.Namespace()
		}
		out = append(out, FieldError{Field: field, Message: t.message(fe)})
	}
	return out
}

func (t Translator) message(fe validator.FieldError) string {
	if format, ok := t.Custom[fe.Tag()]; ok {
		return fmt.Sprintf(format, fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fe.Error()
	}
}
