package domain

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/userstore/pkg/util/errorutil"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// messages per struct field, checked in declaration order.
var fieldMessages = map[string]struct {
	field   string
	message string
}{
	"Name":  {field: "name", message: "name is required"},
	"Email": {field: "email", message: "email is required"},
	"Age":   {field: "age", message: "age must be non-negative"},
}

// ValidateUser fails with an invalid-argument DomainError for an empty name, an empty email or a
// negative age. Only the first failing field is reported.
func ValidateUser(user User) error {
	err := validate.Struct(user)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errorutil.NewValidationError(err.Error(), nil)
	}

	first := fieldErrs[0]
	msg, ok := fieldMessages[first.StructField()]
	if !ok {
		return errorutil.NewValidationError(first.Error(), nil)
	}
	return errorutil.NewValidationError(msg.message, map[string]any{"field": msg.field})
}
