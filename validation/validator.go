package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/groupchain/errors"
)

// FieldError is one failed rule, keyed by the config path of the field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

// Validator accumulates field errors from chained checks. The zero value is
// ready to use.
type Validator struct {
	errors []FieldError
}

func New() *Validator { return &Validator{} }

// AddError records message against field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// Errors returns the recorded errors in the order they were added.
func (v *Validator) Errors() []FieldError { return v.errors }

// Err returns an INVALID_INPUT AppError listing every field error, or nil.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.String()
	}
	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Check records message against field when ok is false.
func (v *Validator) Check(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Required rejects an empty or blank value.
func (v *Validator) Required(field, value string) *Validator {
	return v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// OneOf rejects a value outside allowed. An empty value passes.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	return v.Check(value == "" || slices.Contains(allowed, value), field,
		"must be one of: "+strings.Join(allowed, ", "))
}

// Min rejects a value below minVal.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	return v.Check(value >= minVal, field, fmt.Sprintf("must be at least %d", minVal))
}

// Merge appends the field errors of err when it is a validation AppError,
// prefixing each field with prefix. Any other non-nil error is recorded
// against prefix itself.
func (v *Validator) Merge(prefix string, err error) *Validator {
	if err == nil {
		return v
	}
	if appErr, ok := errors.AsAppError(err); ok {
		if fields, ok := appErr.Details["fields"].([]FieldError); ok {
			for _, f := range fields {
				v.AddError(join(prefix, f.Field), f.Message)
			}
			return v
		}
	}
	v.AddError(prefix, err.Error())
	return v
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
