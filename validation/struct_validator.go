package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/groupchain/errors"
)

// structValidator reports fields by their mapstructure key, falling back to
// the snake_cased Go name.
var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return toSnakeCase(fld.Name)
		}
		return name
	})
	return v
})

// Struct validates s using its `validate` struct tags. Failures are returned
// as an INVALID_INPUT AppError listing every offending field.
func Struct(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	v := New()
	for _, e := range fieldErrs {
		v.AddError(fieldPath(e), message(e))
	}
	return v.Err()
}

// fieldPath drops the root struct name from the namespace, so a nested field
// reads "storage.bucket".
func fieldPath(e validator.FieldError) string {
	if _, rest, ok := strings.Cut(e.Namespace(), "."); ok {
		return rest
	}
	return e.Field()
}

var messages = map[string]string{
	"required":      "is required",
	"required_if":   "is required",
	"oneof":         "must be one of: ",
	"min":           "must be at least ",
	"max":           "must be at most ",
	"gte":           "must be greater than or equal to ",
	"lte":           "must be less than or equal to ",
	"hostname_port": "must be host:port",
	"dive":          "has an invalid element",
}

// message renders the failed tag. Messages ending in a space take the tag
// parameter.
func message(e validator.FieldError) string {
	msg, ok := messages[e.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.HasSuffix(msg, " ") {
		msg += e.Param()
	}
	return msg
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
