// Package validation holds the request contracts checked before any
// business logic runs, together with the Indonesian messages reported for
// each violated field.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every violated field of a request.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds an Error for a single field.
func NewError(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

var digitsPattern = regexp.MustCompile(`^\d+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsPattern.MatchString(fl.Field().String())
	})
	return v
}

// fieldName reports the name a client used for the field.
func fieldName(sf reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return sf.Name
}

// Struct validates v and returns *Error listing every failed field.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	root := reflect.TypeOf(v)
	for root.Kind() == reflect.Pointer {
		root = root.Elem()
	}

	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: messageFor(root, fe),
		})
	}
	return out
}

// messageFor prefers a tag specific `message_<tag>` over the generic `message`.
func messageFor(root reflect.Type, fe validator.FieldError) string {
	if sf, ok := lookupField(root, fe.StructNamespace()); ok {
		if msg := sf.Tag.Get("message_" + fe.Tag()); msg != "" {
			return msg
		}
		if msg := sf.Tag.Get("message"); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%s tidak valid", fe.Field())
}

func lookupField(root reflect.Type, namespace string) (reflect.StructField, bool) {
	parts := strings.Split(namespace, ".")
	if len(parts) < 2 {
		return reflect.StructField{}, false
	}

	t := root
	var sf reflect.StructField
	for _, name := range parts[1:] {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		var ok bool
		if sf, ok = t.FieldByName(name); !ok {
			return reflect.StructField{}, false
		}
		t = sf.Type
	}
	return sf, true
}

// FromDecode converts a body or query decoding failure into a field error.
// Validation errors are passed through unchanged.
func FromDecode(err error) *Error {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return NewError(typeErr.Field, fmt.Sprintf("%s harus bertipe %s", typeErr.Field, typeErr.Type.Kind()))
	}
	return NewError("body", "Format data tidak valid")
}
