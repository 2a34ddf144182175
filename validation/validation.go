// Package validation wraps go-playground/validator to turn struct tag
// validation into the violation lists the API contract expects. All checks
// run and all failures are collected before responding; nothing short-circuits
// on the first invalid field.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/devconnect-go/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names so violation params match what the
	// client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s and returns one violation per failed field, or nil when
// the struct is valid.
func Struct(s any) []apperror.Violation {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []apperror.Violation{{Param: "", Msg: err.Error()}}
	}

	violations := make([]apperror.Violation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, apperror.Violation{
			Param: fe.Field(),
			Msg:   messageFor(fe),
		})
	}
	return violations
}

// Check validates s and returns a ValidationError listing every violated
// field, or nil when the struct is valid.
func Check(s any) error {
	if violations := Struct(s); violations != nil {
		return apperror.NewValidationError(violations)
	}
	return nil
}

// requiredMessages carries the exact client-facing strings for the fields
// whose message is not derived from the Go field name. Keys are JSON field
// names.
var requiredMessages = map[string]string{
	"title":        "title is required",
	"company":      "company is required",
	"text":         "text is required",
	"from":         "From date is required",
	"school":       "school is required",
	"degree":       "degree is required",
	"fieldofstudy": "Field of study is required",
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("%s is required", fe.StructField())
	case "email":
		return "Please include a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Please enter a %s with %s or more characters", strings.ToLower(fe.StructField()), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.StructField(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.StructField())
	}
}
