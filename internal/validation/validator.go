// Package validation provides struct validation using go-playground/validator v10.
// It wraps a process-wide validator instance, registers the custom rules used
// by birdplot configuration and records, and translates field errors into
// short human-readable messages.
//
// Example:
//
//	type ChartConfig struct {
//	    MaxValue float64 `koanf:"max_value" validate:"gt=0"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    return fmt.Errorf("invalid chart config: %s", err)
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/image/colornames"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

// Field returns the field name (koanf key when the struct has koanf tags).
func (e FieldError) Field() string { return e.field }

// Tag returns the failed validation tag.
func (e FieldError) Tag() string { return e.tag }

// Param returns the tag parameter, e.g. "0" for "gt=0".
func (e FieldError) Param() string { return e.param }

// Value returns the offending value.
func (e FieldError) Value() interface{} { return e.value }

func (e FieldError) Error() string { return e.message }

// Errors collects every failed rule of one ValidateStruct call.
type Errors struct {
	errors []FieldError
}

// Errors returns the individual field errors.
func (ve *Errors) Errors() []FieldError {
	return ve.errors
}

// HasField reports whether the named field failed any rule.
func (ve *Errors) HasField(field string) bool {
	for _, e := range ve.errors {
		if strings.EqualFold(e.field, field) {
			return true
		}
	}
	return false
}

func (ve *Errors) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.errors))
	for _, err := range ve.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report koanf keys instead of Go field names where available.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("colorname", isColorName)
	})

	return validate
}

// isColorName accepts SVG/CSS colour keywords such as "lightblue".
func isColorName(fl validator.FieldLevel) bool {
	_, ok := colornames.Map[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
	return ok
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes.
func ValidateStruct(s interface{}) *Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &Errors{errors: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}}}
	}

	fieldErrors := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fieldErrors[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe),
		}
	}
	return &Errors{errors: fieldErrors}
}

var errorMessageTemplates = map[string]string{
	"required":           "%s is required",
	"hexcolor|colorname": "%s must be a colour name or #rrggbb",
	"colorname":          "%s must be a colour name",
	"hexcolor":           "%s must be a #rrggbb colour",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fieldPath(fe)
	if template, ok := errorMessageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// fieldPath drops the root struct name from the namespace, so
// "Config.chart.max_value" becomes "chart.max_value".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
