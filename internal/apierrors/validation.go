package apierrors

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validationDetails describes every failed field keyed by its JSON name
func validationDetails(validationErrs validator.ValidationErrors) map[string]interface{} {
	fields := make(map[string]interface{}, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[jsonFieldName(fieldErr)] = fieldErr.Tag()
	}
	return map[string]interface{}{"fields": fields}
}

// buildValidationMessage joins the per-field messages into one sentence
func buildValidationMessage(validationErrs validator.ValidationErrors) string {
	switch len(validationErrs) {
	case 0:
		return "Invalid request"
	case 1:
		return fieldMessage(validationErrs[0])
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldMessage(fieldErr))
	}
	return "Validation failed: " + strings.Join(messages, "; ")
}

func fieldMessage(fieldErr validator.FieldError) string {
	field := jsonFieldName(fieldErr)
	param := fieldErr.Param()

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, boundUnit(fieldErr.Kind(), param))
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, boundUnit(fieldErr.Kind(), param))
	case "http_url":
		return fmt.Sprintf("%s must be an absolute http(s) URL", field)
	case "dive":
		return fmt.Sprintf("%s contains an invalid item", field)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fieldErr.Tag())
	}
}

// boundUnit phrases a min/max parameter for the kind of value it limits
func boundUnit(kind reflect.Kind, param string) string {
	switch kind {
	case reflect.String:
		return param + " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return param + " items"
	default:
		return param
	}
}

// jsonFieldName turns a Go field name such as CompletionTime into its JSON key
func jsonFieldName(fieldErr validator.FieldError) string {
	name := fieldErr.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
