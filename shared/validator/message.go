package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gt":       "{field} must be greater than {param}",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param}",
		"min":      "{field} must be at least {param}",
		"email":    "{field} must be a valid email address",
		"e164":     "{field} must be a phone number in E.164 format",
		"uuid":     "{field} must be a valid UUID",
		"url":      "{field} must be a valid URL",
		"numeric":  "{field} must be numeric",
		"datetime": "{field} must match the layout {param}",
		"nefield":  "{field} must differ from {param}",
		"domain":   "{field} has an unsupported value",
		"empty":    "{field} must not be set",
	}
)

// jsonName reports fields by their wire name so messages match the request body.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		errStr := messages[valErr.Tag()]
		if errStr == "" {
			continue
		}

		field := valErr.Field()
		if field == "" {
			field = "value"
		}

		param := valErr.Param()
		if valErr.Tag() == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}

		errStr = strings.ReplaceAll(errStr, "{field}", field)

		return strings.ReplaceAll(errStr, "{param}", param)
	}

	return valErrors.Error()
}
