package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding: errors use
// the json (or form) tag names and a few alias tags are registered.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		v.RegisterAlias("pwd", "min=8")
		v.RegisterAlias("strongpwd", "min=8,containsany=!@#$%^&*(),containsany=0123456789,containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ,containsany=abcdefghijklmnopqrstuvwxyz")
		v.RegisterAlias("handle", "min=3,max=30,excludesall= /\\?#@")
	}
}

// fieldName prefers the json tag, then the form tag.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ToDetails converts binding and validation errors into field -> message.
// Anything that is not a validator error is reported under "payload".
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = message(fe)
		}
		return out
	}
	return map[string]string{"payload": "invalid payload"}
}

// fixed messages by tag; tags with a parameter are handled in message.
var messages = map[string]string{
	"required":  "is required",
	"email":     "must be a valid email",
	"url":       "must be a valid URL",
	"uri":       "must be a valid URI",
	"alpha":     "must contain letters only",
	"alphanum":  "must contain letters and numbers only",
	"numeric":   "must be numeric",
	"lowercase": "must be lowercase",
	"datetime":  "has an invalid date format",
	"mongodb":   "must be a valid id",
	"uuid":      "must be a valid UUID",
	"image":     "must be an image",
	"pwd":       "min length 8",
	"strongpwd": "must be at least 8 characters with uppercase, lowercase, number and special character",
	"handle":    "must be 3-30 characters without spaces, '/', '\\', '?', '#' or '@'",
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Tag()]; ok {
		return m
	}
	param := fe.Param()
	unit := ""
	switch fe.Kind() {
	case reflect.String:
		unit = "length "
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "items "
	}

	switch fe.Tag() {
	case "min", "gte":
		return "min " + unit + param
	case "max", "lte":
		return "max " + unit + param
	case "len":
		return "must have " + unit + "exactly " + param
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "excludesall":
		return "must not contain any of " + fmt.Sprintf("%q", param)
	case "containsany":
		return "must contain at least one of " + fmt.Sprintf("%q", param)
	case "eqfield":
		return "must match " + param
	case "nefield":
		return "must differ from " + param
	}
	if param != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), param)
	}
	return "failed " + fe.Tag()
}
