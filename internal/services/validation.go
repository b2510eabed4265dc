package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yoockh/devconnector/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct returns an INVALID_ARGUMENT error listing every rejected field,
// or nil.
func validateStruct(op string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return utils.E(utils.CodeInternal, op, "failed to validate input", err)
	}

	fields := make([]utils.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, utils.FieldError{Field: fe.Field(), Msg: fieldMessage(fe)})
	}
	return utils.Invalid(op, fields)
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	default:
		return label + " is invalid"
	}
}
