// Package validator validates input DTOs with struct tags. Failures are reported as
// ErrValidationFailed carrying one "field: rule" entry per violated constraint.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/go-playground/validator/v10"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	clockPattern    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Validator wraps go-playground/validator. It also satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the storefront-specific rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	_ = v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Validate checks i and returns nil or an ErrValidationFailed.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "validate input")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required", "notblank":
		return field + ": obrigatório"
	case "email":
		return field + ": e-mail inválido"
	case "min":
		return field + ": mínimo " + fe.Param()
	case "max":
		return field + ": máximo " + fe.Param()
	case "gt":
		return field + ": deve ser maior que " + fe.Param()
	case "gte":
		return field + ": deve ser maior ou igual a " + fe.Param()
	case "oneof":
		return field + ": deve ser um de [" + fe.Param() + "]"
	case "hexcolor6":
		return field + ": cor inválida, use #RRGGBB"
	case "clock":
		return field + ": horário inválido, use HH:MM"
	default:
		return field + ": " + fe.Tag()
	}
}

// fieldPath drops the top-level struct name from the namespace, e.g. "ProductInput.name" -> "name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return fe.Field()
}
