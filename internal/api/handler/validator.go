package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/domain"
)

// echoValidator plugs go-playground/validator into echo.Echo.Validator.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator names fields after their json tags and registers the "task"
// rule for staff task labels.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("task", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseTask(fl.Field().String())
		return ok
	})
	return &echoValidator{v: v}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// Validate joins every failed field into one message.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

var fieldMessages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be at least %s",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"oneof":    "%s must be one of: %s",
	"datetime": "%s must be a date formatted as %s",
	"ne":       "%s must not be %s",
	"task":     "%s is not a known task",
}

func fieldError(fe validator.FieldError) string {
	format, ok := fieldMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
	if strings.Count(format, "%s") == 2 {
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
	return fmt.Sprintf(format, fe.Field())
}
