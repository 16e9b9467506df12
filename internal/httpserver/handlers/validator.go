package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// GetValidator returns the shared request validator. Field names in errors
// are the JSON names.
func GetValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// formatValidationError reports the first failed field as an invalid argument.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		return fmt.Errorf("field validation for '%s' failed on the '%s' tag: %w", e.Field(), e.Tag(), domain.ErrInvalidArgument)
	}
	return fmt.Errorf("%v: %w", err, domain.ErrInvalidArgument)
}
