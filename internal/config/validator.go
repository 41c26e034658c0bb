package config

import (
	"fmt"
	"strings"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("field '%s' failed on '%s'", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return errorwrapper.WrapError(errorwrapper.ErrInvalidConfiguration, strings.Join(messages, "; "))
		}
		return errorwrapper.WrapError(err, "config validation failed")
	}

	return nil
}
