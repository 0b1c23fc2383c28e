package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"pawresort/pkg/model"
)

type SuiteConfigValidator struct {
	validate *validator.Validate
}

func NewSuiteConfigValidator() *SuiteConfigValidator {
	return &SuiteConfigValidator{
		validate: validator.New(),
	}
}

func (v *SuiteConfigValidator) Validate(config *model.SuiteCapacityConfig) error {
	if err := v.validate.Struct(config); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	// Strategy-specific requirements (which optional fields each pricing
	// type needs, band partition coverage) live on the model.
	if err := config.Validate(); err != nil {
		return ValidationErrors{{Field: "pricing_type", Message: err.Error()}}
	}

	return nil
}
