package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"pawresort/pkg/model"
)

type HolidayValidator struct {
	validate *validator.Validate
}

func NewHolidayValidator() *HolidayValidator {
	return &HolidayValidator{
		validate: validator.New(),
	}
}

func (v *HolidayValidator) Validate(holiday *model.Holiday) error {
	if err := v.validate.Struct(holiday); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if err := holiday.Validate(); err != nil {
		return ValidationErrors{{Field: "holiday", Message: err.Error()}}
	}

	return nil
}
