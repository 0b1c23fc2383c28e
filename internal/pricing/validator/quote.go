package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"pawresort/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

func (v ValidationErrors) Fields() map[string]any {
	fields := make(map[string]any, len(v))
	for _, e := range v {
		fields[e.Field] = e.Message
	}
	return fields
}

type QuoteValidator struct {
	validate *validator.Validate
}

func NewQuoteValidator() *QuoteValidator {
	return &QuoteValidator{
		validate: validator.New(),
	}
}

func (v *QuoteValidator) Validate(req *model.QuoteRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translate(validationErrs)
		}
		return err
	}

	start, end, _, err := req.Dates()
	if err != nil {
		return ValidationErrors{{Field: "dates", Message: err.Error()}}
	}
	if !end.After(start) {
		return ValidationErrors{{
			Field:   "end_date",
			Message: fmt.Sprintf("must be after start_date %s", req.StartDate),
		}}
	}

	return nil
}

func (v *QuoteValidator) translate(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = "is required"
		case "min":
			message = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s", err.Param())
		case "datetime":
			message = "must be a calendar date in YYYY-MM-DD form"
		default:
			message = fmt.Sprintf("failed %s validation", err.Tag())
		}
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}
	return validationErrors
}
