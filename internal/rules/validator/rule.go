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

// Fields returns the per-field messages keyed by field name, in the shape
// the error responses expose under details.
func (v ValidationErrors) Fields() map[string]any {
	fields := make(map[string]any, len(v))
	for _, e := range v {
		fields[e.Field] = e.Message
	}
	return fields
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors
	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: messageForTag(err),
		})
	}
	return validationErrors
}

func messageForTag(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	case "mongodb":
		return "must be a valid object ID"
	default:
		return fmt.Sprintf("failed %s validation", err.Tag())
	}
}

type RuleValidator struct {
	validate *validator.Validate
}

func NewRuleValidator() *RuleValidator {
	return &RuleValidator{
		validate: validator.New(),
	}
}

func (v *RuleValidator) Validate(rule *model.PricingRule) error {
	if err := v.validate.Struct(rule); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	// Tag validation cannot see the type/payload pairing or the window
	// ordering; the model enforces those.
	if err := rule.Validate(); err != nil {
		return ValidationErrors{{Field: "rule", Message: err.Error()}}
	}

	return nil
}

func (v *RuleValidator) ValidateUpdate(update *model.PricingRuleUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if update.AdjustmentType == model.AdjustPercentage && update.AdjustmentValue != nil {
		if *update.AdjustmentValue < -100 || *update.AdjustmentValue > 100 {
			return ValidationErrors{{
				Field:   "adjustment_value",
				Message: "percentage adjustments must stay within [-100, 100]",
			}}
		}
	}

	return nil
}
