package errors

import "errors"

var (
	ErrRuleNotFound   = errors.New("pricing rule not found")
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrConfigNotFound  = errors.New("suite capacity config not found")

	ErrInvalidID = errors.New("invalid catalog ID format")
)
