package engine

import (
	"time"

	"pawresort/pkg/model"
)

// SeasonOf derives the pricing season from the calendar month:
// Mar-May spring, Jun-Aug summer, Sep-Nov fall, Dec-Feb winter.
func SeasonOf(day time.Time) model.Season {
	switch day.Month() {
	case time.March, time.April, time.May:
		return model.SeasonSpring
	case time.June, time.July, time.August:
		return model.SeasonSummer
	case time.September, time.October, time.November:
		return model.SeasonFall
	default:
		return model.SeasonWinter
	}
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
