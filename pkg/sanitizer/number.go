package sanitizer

const (
	MinPriority = 0

	MaxPriority = 100000
)

func NormalizePriority(priority int) int {
	if priority < MinPriority {
		return MinPriority
	}
	if priority > MaxPriority {
		return MaxPriority
	}
	return priority
}

// ClampPercentage keeps percentage adjustments within the allowed band.
func ClampPercentage(pct float64) float64 {
	if pct < -100 {
		return -100
	}
	if pct > 100 {
		return 100
	}
	return pct
}
