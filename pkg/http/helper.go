package http

import (
	"net/http"
	"strconv"
	"time"

	"pawresort/pkg/config"
	apperrors "pawresort/pkg/errors"
)

const dateLayout = "2006-01-02"

func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	query := r.URL.Query()

	limit := 0
	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		limit = v
	}

	var offset int64 = 0
	if s := query.Get("offset"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid offset parameter: " + s)
		}
		offset = int64(v)
	}

	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	return limit, offset, nil
}

// ExtractDateRange parses the start_date / end_date query parameters as
// YYYY-MM-DD. Both are required.
func ExtractDateRange(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	start, err := time.Parse(dateLayout, query.Get("start_date"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("start_date must be a YYYY-MM-DD date")
	}
	end, err := time.Parse(dateLayout, query.Get("end_date"))
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.InvalidInput("end_date must be a YYYY-MM-DD date")
	}
	return start, end, nil
}
