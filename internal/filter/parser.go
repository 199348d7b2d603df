package filter

import (
	"fmt"
	"strings"
	"time"
)

// ParseDateRange parses a date range string into start and end dates.
//
// Supported formats:
//   - "2024-03" - entire month
//   - "2024-03-01..2024-03-15" - explicit range, either side may be empty
//   - "2024-03-10" - single day
//
// Returns (dateFrom, dateTo, error). Dates are midnight UTC; both ends are
// inclusive.
func ParseDateRange(input string) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("date range cannot be empty")
	}

	if from, to, ok := strings.Cut(input, ".."); ok {
		var fromPtr, toPtr *time.Time
		if from = strings.TrimSpace(from); from != "" {
			t, err := time.Parse("2006-01-02", from)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid start date: %s", from)
			}
			fromPtr = &t
		}
		if to = strings.TrimSpace(to); to != "" {
			t, err := time.Parse("2006-01-02", to)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid end date: %s", to)
			}
			toPtr = &t
		}
		if fromPtr == nil && toPtr == nil {
			return nil, nil, fmt.Errorf("date range needs at least one bound")
		}
		if fromPtr != nil && toPtr != nil && fromPtr.After(*toPtr) {
			return nil, nil, fmt.Errorf("start date must be before end date")
		}
		return fromPtr, toPtr, nil
	}

	if t, err := time.Parse("2006-01-02", input); err == nil {
		return &t, &t, nil
	}

	if t, err := time.Parse("2006-01", input); err == nil {
		end := t.AddDate(0, 1, -1)
		return &t, &end, nil
	}

	return nil, nil, fmt.Errorf("unrecognized date range: %s", input)
}
