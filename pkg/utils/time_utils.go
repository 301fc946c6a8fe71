package utils

import (
	"strings"
	"time"
)

// ParseStateTransitionTime extracts a time from EC2 state transition reason
// Example format: "User initiated (2023-04-01 12:34:56 GMT)"
func ParseStateTransitionTime(reason string) *time.Time {
	if len(reason) == 0 {
		return nil
	}

	parts := strings.Split(reason, "(")
	if len(parts) < 2 {
		return nil
	}

	dateStr := strings.TrimSuffix(parts[1], ")")
	dateStr = strings.TrimSpace(dateStr)

	t, err := time.Parse("2006-01-02 15:04:05 MST", dateStr)
	if err != nil {
		return nil
	}

	return &t
}

// CalculateElapsedDays calculates the number of days elapsed since a given time
func CalculateElapsedDays(since time.Time) int {
	return int(time.Since(since).Hours() / 24)
}
