// Package duration parses the retention windows accepted by "vacuum
// --older-than" and "history --since".
//
// Users write "12h", "7d", "4w" or "3m" rather than Go's time.Duration
// format. A month is 30 days.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const day = 24 * time.Hour

var pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)

// Parse parses a duration in the format Nh, Nd, Nw or Nm.
func Parse(s string) (time.Duration, error) {
	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid duration format: %s (use 12h, 7d, 4w, or 3m)", s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}

	switch matches[2] {
	case "h":
		return time.Duration(num) * time.Hour, nil
	case "d":
		return time.Duration(num) * day, nil
	case "w":
		return time.Duration(num) * 7 * day, nil
	default:
		return time.Duration(num) * 30 * day, nil
	}
}

// Cutoff returns the instant s before now.
func Cutoff(s string, now time.Time) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
