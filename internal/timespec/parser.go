package timespec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// day is the length of the "d" unit. Calendar days are not considered.
const day = 24 * time.Hour

// ParseDuration parses a duration specification.
// Supports two forms:
//   - Go duration format: "30s", "1h30m", "2h45m30s"
//   - Whole days, optionally followed by a Go duration: "7d", "1d12h"
//
// Negative durations are rejected. An empty specification is an error.
func ParseDuration(spec string) (time.Duration, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("empty duration specification")
	}

	var total time.Duration
	rest := spec

	// Leading day component
	if i := strings.IndexByte(rest, 'd'); i > 0 {
		days, err := strconv.Atoi(rest[:i])
		if err != nil || days < 0 {
			return 0, invalid(spec)
		}
		total = time.Duration(days) * day
		rest = rest[i+1:]
	}

	if rest != "" {
		d, err := time.ParseDuration(rest)
		if err != nil {
			return 0, invalid(spec)
		}
		total += d
	}

	if total < 0 {
		return 0, fmt.Errorf("duration must not be negative: %s", spec)
	}

	return total, nil
}

// Format renders d using the largest whole-day prefix, so that
// ParseDuration(Format(d)) == d.
func Format(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	days := d / day
	rem := d % day

	switch {
	case days == 0:
		return rem.String()
	case rem == 0:
		return fmt.Sprintf("%dd", days)
	default:
		return fmt.Sprintf("%dd%s", days, rem)
	}
}

func invalid(spec string) error {
	return fmt.Errorf("invalid duration: %s (use a duration like '30s', '1h30m' or '7d')", spec)
}
