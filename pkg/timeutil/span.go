package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultSpan is the fallback visible span used when none is provided.
	DefaultSpan = "3m"
)

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	spanUnits   = map[string]int{
		"d":      1,
		"day":    1,
		"days":   1,
		"w":      7,
		"wk":     7,
		"wks":    7,
		"week":   7,
		"weeks":  7,
		"m":      30,
		"mo":     30,
		"month":  30,
		"months": 30,
		"y":      365,
		"yr":     365,
		"yrs":    365,
		"year":   365,
		"years":  365,
	}
)

// ParseSpan parses a human-friendly span of days (for example "90d", "1y" or
// "1y6m") and returns the number of days along with a canonical, compact
// representation. Months count as 30 days and years as 365. When the input is
// empty, DefaultSpan is used.
func ParseSpan(input string) (int, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultSpan
	}

	remaining := strings.ToLower(trimmed)
	total := 0
	for len(remaining) > 0 {
		matches := spanPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid span segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid span value %q: %w", matches[1], err)
		}
		unit, ok := spanUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported span unit %q", matches[2])
		}
		total += value * unit
		remaining = strings.TrimSpace(remaining[len(matches[0]):])
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("span must be greater than zero")
	}
	return total, FormatSpan(total), nil
}

// FormatSpan renders a day count using year/month/week/day tokens.
func FormatSpan(days int) string {
	if days <= 0 {
		return "0d"
	}

	units := []struct {
		label string
		value int
	}{
		{"y", 365},
		{"m", 30},
		{"w", 7},
		{"d", 1},
	}

	var parts []string
	remaining := days
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	return strings.Join(parts, "")
}
