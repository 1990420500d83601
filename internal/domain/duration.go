package domain

import (
	"fmt"
	"strconv"
	"strings"
)

var durationSuffixes = []string{"hours", "hour", "hrs", "hr", "h"}

// ParseDurationSlots parses a duration given as a slot count: "2", "2h", "2 hours", "1 hour".
// One slot is one hour of the studio day.
func ParseDurationSlots(raw string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(raw))

	for _, suffix := range durationSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, raw)
	}

	return n, nil
}
