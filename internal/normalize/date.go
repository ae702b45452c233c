package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	dateRe = regexp.MustCompile(`(\d{1,4})[/\-.](\d{1,2})(?:[/\-.](\d{1,4}))?`)
	timeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
)

// Date coerces a raw date string into the canonical dd/MM/yyyy form, with an
// optional " HH:mm:ss" suffix when the source carries a time of day. Two-digit
// years expand to the current century and a missing year takes now's year, so
// now is an explicit parameter rather than an ambient clock read. Canonical
// input passes through unchanged. ok is false when no usable date is found.
func Date(raw string, now time.Time) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	m := dateRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	var day, month, year int
	switch {
	case m[3] == "":
		// day/month with no year at all
		day, month = atoi(m[1]), atoi(m[2])
		year = now.Year()
	case len(m[1]) == 4:
		// ISO ordering: yyyy/mm/dd
		year, month, day = atoi(m[1]), atoi(m[2]), atoi(m[3])
	default:
		day, month = atoi(m[1]), atoi(m[2])
		year = atoi(m[3])
		switch len(m[3]) {
		case 2:
			year += (now.Year() / 100) * 100
		case 4:
		default:
			return "", false
		}
	}

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}

	out := fmt.Sprintf("%02d/%02d/%04d", day, month, year)

	if tm := timeRe.FindStringSubmatch(raw); tm != nil {
		hour, min := atoi(tm[1]), atoi(tm[2])
		sec := 0
		if tm[3] != "" {
			sec = atoi(tm[3])
		}
		if hour <= 23 && min <= 59 && sec <= 59 {
			out += fmt.Sprintf(" %02d:%02d:%02d", hour, min, sec)
		}
	}
	return out, true
}

// DateOrNow behaves like Date but substitutes now, formatted canonically,
// when the raw value yields no usable date.
func DateOrNow(raw string, now time.Time) string {
	if out, ok := Date(raw, now); ok {
		return out
	}
	return now.Format("02/01/2006")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
