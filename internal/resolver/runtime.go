package resolver

import (
	"fmt"
	"strings"

	"github.com/catarr/catarr/internal/catalog"
)

// FormatRuntime renders a minute count into the raw components plus the
// long and short display strings. Word forms are singular or plural by
// value: "1 hour 30 minutes", "2 hrs".
func FormatRuntime(minutes int) catalog.Runtime {
	if minutes <= 0 {
		return catalog.Runtime{Short: "0 min", Full: "0 minutes"}
	}

	h := minutes / 60
	m := minutes % 60

	var long, short []string
	if h > 0 {
		long = append(long, fmt.Sprintf("%d %s", h, plural(h, "hour", "hours")))
		short = append(short, fmt.Sprintf("%d %s", h, plural(h, "hr", "hrs")))
	}
	if m > 0 {
		long = append(long, fmt.Sprintf("%d %s", m, plural(m, "minute", "minutes")))
		short = append(short, fmt.Sprintf("%d min", m))
	}

	return catalog.Runtime{
		Hours:   h,
		Minutes: m,
		Short:   strings.Join(short, " "),
		Full:    strings.Join(long, " "),
	}
}

func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
