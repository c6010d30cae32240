package timecalc

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration formats d as "1h 2m 3s", dropping leading zero units.
// Sub-second precision is discarded.
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		return "-" + FormatDuration(-d)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationHHMMSS formats d as HH:MM:SS.
func FormatDurationHHMMSS(d time.Duration) string {
	seconds := int64(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// ParseDuration joins args and removes whitespace before parsing with Go
// duration syntax, so "1h 30m" given as two arguments reads as 1h30m.
func ParseDuration(args []string) (time.Duration, error) {
	joined := strings.Join(strings.Fields(strings.Join(args, " ")), "")
	if joined == "" {
		return 0, fmt.Errorf("missing duration")
	}
	d, err := time.ParseDuration(joined)
	if err != nil {
		return 0, fmt.Errorf("could not parse duration %q: %w", joined, err)
	}
	return d, nil
}

// Seconds truncates d to whole seconds, the precision the state file keeps.
func Seconds(d time.Duration) time.Duration {
	return d.Truncate(time.Second)
}
