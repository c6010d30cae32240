package timecalc_test

import (
	"testing"
	"time"

	"github.com/fakeyudi/hat/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{59*time.Second + 900*time.Millisecond, "59s"},
		{60 * time.Second, "1m 0s"},
		{90 * time.Second, "1m 30s"},
		{time.Hour, "1h 0m 0s"},
		{time.Hour + time.Minute + time.Second, "1h 1m 1s"},
		{26 * time.Hour, "26h 0m 0s"},
		{-90 * time.Second, "-1m 30s"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.d)
		if got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatDurationHHMMSS(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{61 * time.Second, "00:01:01"},
		{3661 * time.Second, "01:01:01"},
		{-time.Second, "00:00:00"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDurationHHMMSS(tt.d)
		if got != tt.want {
			t.Errorf("FormatDurationHHMMSS(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		args    []string
		want    time.Duration
		wantErr bool
	}{
		{[]string{"5h"}, 5 * time.Hour, false},
		{[]string{"1h", "30m"}, 90 * time.Minute, false},
		{[]string{"1h 30m"}, 90 * time.Minute, false},
		{[]string{"0s"}, 0, false},
		{[]string{"-5m"}, -5 * time.Minute, false},
		{[]string{}, 0, true},
		{[]string{"  "}, 0, true},
		{[]string{"five", "hours"}, 0, true},
	}
	for _, tt := range tests {
		got, err := timecalc.ParseDuration(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestSeconds(t *testing.T) {
	if got := timecalc.Seconds(1500 * time.Millisecond); got != time.Second {
		t.Errorf("Seconds(1.5s) = %v, want 1s", got)
	}
}
