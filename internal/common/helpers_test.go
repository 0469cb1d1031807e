package common

import (
	"testing"
	"time"
)

func TestPluralizeOrbs(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "орб"},
		{2, "орба"},
		{4, "орба"},
		{5, "орбов"},
		{10, "орбов"},
		{11, "орбов"},
		{12, "орбов"},
		{14, "орбов"},
		{21, "орб"},
		{22, "орба"},
		{100, "орбов"},
		{101, "орб"},
		{111, "орбов"},
		{0, "орбов"},
		{-1, "орб"},
	}

	for _, tt := range tests {
		if got := PluralizeOrbs(tt.n); got != tt.want {
			t.Errorf("PluralizeOrbs(%d) = %q, ожидалось %q", tt.n, got, tt.want)
		}
	}
}

func TestPluralizeXP(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "очко"},
		{3, "очка"},
		{10, "очков"},
		{11, "очков"},
		{25, "очков"},
		{121, "очко"},
	}

	for _, tt := range tests {
		if got := PluralizeXP(tt.n); got != tt.want {
			t.Errorf("PluralizeXP(%d) = %q, ожидалось %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatOrbsDelta(t *testing.T) {
	if got := FormatOrbsDelta(3); got != "+3 орба" {
		t.Errorf("FormatOrbsDelta(3) = %q", got)
	}
	if got := FormatOrbsDelta(-1); got != "-1 орб" {
		t.Errorf("FormatOrbsDelta(-1) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 000"},
		{2350, "2 350"},
		{1234567, "1 234 567"},
		{-1500, "-1 500"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, ожидалось %q", tt.n, got, tt.want)
		}
	}
}

func TestUTCDateKey(t *testing.T) {
	// 23:30 в UTC+3 — это уже следующие сутки локально, но ключ по UTC
	msk := time.FixedZone("MSK", 3*60*60)
	moment := time.Date(2025, 6, 2, 1, 30, 0, 0, msk) // 01:30 MSK = 22:30 UTC 1 июня

	if got := UTCDateKey(moment); got != "2025-06-01" {
		t.Errorf("UTCDateKey = %q, ожидалось 2025-06-01", got)
	}
}

func TestStartOfDayUTC(t *testing.T) {
	moment := time.Date(2025, 6, 1, 18, 45, 12, 0, time.UTC)
	got := StartOfDayUTC(moment)
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDayUTC = %v, ожидалось %v", got, want)
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "полный запас"},
		{-5, "полный запас"},
		{30, "меньше минуты"},
		{60, "1 мин"},
		{1800, "30 мин"},
		{3600, "1 ч 00 мин"},
		{3900, "1 ч 05 мин"},
		{7500, "2 ч 05 мин"},
	}

	for _, tt := range tests {
		if got := FormatETA(tt.seconds); got != tt.want {
			t.Errorf("FormatETA(%d) = %q, ожидалось %q", tt.seconds, got, tt.want)
		}
	}
}
