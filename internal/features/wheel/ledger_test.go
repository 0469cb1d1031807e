package wheel

import (
	"testing"
	"time"
)

func TestRolloverNeeded(t *testing.T) {
	tests := []struct {
		name    string
		dateKey string
		now     time.Time
		want    bool
	}{
		{
			"те же сутки",
			"2025-06-01",
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			false,
		},
		{
			"последняя секунда суток",
			"2025-06-01",
			time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC),
			false,
		},
		{
			"полночь UTC",
			"2025-06-01",
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			true,
		},
		{
			"леджер отстал на неделю",
			"2025-05-25",
			time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
			true,
		},
		{
			// 02:30 MSK 2 июня — это ещё 23:30 UTC 1 июня
			"локальная полночь не считается",
			"2025-06-01",
			time.Date(2025, 6, 2, 2, 30, 0, 0, time.FixedZone("MSK", 3*60*60)),
			false,
		},
		{
			// Ключ из будущего (перевод часов назад) тоже сбрасывается
			"будущий ключ",
			"2025-06-02",
			time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rolloverNeeded(tt.dateKey, tt.now); got != tt.want {
				t.Errorf("rolloverNeeded(%q, %v) = %v, ожидалось %v", tt.dateKey, tt.now, got, tt.want)
			}
		})
	}
}

func TestRemainingSpins(t *testing.T) {
	tests := []struct {
		used, dailyMax int
		want           int
	}{
		{0, 5, 5},
		{3, 5, 2},
		{4, 5, 1},
		{5, 5, 0},
		{7, 5, 0}, // предел ужесточили среди дня — не уходим в минус
		{0, 1, 1},
	}

	for _, tt := range tests {
		if got := remainingSpins(tt.used, tt.dailyMax); got != tt.want {
			t.Errorf("remainingSpins(%d, %d) = %d, ожидалось %d", tt.used, tt.dailyMax, got, tt.want)
		}
	}
}

func TestFreeLimitInformational(t *testing.T) {
	cfg := Config{FreeSpinsFree: 1, FreeSpinsPro: 3, DailyMaxSpins: 5}

	if got := freeLimitFor(cfg, false); got != 1 {
		t.Errorf("freeLimitFor(free) = %d, ожидалось 1", got)
	}
	if got := freeLimitFor(cfg, true); got != 3 {
		t.Errorf("freeLimitFor(pro) = %d, ожидалось 3", got)
	}

	// Исчерпание бесплатного лимита не запирает колесо:
	// остаток зависит только от used и дневного предела
	for used := 0; used < cfg.DailyMaxSpins; used++ {
		if got := remainingSpins(used, cfg.DailyMaxSpins); got != cfg.DailyMaxSpins-used {
			t.Errorf("remainingSpins(%d, %d) = %d: бесплатный лимит не должен влиять на остаток",
				used, cfg.DailyMaxSpins, got)
		}
	}
}
