package orbs

import (
	"testing"
	"time"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestApplyRegen(t *testing.T) {
	hour := time.Hour

	tests := []struct {
		name        string
		current     int
		max         int
		rate        int
		elapsed     time.Duration
		wantCurrent int
		wantGranted int
		wantShift   time.Duration // сдвиг контрольной точки от base
	}{
		{
			name:    "меньше интервала — ничего не начислено",
			current: 3, max: 10, rate: 1,
			elapsed:     45 * time.Minute,
			wantCurrent: 3, wantGranted: 0, wantShift: 0,
		},
		{
			name:    "ровно один интервал",
			current: 3, max: 10, rate: 1,
			elapsed:     hour,
			wantCurrent: 4, wantGranted: 1, wantShift: hour,
		},
		{
			name:    "полтора интервала — частичный прогресс сохраняется",
			current: 3, max: 10, rate: 1,
			elapsed:     90 * time.Minute,
			wantCurrent: 4, wantGranted: 1, wantShift: hour,
		},
		{
			name:    "несколько интервалов разом",
			current: 0, max: 10, rate: 1,
			elapsed:     5*hour + 10*time.Minute,
			wantCurrent: 5, wantGranted: 5, wantShift: 5 * hour,
		},
		{
			name:    "отсечка по пределу — излишек сгорает",
			current: 9, max: 10, rate: 1,
			elapsed:     3 * hour,
			wantCurrent: 10, wantGranted: 1, wantShift: 3 * hour,
		},
		{
			name:    "уже полный — контрольная точка всё равно сдвигается",
			current: 10, max: 10, rate: 1,
			elapsed:     2 * hour,
			wantCurrent: 10, wantGranted: 0, wantShift: 2 * hour,
		},
		{
			name:    "pro-темп: 10 в час",
			current: 50, max: 100, rate: 10,
			elapsed:     2*hour + 59*time.Minute,
			wantCurrent: 70, wantGranted: 20, wantShift: 2 * hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := base.Add(tt.elapsed)
			gotCurrent, gotLast, gotGranted := applyRegen(tt.current, tt.max, tt.rate, base, now, time.Hour)

			if gotCurrent != tt.wantCurrent {
				t.Errorf("current = %d, ожидалось %d", gotCurrent, tt.wantCurrent)
			}
			if gotGranted != tt.wantGranted {
				t.Errorf("granted = %d, ожидалось %d", gotGranted, tt.wantGranted)
			}
			wantLast := base.Add(tt.wantShift)
			if !gotLast.Equal(wantLast) {
				t.Errorf("lastRegenAt = %v, ожидалось %v", gotLast, wantLast)
			}
		})
	}
}

// Контрольная точка не должна прыгать на текущий момент: два опроса
// подряд обязаны дать тот же суммарный результат, что один поздний.
func TestApplyRegenCadenceFidelity(t *testing.T) {
	// Один опрос в T+2.5ч
	cur1, last1, _ := applyRegen(0, 10, 1, base, base.Add(150*time.Minute), time.Hour)

	// Два опроса: T+1.5ч, затем T+2.5ч
	cur2, last2, _ := applyRegen(0, 10, 1, base, base.Add(90*time.Minute), time.Hour)
	cur2, last2, _ = applyRegen(cur2, 10, 1, last2, base.Add(150*time.Minute), time.Hour)

	if cur1 != cur2 {
		t.Errorf("расхождение запаса: один опрос %d, два опроса %d", cur1, cur2)
	}
	if !last1.Equal(last2) {
		t.Errorf("расхождение контрольной точки: %v и %v", last1, last2)
	}
	if cur1 != 2 {
		t.Errorf("за 2.5 часа должно быть 2 орба, получено %d", cur1)
	}
}

func TestApplyRegenNowBeforeCheckpoint(t *testing.T) {
	cur, last, granted := applyRegen(5, 10, 1, base, base.Add(-time.Minute), time.Hour)
	if cur != 5 || granted != 0 || !last.Equal(base) {
		t.Errorf("часы назад не должны ничего менять: cur=%d granted=%d last=%v", cur, granted, last)
	}
}

func TestNextETASeconds(t *testing.T) {
	tests := []struct {
		name    string
		current int
		max     int
		elapsed time.Duration
		want    int64
	}{
		{"полный запас — ноль", 10, 10, 10 * time.Minute, 0},
		{"сразу после начисления — целый интервал", 3, 10, 0, 3600},
		{"полпути до следующего", 3, 10, 30 * time.Minute, 1800},
		{"начисление просрочено — ноль", 3, 10, 61 * time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextETASeconds(tt.current, tt.max, base, base.Add(tt.elapsed), time.Hour)
			if got != tt.want {
				t.Errorf("eta = %d, ожидалось %d", got, tt.want)
			}
		})
	}
}

func TestCanSpend(t *testing.T) {
	rec := &Record{Current: 3}

	if !CanSpend(rec, 3, false) {
		t.Error("3 орба при запасе 3 должны списываться")
	}
	if CanSpend(rec, 4, false) {
		t.Error("4 орба при запасе 3 списываться не должны")
	}
	if !CanSpend(nil, 100, true) {
		t.Error("Pro тратит всегда, даже без записи")
	}
	if CanSpend(nil, 1, false) {
		t.Error("без записи свободный тариф тратить не может")
	}
}
