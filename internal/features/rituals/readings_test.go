package rituals

import (
	"errors"
	"testing"
	"time"

	"arcanum.ru/mystic-bot/internal/common"
)

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"21.03.1990", false},
		{"01.01.1900", false},
		{"31.12.1999", false},
		{"31.02.2000", true}, // несуществующий день
		{"2000-01-01", true}, // чужой формат
		{"21/03/1990", true},
		{"01.01.1850", true}, // до нижней границы
		{"01.01.2099", true}, // будущее
		{"", true},
		{"руна", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBirthDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, common.ErrBadDate) {
					t.Errorf("ожидалась ErrBadDate, получено %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
			if got.IsZero() {
				t.Error("дата не должна быть нулевой")
			}
		})
	}
}

func TestLifePathNumber(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"21.03.1990", 7}, // 3 + 3 + 1
		{"01.01.2000", 4}, // 1 + 1 + 2
		{"29.12.1988", 4}, // 29→2, 12→3, 1988→8; 13 → 4
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := ParseBirthDate(tt.date)
			if err != nil {
				t.Fatalf("разбор даты: %v", err)
			}
			if got := LifePathNumber(d); got != tt.want {
				t.Errorf("LifePathNumber(%s) = %d, ожидалось %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestLifePathNumberInRange(t *testing.T) {
	d := time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 500; i++ {
		n := LifePathNumber(d.AddDate(0, 0, i*37))
		if n < 1 || n > 9 {
			t.Fatalf("число судьбы %d вне 1..9", n)
		}
	}
}

func TestCompatibilityScore(t *testing.T) {
	tests := []struct {
		a, b int
		want int
	}{
		{7, 7, 100}, // совпадение
		{1, 2, 88},  // соседи
		{1, 9, 88},  // соседи по кольцу
		{3, 7, 52},  // расстояние 4
		{1, 5, 52},  // расстояние 4 (кольцо не короче)
	}

	for _, tt := range tests {
		if got := CompatibilityScore(tt.a, tt.b); got != tt.want {
			t.Errorf("CompatibilityScore(%d, %d) = %d, ожидалось %d", tt.a, tt.b, got, tt.want)
		}
		// Симметрия
		if got := CompatibilityScore(tt.b, tt.a); got != tt.want {
			t.Errorf("CompatibilityScore(%d, %d) = %d, несимметрично", tt.b, tt.a, got)
		}
	}
}

func TestCompatibilityVerdictBands(t *testing.T) {
	if CompatibilityVerdict(100) == CompatibilityVerdict(52) {
		t.Error("вердикты крайних оценок должны различаться")
	}
	for _, score := range []int{100, 88, 64, 52, 40} {
		if CompatibilityVerdict(score) == "" {
			t.Errorf("пустой вердикт для %d", score)
		}
	}
}

func TestNumberMeaningCoversAllNumbers(t *testing.T) {
	for n := 1; n <= 9; n++ {
		if NumberMeaning(n) == "число вне канона" {
			t.Errorf("нет трактовки для числа %d", n)
		}
	}
}

func TestRunesTableComplete(t *testing.T) {
	if len(Runes) != 24 {
		t.Fatalf("рун в футарке 24, в таблице %d", len(Runes))
	}
	seen := make(map[string]bool)
	for _, r := range Runes {
		if r.Symbol == "" || r.Name == "" || r.Meaning == "" {
			t.Errorf("неполная руна: %+v", r)
		}
		if seen[r.Name] {
			t.Errorf("дубликат руны %s", r.Name)
		}
		seen[r.Name] = true
	}
}
