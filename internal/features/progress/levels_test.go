package progress

import "testing"

func TestXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{1, 0},
		{2, 100},
		{3, 300},
		{4, 600},
		{5, 1000},
		{10, 4500},
	}

	for _, tt := range tests {
		if got := XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, ожидалось %d", tt.level, got, tt.want)
		}
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{299, 2},
		{300, 3},
		{599, 3},
		{600, 4},
		{4500, 10},
		{-5, 1},
	}

	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, ожидалось %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPToNextLevel(t *testing.T) {
	tests := []struct {
		xp   int64
		want int64
	}{
		{0, 100},
		{50, 50},
		{100, 200},
		{320, 280},
	}

	for _, tt := range tests {
		if got := XPToNextLevel(tt.xp); got != tt.want {
			t.Errorf("XPToNextLevel(%d) = %d, ожидалось %d", tt.xp, got, tt.want)
		}
	}
}
