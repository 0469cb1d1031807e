package wheel

import (
	mrand "math/rand"
	"testing"
)

func TestSegmentsWeightsSumTo100(t *testing.T) {
	if got := totalWeight(Segments); got != 100 {
		t.Errorf("сумма весов = %d, ожидалось 100", got)
	}
}

func TestPickSegmentBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		roll   float64
		wantID string
	}{
		{"начало шкалы", 0.0, "orb_one"},
		{"внутри первого сегмента", 0.29, "orb_one"},
		{"граница первого и второго", 0.30, "xp_ten"},
		{"внутри последнего сегмента", 0.97, "xp_fifty"},
		{"почти единица", 0.9999, "xp_fifty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, seg := pickSegment(Segments, tt.roll)
			if seg.ID != tt.wantID {
				t.Errorf("roll %v → %s, ожидалось %s", tt.roll, seg.ID, tt.wantID)
			}
		})
	}
}

func TestPickSegmentIndexMatchesSegment(t *testing.T) {
	for roll := 0.0; roll < 1.0; roll += 0.01 {
		idx, seg := pickSegment(Segments, roll)
		if Segments[idx].ID != seg.ID {
			t.Fatalf("roll %v: индекс %d не соответствует сегменту %s", roll, idx, seg.ID)
		}
	}
}

// Частоты на большом числе бросков должны сходиться к weight/totalWeight.
func TestPickSegmentDistribution(t *testing.T) {
	rng := mrand.New(mrand.NewSource(42))
	const n = 100000

	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		_, seg := pickSegment(Segments, rng.Float64())
		counts[seg.ID]++
	}

	total := float64(totalWeight(Segments))
	for _, seg := range Segments {
		expected := float64(seg.Weight) / total
		actual := float64(counts[seg.ID]) / n

		// 1% абсолютного допуска хватает при 100k бросков
		if diff := actual - expected; diff > 0.01 || diff < -0.01 {
			t.Errorf("сегмент %s: частота %.4f, ожидалось %.4f", seg.ID, actual, expected)
		}
	}
}

func TestRandomFloatRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := randomFloat()
		if v < 0 || v >= 1 {
			t.Fatalf("randomFloat() = %v, вне [0,1)", v)
		}
	}
}
