// Package wheel — draw.go реализует взвешенный случайный выбор сегмента.
// Равномерное значение в [0,1) берётся из криптографического источника;
// если он недоступен — откатываемся на math/rand.
package wheel

import (
	crand "crypto/rand"
	"encoding/binary"
	mrand "math/rand"

	log "github.com/sirupsen/logrus"
)

// totalWeight возвращает сумму весов всех сегментов.
func totalWeight(segments []Segment) int {
	total := 0
	for _, s := range segments {
		total += s.Weight
	}
	return total
}

// randomFloat возвращает равномерное число в [0,1).
// Основной источник — crypto/rand; при ошибке чтения — math/rand.
func randomFloat() float64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		log.WithError(err).Warn("crypto/rand недоступен, используем math/rand")
		return mrand.Float64()
	}
	// 53 старших бита → float64 в [0,1), как делает math/rand
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53)
}

// pickSegment выбирает сегмент по равномерному броску roll ∈ [0,1).
// Бросок масштабируется суммой весов, затем идём по кумулятивной
// таблице: вероятность каждого сегмента ровно weight/totalWeight.
// На случай граничных эффектов плавающей точки — последний сегмент.
func pickSegment(segments []Segment, roll float64) (int, Segment) {
	target := roll * float64(totalWeight(segments))

	cumulative := 0.0
	for i, s := range segments {
		cumulative += float64(s.Weight)
		if target < cumulative {
			return i, s
		}
	}

	// Защита от накопленной погрешности на самой границе
	last := len(segments) - 1
	return last, segments[last]
}
