// Package orbs — regen.go содержит чистую арифметику регенерации.
// Ключевое свойство: контрольная точка last_regen_at сдвигается только
// на целое число интервалов и никогда не «прыгает» на текущий момент,
// иначе частичный прогресс терялся бы при каждом опросе.
package orbs

import "time"

// applyRegen вычисляет регенерацию за время с lastRegenAt по now.
//
// Начисляется ratePerHour орбов за каждый ЦЕЛЫЙ прошедший интервал,
// с отсечкой по max (излишек сверх предела сгорает, не копится).
// Возвращает новый запас, новую контрольную точку и сколько начислено.
//
// Пример (interval=1ч, rate=1): lastRegenAt=T, проверка в T+90мин →
// начислен 1 орб, контрольная точка T+60мин; остаток 30 минут
// прогресса сохранён для следующей проверки.
func applyRegen(current, max, ratePerHour int, lastRegenAt, now time.Time, interval time.Duration) (int, time.Time, int) {
	if interval <= 0 || !now.After(lastRegenAt) {
		return current, lastRegenAt, 0
	}

	elapsed := now.Sub(lastRegenAt)
	intervals := int64(elapsed / interval) // целочисленное деление: частичный интервал не считается
	if intervals <= 0 {
		return current, lastRegenAt, 0
	}

	granted := int(intervals) * ratePerHour
	// Отсечка по пределу: сверх max не копим
	if current+granted > max {
		granted = max - current
		if granted < 0 {
			granted = 0
		}
	}

	// Контрольная точка сдвигается ровно на целые интервалы,
	// даже если начисление урезано отсечкой
	newLast := lastRegenAt.Add(time.Duration(intervals) * interval)
	return current + granted, newLast, granted
}

// nextETASeconds возвращает, через сколько секунд случится следующее
// начисление. При полном запасе — 0 (обработчик покажет «полный запас»).
func nextETASeconds(current, max int, lastRegenAt, now time.Time, interval time.Duration) int64 {
	if current >= max || interval <= 0 {
		return 0
	}
	next := lastRegenAt.Add(interval)
	eta := next.Sub(now)
	if eta < 0 {
		return 0
	}
	return int64(eta / time.Second)
}
