// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: русская плюрализация, форматирование чисел, работа с временем.
package common

import (
	"fmt"
	"math"
	"time"
)

// PluralizeOrbs возвращает правильную форму слова «орб» для числа n.
//
// Правила русского языка:
//   - n%10==1 И n%100!=11 → "орб" (1, 21, 31, 101, ...)
//   - n%10 в [2,3,4] И n%100 НЕ в [12,13,14] → "орба" (2, 3, 4, 22, 23, ...)
//   - Остальные случаи → "орбов" (0, 5-20, 25-30, 100, ...)
//
// Примеры:
//
//	PluralizeOrbs(1)  → "орб"
//	PluralizeOrbs(3)  → "орба"
//	PluralizeOrbs(5)  → "орбов"
//	PluralizeOrbs(11) → "орбов"
//	PluralizeOrbs(21) → "орб"
func PluralizeOrbs(n int64) string {
	// Берём абсолютное значение для отрицательных чисел
	absN := int64(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	// Единственное число: 1, 21, 31, 101 (но НЕ 11, 111)
	if lastDigit == 1 && lastTwoDigits != 11 {
		return "орб"
	}

	// Малое множественное: 2-4, 22-24, 32-34 (но НЕ 12-14)
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "орба"
	}

	// Большое множественное: 0, 5-20, 25-30, 100, ...
	return "орбов"
}

// FormatOrbs форматирует запас орбов в читабельную строку.
// Пример: FormatOrbs(3) → "3 орба"
func FormatOrbs(n int64) string {
	return fmt.Sprintf("%d %s", n, PluralizeOrbs(n))
}

// PluralizeSpins возвращает правильную форму слова «вращение».
//
// Правила:
//   - 1, 21, 31 → "вращение"
//   - 2-4, 22-24 → "вращения"
//   - 5-20, 25-30 → "вращений"
func PluralizeSpins(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "вращение"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "вращения"
	}
	return "вращений"
}

// PluralizeDays возвращает правильную форму слова «день» для числа n.
func PluralizeDays(n int) string {
	absN := int(math.Abs(float64(n)))
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "день"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "дня"
	}
	return "дней"
}

// UTCDateKey возвращает календарную дату в UTC в формате "2006-01-02".
// Все дневные лимиты (колесо, видения, стрик) живут по UTC-суткам,
// чтобы сброс не зависел от часового пояса пользователя.
func UTCDateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TodayUTC возвращает ключ текущих UTC-суток.
func TodayUTC() string {
	return UTCDateKey(time.Now())
}

// StartOfDayUTC возвращает полночь текущих UTC-суток.
// Используется для подсчёта «сколько было сегодня» по created_at.
func StartOfDayUTC(now time.Time) time.Time {
	t := now.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" (UTC).
// Используется для отображения записей журнала ритуалов.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format("02.01.2006 15:04")
}

// FormatETA превращает секунды до следующей регенерации в строку
// вида "42 мин" или "1 ч 05 мин". При нуле возвращает "полный запас".
func FormatETA(seconds int64) string {
	if seconds <= 0 {
		return "полный запас"
	}
	d := time.Duration(seconds) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%d ч %02d мин", h, m)
	}
	if m == 0 {
		return "меньше минуты"
	}
	return fmt.Sprintf("%d мин", m)
}
