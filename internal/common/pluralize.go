// Package common — pluralize.go содержит вспомогательные функции
// для правильного склонения русских числительных.
// Основная логика плюрализации реализована в helpers.go,
// этот файл экспортирует дополнительные утилиты.
package common

import "fmt"

// FormatOrbsDelta создаёт строку вида "+3 орба" или "-1 орб".
// Знак «+» или «-» добавляется автоматически.
//
// Примеры:
//
//	FormatOrbsDelta(3)  → "+3 орба"
//	FormatOrbsDelta(-1) → "-1 орб"
func FormatOrbsDelta(amount int64) string {
	if amount >= 0 {
		return fmt.Sprintf("+%d %s", amount, PluralizeOrbs(amount))
	}
	return fmt.Sprintf("%d %s", amount, PluralizeOrbs(amount))
}

// PluralizeXP возвращает форму слова «очко» (опыта) для числа n.
//
//	1 → "очко", 3 → "очка", 10 → "очков"
func PluralizeXP(n int64) string {
	absN := n
	if absN < 0 {
		absN = -absN
	}
	lastDigit := absN % 10
	lastTwoDigits := absN % 100

	if lastDigit == 1 && lastTwoDigits != 11 {
		return "очко"
	}
	if lastDigit >= 2 && lastDigit <= 4 && (lastTwoDigits < 12 || lastTwoDigits > 14) {
		return "очка"
	}
	return "очков"
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	// Простая реализация для чисел до миллиарда
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	// Рекурсивно добавляем разделители
	rest := n / 1000
	last := n % 1000

	if rest > 0 {
		return fmt.Sprintf("%s %03d", FormatNumber(rest), last)
	}
	return fmt.Sprintf("%d", last)
}
