// Package rituals — readings.go содержит чистые вычисления гаданий:
// разбор даты, нумерологическая свёртка и оценка совместимости.
// Всё детерминировано и покрывается тестами без БД.
package rituals

import (
	"time"

	"arcanum.ru/mystic-bot/internal/common"
)

// numberMeanings — трактовки чисел судьбы 1..9.
var numberMeanings = map[int]string{
	1: "лидер: путь первопроходца, сила воли и самостоятельность",
	2: "дипломат: союзы, чуткость, умение слышать других",
	3: "творец: вдохновение, слово и самовыражение",
	4: "строитель: порядок, труд и надёжный фундамент",
	5: "странник: свобода, перемены и жажда нового",
	6: "хранитель: забота, дом и ответственность за близких",
	7: "мудрец: поиск истины, уединение и глубина",
	8: "владыка: амбиции, материя и умение управлять",
	9: "наставник: служение, завершение циклов и щедрость",
}

// ParseBirthDate разбирает дату рождения в формате ДД.ММ.ГГГГ.
// Невалидная строка или несуществующая дата → common.ErrBadDate.
func ParseBirthDate(s string) (time.Time, error) {
	t, err := time.Parse("02.01.2006", s)
	if err != nil {
		return time.Time{}, common.ErrBadDate
	}
	// Несуществующие даты time.Parse отсекает сам, годы — нет
	if t.Year() < 1900 || t.Year() > time.Now().Year() {
		return time.Time{}, common.ErrBadDate
	}
	return t, nil
}

// digitRoot сворачивает неотрицательное число до одной цифры 1..9.
func digitRoot(n int) int {
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

// LifePathNumber возвращает число судьбы даты рождения:
// свёртку суммы всех цифр дня, месяца и года до 1..9.
func LifePathNumber(t time.Time) int {
	sum := digitRoot(t.Day()) + digitRoot(int(t.Month())) + digitRoot(t.Year())
	return digitRoot(sum)
}

// NumberMeaning возвращает трактовку числа судьбы.
func NumberMeaning(n int) string {
	if m, ok := numberMeanings[n]; ok {
		return m
	}
	return "число вне канона"
}

// CompatibilityScore оценивает совместимость двух чисел судьбы по шкале
// 0..100: совпадение — максимум, каждая ступень расхождения (по кольцу
// 1..9, так что 1 и 9 — соседи) отнимает 12 очков.
func CompatibilityScore(a, b int) int {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	// Кольцевое расстояние: 1 и 9 отличаются на 1, а не на 8
	if ring := 9 - diff; ring < diff {
		diff = ring
	}
	return 100 - diff*12
}

// CompatibilityVerdict возвращает словесный вердикт для оценки 0..100.
func CompatibilityVerdict(score int) string {
	switch {
	case score >= 90:
		return "звёзды сплелись: редкое созвучие душ"
	case score >= 70:
		return "крепкий союз: вы дополняете друг друга"
	case score >= 50:
		return "рабочий вариант: потребуются усилия с обеих сторон"
	default:
		return "непростой путь: слишком разные дороги"
	}
}
