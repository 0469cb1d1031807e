// Package progress — levels.go содержит арифметику уровней.
// Уровень — чистая функция от накопленного опыта, пересчитывается
// при каждом начислении.
package progress

// XPForLevel возвращает суммарный опыт, необходимый для достижения уровня.
//
// Стоимость каждого следующего уровня растёт линейно: переход
// с уровня n на n+1 стоит n*100 опыта.
//
//	Уровень 1: 0 (стартовый)
//	Уровень 2: 100
//	Уровень 3: 300
//	Уровень 4: 600
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level - 1)
	return n * (n + 1) / 2 * 100
}

// LevelForXP возвращает уровень для накопленного опыта.
// Минимальный уровень — 1.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for XPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// XPToNextLevel возвращает, сколько опыта осталось до следующего уровня.
func XPToNextLevel(xp int64) int64 {
	level := LevelForXP(xp)
	return XPForLevel(level+1) - xp
}
