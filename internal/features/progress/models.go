// Package progress управляет развитием пользователя: опыт, уровни,
// ежедневный стрик ритуалов и инвентарь заморозок.
// models.go описывает структуру данных таблицы progress.
package progress

import "time"

// Progress представляет запись развития пользователя.
// Стрик растёт каждый день, когда пользователь выполняет хотя бы один
// ритуал; пропущенный день либо гасится заморозкой, либо обнуляет стрик.
type Progress struct {
	ID              int64      `db:"id"`
	UserID          int64      `db:"user_id"`
	XP              int64      `db:"xp"`                // Накопленный опыт
	Level           int        `db:"level"`             // Текущий уровень (производное от XP)
	CurrentStreak   int        `db:"current_streak"`    // Текущая серия (дней подряд)
	LongestStreak   int        `db:"longest_streak"`    // Личный рекорд
	RitualDoneToday bool       `db:"ritual_done_today"` // Был ли ритуал сегодня?
	LastRitualAt    *time.Time `db:"last_ritual_at"`    // Время последнего ритуала
	StreakFreezes   int        `db:"streak_freezes"`    // Заморозок в инвентаре
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// Источники начисления опыта — пишутся в журнал ритуалов и в логи.
const (
	SourceWheel         = "wheel"         // Награда колеса
	SourceRune          = "rune"          // Ритуал руны
	SourceNumerology    = "numerology"    // Нумерологический расчёт
	SourceCompatibility = "compatibility" // Проверка совместимости
)
