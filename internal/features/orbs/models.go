// Package orbs управляет энергией пользователя — орбами.
// Орбы тратятся на ритуалы и восстанавливаются со временем до предела.
// models.go описывает структуры данных и настройки экономики орбов.
package orbs

import (
	"time"

	"arcanum.ru/mystic-bot/internal/config"
)

// Record представляет запас орбов пользователя.
// Каждый пользователь имеет ровно одну запись в таблице orbs.
type Record struct {
	ID           int64     `db:"id"`             // ID записи
	UserID       int64     `db:"user_id"`        // Telegram user ID
	Current      int       `db:"current"`        // Текущий запас, 0 ≤ current ≤ max
	Max          int       `db:"max"`            // Предел запаса
	RegenPerHour int       `db:"regen_per_hour"` // Орбов за один целый интервал
	LastRegenAt  time.Time `db:"last_regen_at"`  // Контрольная точка регенерации
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Tunables — настройки экономики орбов.
// Передаются в сервис явным объектом из конфигурации,
// чтобы тесты могли подставлять свои значения.
type Tunables struct {
	FreeMax          int           // Предел запаса свободного тарифа
	FreeRegenPerHour int           // Регенерация свободного тарифа за интервал
	RegenInterval    time.Duration // Длительность одного интервала регенерации
	ProMax           int           // Предел запаса Pro (фактически безлимит)
	ProRegenPerHour  int           // Регенерация Pro за интервал
}

// TunablesFromConfig собирает настройки орбов из общей конфигурации.
func TunablesFromConfig(cfg *config.Config) Tunables {
	return Tunables{
		FreeMax:          cfg.OrbsFreeMax,
		FreeRegenPerHour: cfg.OrbsFreeRegenPerHour,
		RegenInterval:    cfg.OrbsRegenInterval,
		ProMax:           cfg.OrbsProMax,
		ProRegenPerHour:  cfg.OrbsProRegenPerHour,
	}
}

// ProRecord возвращает синтетическую запись для Pro-пользователя:
// запас всегда полон, регенерация не нужна. В базу такая запись не пишется.
func (t Tunables) ProRecord(userID int64, now time.Time) *Record {
	return &Record{
		UserID:       userID,
		Current:      t.ProMax,
		Max:          t.ProMax,
		RegenPerHour: t.ProRegenPerHour,
		LastRegenAt:  now,
	}
}

// RegenResult — результат проверки регенерации.
type RegenResult struct {
	Record         *Record // Актуальная запись (для Pro — синтетическая)
	Granted        int     // Сколько орбов начислено этим вызовом
	NextETASeconds int64   // Секунд до следующего начисления; 0 при полном запасе
}
