// Package wheel — ledger.go содержит чистые решения по дневному леджеру:
// нужен ли ленивый сброс и сколько вращений осталось. Вынесены из
// сервиса, чтобы инварианты проверялись без базы.
package wheel

import (
	"time"

	"arcanum.ru/mystic-bot/internal/common"
)

// rolloverNeeded сообщает, отстал ли леджер от текущих UTC-суток.
// Сутки считаются строго по UTC, локальная полночь пользователя роли
// не играет. Любое несовпадение ключа (включая будущую дату после
// сдвига часов) требует сброса на сегодня.
func rolloverNeeded(dateKey string, now time.Time) bool {
	return dateKey != common.UTCDateKey(now)
}

// remainingSpins возвращает max(0, dailyMax - used).
// used выше предела возможен, если админ ужесточил конфиг среди дня —
// остаток при этом нулевой, не отрицательный.
func remainingSpins(used, dailyMax int) int {
	r := dailyMax - used
	if r < 0 {
		return 0
	}
	return r
}

// freeLimitFor возвращает информационный бесплатный лимит тарифа.
// На право вращения он не влияет: право определяется только
// remainingSpins против дневного предела.
func freeLimitFor(cfg Config, pro bool) int {
	if pro {
		return cfg.FreeSpinsPro
	}
	return cfg.FreeSpinsFree
}
