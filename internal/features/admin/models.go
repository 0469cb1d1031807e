// Package admin реализует админ-панель с парольной аутентификацией.
// models.go описывает структуры сессий и попыток входа.
package admin

import "time"

// Session — активная сессия администратора.
type Session struct {
	ID              int64     `db:"id"`
	UserID          int64     `db:"user_id"`
	SessionToken    string    `db:"session_token"`
	AuthenticatedAt time.Time `db:"authenticated_at"`
	ExpiresAt       time.Time `db:"expires_at"`
	LastActivity    time.Time `db:"last_activity"`
	IsActive        bool      `db:"is_active"`
}

// Expired сообщает, можно ли ещё пользоваться сессией.
func (s *Session) Expired(now time.Time) bool {
	return !s.IsActive || !now.Before(s.ExpiresAt)
}

// LoginAttempt — попытка входа (для защиты от brute-force).
type LoginAttempt struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	AttemptTime time.Time `db:"attempt_time"`
	Success     bool      `db:"success"`
}

// OverviewStats — сводка по кругу для админ-панели.
type OverviewStats struct {
	Members      int64 // Всего участников
	ProMembers   int64 // Из них на Pro
	OrbsInPlay   int64 // Сумма текущих орбов у всех
	SpinsToday   int64 // Вращений колеса за сегодня (UTC)
	RitualsToday int64 // Записей в журнале ритуалов за сегодня (UTC)
}

// State — состояние диалога с админом (конечный автомат).
// Панель работает по шагам: выбор действия → ввод аргументов.
type State struct {
	State     string    // Текущее состояние ("", "awaiting_password", ...)
	ExpiresAt time.Time // Когда состояние истекает (5 минут)
}

// Возможные состояния админ-диалога
const (
	StateNone             = ""                  // Нет активного состояния
	StateAwaitingPassword = "awaiting_password" // Ждём пароль
	StateGrantOrbs        = "grant_orbs"        // Ждём "@username N"
	StateSetPro           = "set_pro"           // Ждём "@username" для включения Pro
	StateUnsetPro         = "unset_pro"         // Ждём "@username" для выключения Pro
	StateWheelConfig      = "wheel_config"      // Ждём новые параметры колеса
)
