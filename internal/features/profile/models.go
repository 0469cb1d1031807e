// Package profile управляет анкетами пользователей: регистрацией,
// Pro-подпиской, флагами. models.go описывает структуры данных
// для работы с таблицей profiles.
package profile

import "time"

// Profile представляет анкету пользователя бота в базе данных.
// Каждый, кто вступил в CIRCLE_CHAT_ID или написал боту, автоматически
// создаётся в этой таблице.
type Profile struct {
	ID             int64     `db:"id"`              // Автоинкрементный ID записи в БД
	UserID         int64     `db:"user_id"`         // Telegram user ID (уникальный)
	Username       string    `db:"username"`        // @username (может быть пустым)
	FirstName      string    `db:"first_name"`      // Имя пользователя
	LastName       string    `db:"last_name"`       // Фамилия (может быть пустой)
	ProEntitlement bool      `db:"pro_entitlement"` // Активна ли Pro-подписка
	IsBanned       bool      `db:"is_banned"`       // Флаг бана
	JoinedAt       time.Time `db:"joined_at"`       // Когда вступил
	CreatedAt      time.Time `db:"created_at"`      // Когда запись создана в БД
	UpdatedAt      time.Time `db:"updated_at"`      // Последнее обновление записи
}

// UpdateInfo содержит данные для обновления информации о пользователе.
// Используется, когда пользователь возвращается и его имя/username могли измениться.
type UpdateInfo struct {
	Username  string // Новый @username
	FirstName string // Новое имя
	LastName  string // Новая фамилия
}

// DisplayName возвращает отображаемое имя пользователя.
// Если есть @username — возвращает его, иначе — имя + фамилию.
func (p *Profile) DisplayName() string {
	if p.Username != "" {
		return "@" + p.Username
	}
	name := p.FirstName
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}

// Tier возвращает название тарифа для отображения.
func (p *Profile) Tier() string {
	if p.ProEntitlement {
		return "Pro ✨"
	}
	return "Свободный"
}
