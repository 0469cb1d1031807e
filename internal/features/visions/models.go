// Package visions реализует «видения» — вознаграждаемые действия
// с дневным лимитом, дающие орб или бонусное вращение колеса.
package visions

import "time"

// Режимы награды за видение.
const (
	ModeOrb   = "orb"   // Награда — один орб
	ModeWheel = "wheel" // Награда — бонусное вращение колеса
)

// Vision — одно просмотренное видение.
type Vision struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Mode      string    `db:"mode"`
	CreatedAt time.Time `db:"created_at"`
}
