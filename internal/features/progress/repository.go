// Package progress — repository.go выполняет операции с таблицей progress.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицей progress.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий развития.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create создаёт начальную запись развития для нового пользователя.
func (r *Repository) Create(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO progress (user_id, xp, level, current_streak, longest_streak,
		                      ritual_done_today, streak_freezes)
		VALUES ($1, 0, 1, 0, 0, FALSE, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("ошибка создания записи развития: %w", err)
	}
	return nil
}

// GetByUserID возвращает запись развития пользователя.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Progress, error) {
	query := `
		SELECT id, user_id, xp, level, current_streak, longest_streak,
		       ritual_done_today, last_ritual_at, streak_freezes, created_at, updated_at
		FROM progress
		WHERE user_id = $1
	`
	var p Progress
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.XP, &p.Level, &p.CurrentStreak, &p.LongestStreak,
		&p.RitualDoneToday, &p.LastRitualAt, &p.StreakFreezes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("запись развития не найдена (user_id=%d): %w", userID, err)
	}
	return &p, nil
}

// AddXP увеличивает опыт и записывает пересчитанный уровень.
// Возвращает обновлённую запись.
func (r *Repository) AddXP(ctx context.Context, userID int64, amount int64, newLevel int) (*Progress, error) {
	query := `
		UPDATE progress
		SET xp = xp + $2, level = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, xp, level, current_streak, longest_streak,
		          ritual_done_today, last_ritual_at, streak_freezes, created_at, updated_at
	`
	var p Progress
	err := r.db.QueryRow(ctx, query, userID, amount, newLevel).Scan(
		&p.ID, &p.UserID, &p.XP, &p.Level, &p.CurrentStreak, &p.LongestStreak,
		&p.RitualDoneToday, &p.LastRitualAt, &p.StreakFreezes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка начисления опыта: %w", err)
	}
	return &p, nil
}

// MarkRitualDone отмечает первый ритуал дня и продлевает стрик.
func (r *Repository) MarkRitualDone(ctx context.Context, userID int64, newStreak, longestStreak int, at time.Time) error {
	query := `
		UPDATE progress
		SET ritual_done_today = TRUE,
		    current_streak = $2,
		    longest_streak = $3,
		    last_ritual_at = $4,
		    updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, newStreak, longestStreak, at)
	if err != nil {
		return fmt.Errorf("ошибка отметки ритуала: %w", err)
	}
	return nil
}

// TouchRitual обновляет только время последнего ритуала (не первый за день).
func (r *Repository) TouchRitual(ctx context.Context, userID int64, at time.Time) error {
	query := `UPDATE progress SET last_ritual_at = $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, at)
	return err
}

// AddFreezes увеличивает счётчик заморозок (награда колеса).
func (r *Repository) AddFreezes(ctx context.Context, userID int64, n int) error {
	query := `UPDATE progress SET streak_freezes = streak_freezes + $2, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, n)
	if err != nil {
		return fmt.Errorf("ошибка начисления заморозок: %w", err)
	}
	return nil
}

// ConsumeFreeze списывает одну заморозку, если она есть.
// Возвращает true, если заморозка была потрачена.
func (r *Repository) ConsumeFreeze(ctx context.Context, userID int64) (bool, error) {
	query := `
		UPDATE progress
		SET streak_freezes = streak_freezes - 1, updated_at = NOW()
		WHERE user_id = $1 AND streak_freezes > 0
	`
	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка списания заморозки: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// BreakStreak обнуляет стрик пользователя (день пропущен, заморозок нет).
func (r *Repository) BreakStreak(ctx context.Context, userID int64) error {
	query := `UPDATE progress SET current_streak = 0, updated_at = NOW() WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

// GetAll возвращает все записи развития. Используется ежедневным расчётом.
func (r *Repository) GetAll(ctx context.Context) ([]*Progress, error) {
	query := `
		SELECT id, user_id, xp, level, current_streak, longest_streak,
		       ritual_done_today, last_ritual_at, streak_freezes, created_at, updated_at
		FROM progress
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения записей развития: %w", err)
	}
	defer rows.Close()

	var all []*Progress
	for rows.Next() {
		var p Progress
		err := rows.Scan(
			&p.ID, &p.UserID, &p.XP, &p.Level, &p.CurrentStreak, &p.LongestStreak,
			&p.RitualDoneToday, &p.LastRitualAt, &p.StreakFreezes, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования: %w", err)
		}
		all = append(all, &p)
	}
	return all, nil
}

// ResetDailyFlags сбрасывает дневные флаги для всех пользователей.
// Вызывается кроном в 00:00 UTC после расчёта стриков.
func (r *Repository) ResetDailyFlags(ctx context.Context) error {
	query := `UPDATE progress SET ritual_done_today = FALSE, updated_at = NOW()`
	_, err := r.db.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("ошибка сброса дневных флагов: %w", err)
	}
	return nil
}
