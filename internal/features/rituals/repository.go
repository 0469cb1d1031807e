// Package rituals — repository.go выполняет операции с таблицей ritual_log.
// Таблица append-only: только INSERT и SELECT.
package rituals

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с журналом ритуалов.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий журнала.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал.
func (r *Repository) Append(ctx context.Context, e *LogEntry) error {
	query := `
		INSERT INTO ritual_log (user_id, ritual_type, mode, detail, cost_orbs, xp_awarded, spin_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		e.UserID, e.RitualType, e.Mode, e.Detail, e.CostOrbs, e.XPAwarded, e.SpinID,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи в журнал ритуалов: %w", err)
	}
	return nil
}

// GetRecent возвращает последние записи журнала пользователя, новые сверху.
func (r *Repository) GetRecent(ctx context.Context, userID int64, limit int) ([]LogEntry, error) {
	query := `
		SELECT id, user_id, ritual_type, mode, detail, cost_orbs, xp_awarded, spin_id, created_at
		FROM ritual_log
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.RitualType, &e.Mode, &e.Detail,
			&e.CostOrbs, &e.XPAwarded, &e.SpinID, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка разбора записи журнала: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
