// Package visions — repository.go выполняет операции с таблицей visions.
package visions

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицей visions.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий видений.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record фиксирует просмотренное видение.
func (r *Repository) Record(ctx context.Context, userID int64, mode string) error {
	query := `INSERT INTO visions (user_id, mode) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, query, userID, mode); err != nil {
		return fmt.Errorf("ошибка записи видения: %w", err)
	}
	return nil
}

// CountSince возвращает число видений пользователя начиная с момента since.
// Для дневного лимита since — начало текущих UTC-суток.
func (r *Repository) CountSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM visions WHERE user_id = $1 AND created_at >= $2`
	var n int
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта видений: %w", err)
	}
	return n, nil
}
