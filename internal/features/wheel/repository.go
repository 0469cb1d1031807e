// Package wheel — repository.go выполняет операции с таблицами
// wheel_ledgers и features_config.
package wheel

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицами колеса.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий колеса.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetLedger возвращает дневной леджер пользователя.
func (r *Repository) GetLedger(ctx context.Context, userID int64) (*Ledger, error) {
	query := `
		SELECT id, user_id, date_key, spins_today, last_spin_at, created_at, updated_at
		FROM wheel_ledgers
		WHERE user_id = $1
	`
	var l Ledger
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&l.ID, &l.UserID, &l.DateKey, &l.SpinsToday, &l.LastSpinAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("леджер не найден (user_id=%d): %w", userID, err)
	}
	return &l, nil
}

// CreateLedger создаёт леджер с нулём вращений на указанную дату.
func (r *Repository) CreateLedger(ctx context.Context, userID int64, dateKey string) error {
	query := `
		INSERT INTO wheel_ledgers (user_id, date_key, spins_today)
		VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, dateKey)
	if err != nil {
		return fmt.Errorf("ошибка создания леджера: %w", err)
	}
	return nil
}

// ResetLedger переводит леджер на новую дату с нулём вращений.
// Вызывается при ленивом сбросе, когда date_key отстал от текущих суток.
func (r *Repository) ResetLedger(ctx context.Context, userID int64, dateKey string) (*Ledger, error) {
	query := `
		UPDATE wheel_ledgers
		SET date_key = $2, spins_today = 0, updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, date_key, spins_today, last_spin_at, created_at, updated_at
	`
	var l Ledger
	err := r.db.QueryRow(ctx, query, userID, dateKey).Scan(
		&l.ID, &l.UserID, &l.DateKey, &l.SpinsToday, &l.LastSpinAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка сброса леджера: %w", err)
	}
	return &l, nil
}

// IncrementSpins увеличивает счётчик вращений и время последнего вращения.
func (r *Repository) IncrementSpins(ctx context.Context, userID int64, at time.Time) (*Ledger, error) {
	query := `
		UPDATE wheel_ledgers
		SET spins_today = spins_today + 1, last_spin_at = $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, user_id, date_key, spins_today, last_spin_at, created_at, updated_at
	`
	var l Ledger
	err := r.db.QueryRow(ctx, query, userID, at).Scan(
		&l.ID, &l.UserID, &l.DateKey, &l.SpinsToday, &l.LastSpinAt, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка учёта вращения: %w", err)
	}
	return &l, nil
}

// GetFeaturesConfig читает глобальную конфигурацию колеса (строка id=1).
func (r *Repository) GetFeaturesConfig(ctx context.Context) (*Config, error) {
	query := `
		SELECT free_spins_free, free_spins_pro, allow_vision_spins, daily_max_spins
		FROM features_config
		WHERE id = 1
	`
	var c Config
	err := r.db.QueryRow(ctx, query).Scan(
		&c.FreeSpinsFree, &c.FreeSpinsPro, &c.AllowVisionSpins, &c.DailyMaxSpins,
	)
	if err != nil {
		return nil, fmt.Errorf("конфигурация колеса не прочитана: %w", err)
	}
	return &c, nil
}

// UpsertFeaturesConfig сохраняет конфигурацию колеса (используется админкой).
func (r *Repository) UpsertFeaturesConfig(ctx context.Context, c Config) error {
	query := `
		INSERT INTO features_config (id, free_spins_free, free_spins_pro, allow_vision_spins, daily_max_spins)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			free_spins_free = $1,
			free_spins_pro = $2,
			allow_vision_spins = $3,
			daily_max_spins = $4,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, c.FreeSpinsFree, c.FreeSpinsPro, c.AllowVisionSpins, c.DailyMaxSpins)
	if err != nil {
		return fmt.Errorf("ошибка сохранения конфигурации колеса: %w", err)
	}
	return nil
}
