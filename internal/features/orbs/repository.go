// Package orbs — repository.go выполняет все операции с таблицей orbs.
// Списание и начисление выполняются в транзакциях БД с блокировкой строки
// (SELECT ... FOR UPDATE), чтобы два одновременных списания одного
// пользователя не прошли оба при запасе на одно.
package orbs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"arcanum.ru/mystic-bot/internal/common"
)

// Repository предоставляет методы для работы с таблицей orbs.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий орбов.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create создаёт начальную запись орбов для пользователя.
// Новый пользователь начинает с полным запасом свободного тарифа.
func (r *Repository) Create(ctx context.Context, userID int64, current, max, regenPerHour int) error {
	query := `
		INSERT INTO orbs (user_id, current, max, regen_per_hour, last_regen_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, userID, current, max, regenPerHour)
	if err != nil {
		return fmt.Errorf("ошибка создания записи орбов: %w", err)
	}
	return nil
}

// GetByUserID возвращает запись орбов пользователя.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Record, error) {
	query := `
		SELECT id, user_id, current, max, regen_per_hour, last_regen_at, created_at, updated_at
		FROM orbs
		WHERE user_id = $1
	`
	var rec Record
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Current, &rec.Max,
		&rec.RegenPerHour, &rec.LastRegenAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("запись орбов не найдена (user_id=%d): %w", userID, err)
	}
	return &rec, nil
}

// UpdateRegen сохраняет результат регенерации: новый запас и контрольную точку.
// Оба поля пишутся одним UPDATE — частичная регенерация невидима.
func (r *Repository) UpdateRegen(ctx context.Context, userID int64, current int, lastRegenAt time.Time) error {
	query := `
		UPDATE orbs
		SET current = $2, last_regen_at = $3, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, current, lastRegenAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения регенерации: %w", err)
	}
	return nil
}

// Spend списывает n орбов атомарно.
// Перечитывает запас под блокировкой строки; при нехватке возвращает
// common.ErrNoOrbs и НЕ пишет ничего.
func (r *Repository) Spend(ctx context.Context, userID int64, n int) (*Record, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем строку и перечитываем актуальный запас
	var rec Record
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, current, max, regen_per_hour, last_regen_at, created_at, updated_at
		FROM orbs WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Current, &rec.Max,
		&rec.RegenPerHour, &rec.LastRegenAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения запаса: %w", err)
	}

	if rec.Current < n {
		return nil, common.ErrNoOrbs
	}

	rec.Current -= n
	_, err = tx.Exec(ctx, `
		UPDATE orbs SET current = $2, updated_at = NOW() WHERE user_id = $1
	`, userID, rec.Current)
	if err != nil {
		return nil, fmt.Errorf("ошибка списания: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации списания: %w", err)
	}
	return &rec, nil
}

// Grant начисляет n орбов с отсечкой по пределу.
// Если запас уже полон — запись не трогаем (нет лишнего UPDATE).
func (r *Repository) Grant(ctx context.Context, userID int64, n int) (*Record, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	var rec Record
	err = tx.QueryRow(ctx, `
		SELECT id, user_id, current, max, regen_per_hour, last_regen_at, created_at, updated_at
		FROM orbs WHERE user_id = $1 FOR UPDATE
	`, userID).Scan(
		&rec.ID, &rec.UserID, &rec.Current, &rec.Max,
		&rec.RegenPerHour, &rec.LastRegenAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения запаса: %w", err)
	}

	if rec.Current >= rec.Max {
		// Уже полный запас — начислять некуда
		return &rec, tx.Commit(ctx)
	}

	rec.Current += n
	if rec.Current > rec.Max {
		rec.Current = rec.Max
	}

	_, err = tx.Exec(ctx, `
		UPDATE orbs SET current = $2, updated_at = NOW() WHERE user_id = $1
	`, userID, rec.Current)
	if err != nil {
		return nil, fmt.Errorf("ошибка начисления: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации начисления: %w", err)
	}
	return &rec, nil
}
