// Package profile — repository.go выполняет все операции с таблицей profiles.
package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository предоставляет методы для работы с таблицей profiles.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository создаёт новый репозиторий анкет.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create создаёт запись анкеты.
func (r *Repository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, username, first_name, last_name, pro_entitlement, is_banned, joined_at)
		VALUES ($1, $2, $3, $4, FALSE, FALSE, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, p.UserID, p.Username, p.FirstName, p.LastName)
	if err != nil {
		return fmt.Errorf("ошибка создания анкеты: %w", err)
	}
	return nil
}

// GetByUserID возвращает анкету по Telegram user ID.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name,
		       pro_entitlement, is_banned, joined_at, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var p Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Username, &p.FirstName, &p.LastName,
		&p.ProEntitlement, &p.IsBanned, &p.JoinedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("анкета не найдена (user_id=%d): %w", userID, err)
	}
	return &p, nil
}

// GetByUsername возвращает анкету по @username (без @).
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Profile, error) {
	query := `
		SELECT id, user_id, username, first_name, last_name,
		       pro_entitlement, is_banned, joined_at, created_at, updated_at
		FROM profiles
		WHERE LOWER(username) = LOWER($1)
	`
	var p Profile
	err := r.db.QueryRow(ctx, query, username).Scan(
		&p.ID, &p.UserID, &p.Username, &p.FirstName, &p.LastName,
		&p.ProEntitlement, &p.IsBanned, &p.JoinedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("анкета не найдена (username=%s): %w", username, err)
	}
	return &p, nil
}

// Exists проверяет, есть ли анкета пользователя.
func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&exists)
	return exists, err
}

// UpdateInfo обновляет имя/username пользователя.
func (r *Repository) UpdateInfo(ctx context.Context, userID int64, info UpdateInfo) error {
	query := `
		UPDATE profiles
		SET username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, info.Username, info.FirstName, info.LastName)
	if err != nil {
		return fmt.Errorf("ошибка обновления анкеты: %w", err)
	}
	return nil
}

// GetProEntitlement возвращает флаг Pro-подписки.
func (r *Repository) GetProEntitlement(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT pro_entitlement FROM profiles WHERE user_id = $1`
	var pro bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&pro)
	if err != nil {
		return false, fmt.Errorf("ошибка чтения pro_entitlement: %w", err)
	}
	return pro, nil
}

// SetProEntitlement включает или выключает Pro-подписку.
func (r *Repository) SetProEntitlement(ctx context.Context, userID int64, pro bool) error {
	query := `UPDATE profiles SET pro_entitlement = $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, pro)
	if err != nil {
		return fmt.Errorf("ошибка обновления pro_entitlement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("анкета не найдена (user_id=%d)", userID)
	}
	return nil
}
