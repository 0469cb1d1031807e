// Package profile — service.go содержит бизнес-логику управления анкетами.
// Сервис координирует регистрацию новых пользователей, проверку членства
// и чтение Pro-статуса.
package profile

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Service управляет анкетами пользователей.
type Service struct {
	repo *Repository // Репозиторий для работы с таблицей profiles
}

// NewService создаёт новый сервис анкет.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// HandleNewMember обрабатывает вступление нового пользователя в круг.
// Если пользователь уже есть в базе (перезашёл) — обновляет его данные.
// Если пользователь новый — создаёт запись.
func (s *Service) HandleNewMember(ctx context.Context, userID int64, username, firstName, lastName string) error {
	// Проверяем, есть ли уже в базе
	existing, _ := s.repo.GetByUserID(ctx, userID)
	if existing != nil {
		// Пользователь уже зарегистрирован — обновляем данные
		log.WithField("user_id", userID).Info("Пользователь вернулся, обновляем анкету")
		return s.repo.UpdateInfo(ctx, userID, UpdateInfo{
			Username:  username,
			FirstName: firstName,
			LastName:  lastName,
		})
	}

	p := &Profile{
		UserID:    userID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("ошибка регистрации пользователя: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"username": username,
	}).Info("Новый пользователь зарегистрирован")

	return nil
}

// EnsureMember гарантирует, что пользователь есть в базе.
// Если нет — создаёт запись. Используется при первом сообщении.
func (s *Service) EnsureMember(ctx context.Context, userID int64, username, firstName, lastName string) error {
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.HandleNewMember(ctx, userID, username, firstName, lastName)
}

// IsMember проверяет, известен ли пользователь боту.
// Используется для валидации доступа к DM.
func (s *Service) IsMember(ctx context.Context, userID int64) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// GetByUserID возвращает анкету по Telegram user ID.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetByUsername возвращает анкету по @username (без @).
func (s *Service) GetByUsername(ctx context.Context, username string) (*Profile, error) {
	return s.repo.GetByUsername(ctx, username)
}

// IsPro возвращает, активна ли Pro-подписка пользователя.
// Любая ошибка чтения трактуется как «не Pro» — безопасный дефолт:
// лучше показать пользователю свободный тариф, чем молча подарить Pro.
func (s *Service) IsPro(ctx context.Context, userID int64) bool {
	pro, err := s.repo.GetProEntitlement(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("IsPro: анкета не прочитана, считаем Free")
		return false
	}
	return pro
}

// SetPro включает/выключает Pro-подписку (используется админкой).
func (s *Service) SetPro(ctx context.Context, userID int64, pro bool) error {
	return s.repo.SetProEntitlement(ctx, userID, pro)
}
