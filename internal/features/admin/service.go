// Package admin — service.go содержит логику аутентификации, управления
// сессиями и state-машину для пошаговых админ-действий.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"

	"arcanum.ru/mystic-bot/internal/common"
	"arcanum.ru/mystic-bot/internal/config"
	"arcanum.ru/mystic-bot/internal/features/orbs"
	"arcanum.ru/mystic-bot/internal/features/profile"
	"arcanum.ru/mystic-bot/internal/features/wheel"
)

// Лимиты защиты от brute-force.
const (
	maxFailedAttempts = 3
	attemptsWindow    = 1 * time.Hour
	sessionTTL        = 24 * time.Hour
	stateTTL          = 5 * time.Minute
)

// Service управляет админ-панелью.
type Service struct {
	repo     *Repository
	profiles *profile.Service
	orbs     *orbs.Service
	wheel    *wheel.Service
	cfg      *config.Config
	states   map[int64]*State // Состояния диалогов (in-memory)
	statesMu sync.RWMutex
}

// NewService создаёт сервис админ-панели.
func NewService(repo *Repository, profiles *profile.Service, orbService *orbs.Service, wheelService *wheel.Service, cfg *config.Config) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		orbs:     orbService,
		wheel:    wheelService,
		cfg:      cfg,
		states:   make(map[int64]*State),
	}
}

// IsAdmin проверяет, входит ли пользователь в список администраторов.
func (s *Service) IsAdmin(userID int64) bool {
	for _, id := range s.cfg.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VerifyPassword проверяет пароль администратора (Argon2id).
// Защита от brute-force: 3 неудачные попытки → блокировка на час.
func (s *Service) VerifyPassword(ctx context.Context, userID int64, password string) error {
	attempts, err := s.repo.CountFailedAttempts(ctx, userID, attemptsWindow)
	if err != nil {
		return err
	}
	if attempts >= maxFailedAttempts {
		return common.ErrTooManyAttempts
	}

	match := verifyArgon2id(password, s.cfg.AdminPasswordHash)

	if err := s.repo.LogAttempt(ctx, userID, match); err != nil {
		log.WithError(err).Error("Ошибка записи попытки входа")
	}

	if !match {
		return common.ErrWrongPassword
	}

	session := &Session{
		UserID:       userID,
		SessionToken: generateSecureToken(),
		ExpiresAt:    time.Now().Add(sessionTTL),
	}
	return s.repo.CreateSession(ctx, session)
}

// CheckSession возвращает ErrSessionExpired, если активной сессии нет
// или она истекла. SQL уже фильтрует по expires_at, но срок проверяется
// и здесь: сессия могла истечь между чтением и использованием.
func (s *Service) CheckSession(ctx context.Context, userID int64) error {
	session, err := s.repo.GetActiveSession(ctx, userID)
	if err != nil {
		return common.ErrSessionExpired
	}
	if session.Expired(time.Now()) {
		return common.ErrSessionExpired
	}
	return nil
}

// Logout деактивирует сессии администратора.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	s.ClearState(userID)
	return s.repo.DeactivateSession(ctx, userID)
}

// GetState возвращает текущее состояние диалога.
func (s *Service) GetState(userID int64) *State {
	s.statesMu.RLock()
	defer s.statesMu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return nil
	}
	if time.Now().After(state.ExpiresAt) {
		return nil
	}
	return state
}

// SetState устанавливает состояние диалога с 5-минутным таймаутом.
func (s *Service) SetState(userID int64, stateName string) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()

	s.states[userID] = &State{
		State:     stateName,
		ExpiresAt: time.Now().Add(stateTTL),
	}
}

// ClearState сбрасывает состояние диалога.
func (s *Service) ClearState(userID int64) {
	s.statesMu.Lock()
	defer s.statesMu.Unlock()
	delete(s.states, userID)
}

// --- Админ-действия ---

// GrantOrbs начисляет орбы участнику по @username.
func (s *Service) GrantOrbs(ctx context.Context, username string, n int) (*profile.Profile, error) {
	if n <= 0 {
		return nil, common.ErrInvalidAmount
	}

	prof, err := s.profiles.GetByUsername(ctx, username)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	if _, err := s.orbs.Grant(ctx, prof.UserID, n); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"target": prof.UserID,
		"amount": n,
	}).Info("Админ начислил орбы")
	return prof, nil
}

// SetPro включает или выключает Pro-тариф участнику по @username.
func (s *Service) SetPro(ctx context.Context, username string, pro bool) (*profile.Profile, error) {
	prof, err := s.profiles.GetByUsername(ctx, username)
	if err != nil {
		return nil, common.ErrUserNotFound
	}

	if err := s.profiles.SetPro(ctx, prof.UserID, pro); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"target": prof.UserID,
		"pro":    pro,
	}).Info("Админ сменил тариф")
	return prof, nil
}

// Overview возвращает сводную статистику по кругу за сегодня (UTC).
func (s *Service) Overview(ctx context.Context) (*OverviewStats, error) {
	now := time.Now()
	return s.repo.GetOverviewStats(ctx, common.UTCDateKey(now), common.StartOfDayUTC(now))
}

// WheelConfig возвращает действующую конфигурацию колеса.
func (s *Service) WheelConfig(ctx context.Context) wheel.Config {
	return s.wheel.GetConfig(ctx)
}

// UpdateWheelConfig сохраняет новую конфигурацию колеса.
func (s *Service) UpdateWheelConfig(ctx context.Context, cfg wheel.Config) error {
	if err := s.wheel.UpdateConfig(ctx, cfg); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"free":    cfg.FreeSpinsFree,
		"pro":     cfg.FreeSpinsPro,
		"max":     cfg.DailyMaxSpins,
		"visions": cfg.AllowVisionSpins,
	}).Info("Админ обновил конфигурацию колеса")
	return nil
}

// --- Криптографические утилиты ---

// verifyArgon2id проверяет пароль по хешу Argon2id.
// Формат хеша: $argon2id$v=19$m=65536,t=3,p=2$<salt_base64>$<hash_base64>
func verifyArgon2id(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		log.Error("Некорректный формат хеша Argon2id")
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		log.WithError(err).Error("Ошибка парсинга параметров Argon2id")
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования соли")
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		log.WithError(err).Error("Ошибка декодирования хеша")
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Сравнение в постоянном времени (защита от timing attack)
	return subtle.ConstantTimeCompare(computedHash, expectedHash) == 1
}

// generateSecureToken генерирует криптографически безопасный токен сессии.
func generateSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return base64.URLEncoding.EncodeToString(b)
}
