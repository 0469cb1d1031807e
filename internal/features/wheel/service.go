// Package wheel — service.go координирует вращение от проверки лимита
// до применения награды и записи в журнал.
//
// Награды применяются через внедрённые интерфейсы (орбы, опыт, инвентарь),
// чтобы у колеса не было жёсткой зависимости от вызывающих его модулей.
// Применение награды и учёт вращения — отдельные коммиты: если после
// начисления награды учёт упадёт, расхождение в пользу пользователя
// (вращение не засчитано), никогда наоборот.
package wheel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
	"arcanum.ru/mystic-bot/internal/features/orbs"
	"arcanum.ru/mystic-bot/internal/features/progress"
)

// ProChecker отдаёт Pro-статус пользователя.
type ProChecker interface {
	IsPro(ctx context.Context, userID int64) bool
}

// OrbGranter начисляет орбы (реализуется сервисом орбов).
type OrbGranter interface {
	Grant(ctx context.Context, userID int64, n int) (*orbs.Record, error)
}

// ExperienceLedger начисляет опыт (реализуется сервисом развития).
type ExperienceLedger interface {
	AddExperience(ctx context.Context, userID int64, amount int, source string) (*progress.Progress, bool, error)
}

// InventoryStore пополняет инвентарь заморозок (реализуется сервисом развития).
type InventoryStore interface {
	AddStreakFreeze(ctx context.Context, userID int64, n int) error
}

// RitualLogger пишет запись о вращении в журнал ритуалов.
type RitualLogger interface {
	AppendWheel(ctx context.Context, userID int64, spinID, mode, segmentID string, kind string, value int) error
}

// Service управляет колесом наград.
type Service struct {
	repo      *Repository
	profiles  ProChecker
	orbs      OrbGranter
	xp        ExperienceLedger
	inventory InventoryStore
	journal   RitualLogger
	defaults  Config // Дефолты на случай недоступности features_config
}

// NewService создаёт сервис колеса.
func NewService(
	repo *Repository,
	profiles ProChecker,
	orbGranter OrbGranter,
	xp ExperienceLedger,
	inventory InventoryStore,
	journal RitualLogger,
	defaults Config,
) *Service {
	return &Service{
		repo:      repo,
		profiles:  profiles,
		orbs:      orbGranter,
		xp:        xp,
		inventory: inventory,
		journal:   journal,
		defaults:  defaults,
	}
}

// GetConfig возвращает действующую конфигурацию колеса.
// Если строка features_config отсутствует или не читается — дефолты:
// колесо должно работать, даже когда конфигурационное хранилище лежит.
func (s *Service) GetConfig(ctx context.Context) Config {
	cfg, err := s.repo.GetFeaturesConfig(ctx)
	if err != nil {
		log.WithError(err).Debug("features_config недоступен, используем дефолты")
		return s.defaults
	}
	if cfg.DailyMaxSpins <= 0 {
		// Кривая строка в БД не должна запереть колесо насовсем
		return s.defaults
	}
	return *cfg
}

// UpdateConfig сохраняет конфигурацию колеса (вызывается админкой).
func (s *Service) UpdateConfig(ctx context.Context, cfg Config) error {
	if cfg.DailyMaxSpins <= 0 {
		return common.ErrInvalidAmount
	}
	return s.repo.UpsertFeaturesConfig(ctx, cfg)
}

// getOrCreateLedger возвращает леджер на текущие UTC-сутки.
// Ленивый сброс: если записанная дата отстала — счётчик обнуляется
// прямо здесь, до любых проверок лимита. Фоновой задачи сброса нет.
func (s *Service) getOrCreateLedger(ctx context.Context, userID int64, now time.Time) (*Ledger, error) {
	today := common.UTCDateKey(now)

	ledger, err := s.repo.GetLedger(ctx, userID)
	if err != nil {
		// Первое обращение — создаём на сегодня
		if err := s.repo.CreateLedger(ctx, userID, today); err != nil {
			return nil, err
		}
		return s.repo.GetLedger(ctx, userID)
	}

	if rolloverNeeded(ledger.DateKey, now) {
		return s.repo.ResetLedger(ctx, userID, today)
	}
	return ledger, nil
}

// SpinsRemaining возвращает сводку по вращениям на сегодня.
// FreeLimit зависит от тарифа, но право на вращение определяется
// только Remaining против дневного предела.
func (s *Service) SpinsRemaining(ctx context.Context, userID int64) (*Remaining, error) {
	cfg := s.GetConfig(ctx)

	ledger, err := s.getOrCreateLedger(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	return &Remaining{
		Used:      ledger.SpinsToday,
		FreeLimit: freeLimitFor(cfg, s.profiles.IsPro(ctx, userID)),
		Max:       cfg.DailyMaxSpins,
		Remaining: remainingSpins(ledger.SpinsToday, cfg.DailyMaxSpins),
	}, nil
}

// CanSpin возвращает true, если сегодня осталось хотя бы одно вращение.
func (s *Service) CanSpin(ctx context.Context, userID int64) (bool, error) {
	rem, err := s.SpinsRemaining(ctx, userID)
	if err != nil {
		return false, err
	}
	return rem.Remaining > 0, nil
}

// Spin выполняет одно вращение колеса.
//
// Порядок шагов:
//  1. проверка лимита (при отказе ничего не меняется);
//  2. взвешенный выбор сегмента;
//  3. применение награды через внедрённый сервис;
//  4. учёт вращения в леджере;
//  5. запись в журнал ритуалов с UUID попытки;
//  6. пересчёт остатка из БД (не в памяти).
func (s *Service) Spin(ctx context.Context, userID int64, mode string) (*SpinResult, error) {
	cfg := s.GetConfig(ctx)

	if mode == ModeVision && !cfg.AllowVisionSpins {
		return nil, common.ErrVisionSpinsOff
	}

	rem, err := s.SpinsRemaining(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rem.Remaining <= 0 {
		return nil, common.ErrNoSpins
	}

	idx, seg := pickSegment(Segments, randomFloat())
	spinID := uuid.NewString()

	summary, err := s.applyReward(ctx, userID, seg)
	if err != nil {
		return nil, fmt.Errorf("ошибка применения награды: %w", err)
	}

	now := time.Now()
	if _, err := s.repo.IncrementSpins(ctx, userID, now); err != nil {
		// Награда уже выдана, вращение не засчитано — расхождение
		// в пользу пользователя; UUID в логе позволит разобраться
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"spin_id": spinID,
		}).Error("Награда выдана, но вращение не засчитано")
		return nil, err
	}

	if err := s.journal.AppendWheel(ctx, userID, spinID, mode, seg.ID, string(seg.Kind), seg.Value); err != nil {
		// Журнал вторичен: вращение состоялось, запись потеряна
		log.WithError(err).WithField("spin_id", spinID).Error("Ошибка записи вращения в журнал")
	}

	after, err := s.SpinsRemaining(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"mode":    mode,
		"segment": seg.ID,
		"spin_id": spinID,
	}).Info("Колесо вращалось")

	return &SpinResult{
		Segment:        seg,
		SegmentIndex:   idx,
		Summary:        summary,
		SpinID:         spinID,
		RemainingAfter: after.Remaining,
	}, nil
}

// applyReward применяет эффект выпавшего сегмента.
func (s *Service) applyReward(ctx context.Context, userID int64, seg Segment) (string, error) {
	switch seg.Kind {
	case KindOrb:
		if _, err := s.orbs.Grant(ctx, userID, seg.Value); err != nil {
			return "", err
		}
		return common.FormatOrbsDelta(int64(seg.Value)), nil

	case KindXP:
		if _, _, err := s.xp.AddExperience(ctx, userID, seg.Value, progress.SourceWheel); err != nil {
			return "", err
		}
		return fmt.Sprintf("+%d %s опыта", seg.Value, common.PluralizeXP(int64(seg.Value))), nil

	case KindStreakFreeze:
		if err := s.inventory.AddStreakFreeze(ctx, userID, seg.Value); err != nil {
			return "", err
		}
		return fmt.Sprintf("+%d 🧊", seg.Value), nil

	default:
		return "", fmt.Errorf("неизвестный тип сегмента: %s", seg.Kind)
	}
}
