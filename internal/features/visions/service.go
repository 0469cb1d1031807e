// Package visions — service.go содержит бизнес-логику видений.
//
// Видение сначала проверяется против дневного лимита, затем выдаётся
// награда, и только после успешной выдачи видение записывается в счёт
// лимита: сорвавшаяся награда не сжигает попытку.
package visions

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
	"arcanum.ru/mystic-bot/internal/features/orbs"
	"arcanum.ru/mystic-bot/internal/features/wheel"
)

// Service управляет видениями.
type Service struct {
	repo       *Repository
	orbs       *orbs.Service
	wheel      *wheel.Service
	dailyLimit int
}

// NewService создаёт сервис видений.
func NewService(repo *Repository, orbService *orbs.Service, wheelService *wheel.Service, dailyLimit int) *Service {
	return &Service{repo: repo, orbs: orbService, wheel: wheelService, dailyLimit: dailyLimit}
}

// Result — итог одного видения.
type Result struct {
	Mode      string            // orb | wheel
	Orbs      *orbs.Record      // Заполнено для режима orb
	Spin      *wheel.SpinResult // Заполнено для режима wheel
	UsedToday int               // Видений использовано сегодня (с учётом этого)
	Limit     int               // Дневной лимит
}

// UsedToday возвращает число видений за текущие UTC-сутки.
func (s *Service) UsedToday(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountSince(ctx, userID, common.StartOfDayUTC(time.Now()))
}

// Watch засчитывает одно видение и выдаёт награду выбранного режима.
// Превышение дневного лимита → common.ErrNoVisions.
func (s *Service) Watch(ctx context.Context, userID int64, mode string) (*Result, error) {
	used, err := s.UsedToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	if used >= s.dailyLimit {
		return nil, common.ErrNoVisions
	}

	result := &Result{Mode: mode, Limit: s.dailyLimit}

	switch mode {
	case ModeOrb:
		rec, err := s.orbs.GrantOne(ctx, userID)
		if err != nil {
			return nil, err
		}
		result.Orbs = rec

	case ModeWheel:
		spin, err := s.wheel.Spin(ctx, userID, wheel.ModeVision)
		if err != nil {
			return nil, err
		}
		result.Spin = spin

	default:
		return nil, common.ErrUnknownVisionMode
	}

	if err := s.repo.Record(ctx, userID, mode); err != nil {
		// Награда выдана, попытка не списана — расхождение в пользу
		// пользователя, как и везде
		log.WithError(err).WithField("user_id", userID).Error("Видение не записано в счёт лимита")
	}

	result.UsedToday = used + 1

	log.WithFields(log.Fields{
		"user_id": userID,
		"mode":    mode,
		"used":    result.UsedToday,
	}).Info("Видение засчитано")

	return result, nil
}
