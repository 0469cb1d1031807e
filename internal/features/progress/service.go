// Package progress — service.go содержит бизнес-логику развития:
// начисление опыта, продление стрика и ежедневный расчёт с заморозками.
package progress

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
)

// Service управляет развитием пользователей.
type Service struct {
	repo *Repository
}

// NewService создаёт новый сервис развития.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Ensure гарантирует, что у пользователя есть запись развития.
func (s *Service) Ensure(ctx context.Context, userID int64) error {
	return s.repo.Create(ctx, userID)
}

// GetProgress возвращает запись развития, создавая её при необходимости.
func (s *Service) GetProgress(ctx context.Context, userID int64) (*Progress, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if err := s.repo.Create(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}

// AddExperience начисляет опыт с пометкой источника и пересчитывает уровень.
// Возвращает обновлённую запись и признак повышения уровня.
func (s *Service) AddExperience(ctx context.Context, userID int64, amount int, source string) (*Progress, bool, error) {
	if amount <= 0 {
		return nil, false, common.ErrInvalidAmount
	}

	before, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	newLevel := LevelForXP(before.XP + int64(amount))
	after, err := s.repo.AddXP(ctx, userID, int64(amount), newLevel)
	if err != nil {
		return nil, false, err
	}

	leveledUp := after.Level > before.Level
	log.WithFields(log.Fields{
		"user_id": userID,
		"amount":  amount,
		"source":  source,
		"level":   after.Level,
	}).Debug("Опыт начислен")

	return after, leveledUp, nil
}

// AddStreakFreeze добавляет n заморозок в инвентарь (награда колеса).
func (s *Service) AddStreakFreeze(ctx context.Context, userID int64, n int) error {
	if n <= 0 {
		return common.ErrInvalidAmount
	}
	if err := s.Ensure(ctx, userID); err != nil {
		return err
	}
	return s.repo.AddFreezes(ctx, userID, n)
}

// MarkRitualDone отмечает выполнение ритуала.
// Первый ритуал за день продлевает стрик; последующие только обновляют
// время последнего ритуала.
func (s *Service) MarkRitualDone(ctx context.Context, userID int64, now time.Time) error {
	p, err := s.GetProgress(ctx, userID)
	if err != nil {
		return err
	}

	if p.RitualDoneToday {
		return s.repo.TouchRitual(ctx, userID, now)
	}

	newStreak := p.CurrentStreak + 1
	longest := p.LongestStreak
	if newStreak > longest {
		longest = newStreak
	}

	if err := s.repo.MarkRitualDone(ctx, userID, newStreak, longest, now); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"streak":  newStreak,
	}).Debug("Стрик продлён")
	return nil
}

// SendStreakReminders рассылает напоминания тем, кто рискует стриком:
// стрик идёт, ритуал за сегодня не выполнен, заморозок нет.
func (s *Service) SendStreakReminders(ctx context.Context, sendFunc func(userID int64, text string)) error {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения записей развития: %w", err)
	}

	sent := 0
	for _, p := range all {
		if p.RitualDoneToday || p.CurrentStreak == 0 || p.StreakFreezes > 0 {
			continue
		}
		sendFunc(p.UserID, fmt.Sprintf(
			"🔥 Стрик %d %s под угрозой! Выполните любой ритуал до полуночи UTC: !руна, !число или !колесо",
			p.CurrentStreak, common.PluralizeDays(p.CurrentStreak),
		))
		sent++
	}

	log.WithField("sent", sent).Debug("Напоминания о стрике разосланы")
	return nil
}

// DailySettlement выполняет ежедневный расчёт стриков.
// Запускается кроном в 00:00 UTC:
//   - день с ритуалом → стрик уже продлён, ничего не делаем;
//   - день без ритуала, есть заморозка → заморозка сгорает, стрик цел;
//   - день без ритуала, заморозок нет → стрик обнуляется.
//
// В конце сбрасываются дневные флаги.
func (s *Service) DailySettlement(ctx context.Context) error {
	log.Info("Запуск ежедневного расчёта стриков")

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения записей развития: %w", err)
	}

	frozen := 0
	broken := 0
	for _, p := range all {
		if p.RitualDoneToday || p.CurrentStreak == 0 {
			continue
		}

		consumed, err := s.repo.ConsumeFreeze(ctx, p.UserID)
		if err != nil {
			log.WithError(err).WithField("user_id", p.UserID).Error("Ошибка списания заморозки")
			continue
		}
		if consumed {
			frozen++
			log.WithFields(log.Fields{
				"user_id": p.UserID,
				"streak":  p.CurrentStreak,
			}).Debug("Стрик спасён заморозкой")
			continue
		}

		if err := s.repo.BreakStreak(ctx, p.UserID); err != nil {
			log.WithError(err).WithField("user_id", p.UserID).Error("Ошибка сброса стрика")
			continue
		}
		broken++
	}

	if err := s.repo.ResetDailyFlags(ctx); err != nil {
		return fmt.Errorf("ошибка сброса дневных флагов: %w", err)
	}

	log.WithFields(log.Fields{
		"total":  len(all),
		"frozen": frozen,
		"broken": broken,
	}).Info("Ежедневный расчёт стриков завершён")

	return nil
}
