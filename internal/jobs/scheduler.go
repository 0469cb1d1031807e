// Package jobs управляет фоновыми задачами (cron).
// scheduler.go настраивает расписание: ежедневный расчёт стриков
// и вечерние напоминания. Дневные лимиты колеса и видений кроном
// не трогаются — они сбрасываются лениво при чтении.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/features/progress"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron            *cron.Cron
	progressService *progress.Service
	sendFunc        func(userID int64, text string)
}

// NewScheduler создаёт планировщик задач в UTC: все дневные границы
// системы (стрики, леджеры) считаются по UTC-суткам.
func NewScheduler(progressService *progress.Service, sendFunc func(userID int64, text string)) *Scheduler {
	c := cron.New(cron.WithLocation(time.UTC))

	return &Scheduler{
		cron:            c,
		progressService: progressService,
		sendFunc:        sendFunc,
	}
}

// Start запускает все фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	// Ежедневный расчёт стриков в 00:00 UTC
	s.cron.AddFunc("0 0 * * *", func() {
		log.Info("[CRON] Ежедневный расчёт стриков")
		if err := s.progressService.DailySettlement(ctx); err != nil {
			log.WithError(err).Error("[CRON] Ошибка расчёта стриков")
		}
	})

	// Напоминания о стрике в 20:00 UTC
	s.cron.AddFunc("0 20 * * *", func() {
		log.Debug("[CRON] Проверка напоминаний о стрике")
		if err := s.progressService.SendStreakReminders(ctx, s.sendFunc); err != nil {
			log.WithError(err).Error("[CRON] Ошибка напоминаний")
		}
	})

	s.cron.Start()
	log.Info("Планировщик задач запущен (UTC)")
}

// Stop останавливает планировщик.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}
