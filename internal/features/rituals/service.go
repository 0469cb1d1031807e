// Package rituals — service.go содержит бизнес-логику ритуалов.
//
// Каждый ритуал идёт по одной схеме: списать орбы (атомарно, через сервис
// орбов), выполнить гадание, начислить опыт, отметить ритуал дня для
// стрика и дописать журнал. Списание — единственный шаг, способный
// отказать пользователю; всё после него не откатывает орбы, а пишет
// ошибку в лог.
package rituals

import (
	"context"
	"fmt"
	mrand "math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/features/orbs"
	"arcanum.ru/mystic-bot/internal/features/progress"
)

// Service управляет ритуалами и журналом.
type Service struct {
	repo     *Repository
	orbs     *orbs.Service
	progress *progress.Service
	costs    Costs
}

// NewService создаёт сервис ритуалов.
func NewService(repo *Repository, orbService *orbs.Service, progressService *progress.Service, costs Costs) *Service {
	return &Service{repo: repo, orbs: orbService, progress: progressService, costs: costs}
}

// Costs возвращает действующие стоимости ритуалов.
func (s *Service) Costs() Costs {
	return s.costs
}

// DrawRune выполняет ритуал «руна дня»: равновероятная руна из таблицы.
func (s *Service) DrawRune(ctx context.Context, userID int64) (*RuneReading, error) {
	rec, err := s.orbs.Spend(ctx, userID, s.costs.RuneCost)
	if err != nil {
		return nil, err
	}

	rn := Runes[mrand.Intn(len(Runes))]

	s.settle(ctx, userID, s.costs.RuneXP, progress.SourceRune, &LogEntry{
		UserID:     userID,
		RitualType: TypeRune,
		Detail:     fmt.Sprintf("%s %s", rn.Symbol, rn.Name),
		CostOrbs:   s.costs.RuneCost,
		XPAwarded:  s.costs.RuneXP,
	})

	return &RuneReading{
		Rune:      rn,
		CostOrbs:  s.costs.RuneCost,
		XPAwarded: s.costs.RuneXP,
		OrbsLeft:  rec.Current,
	}, nil
}

// Numerology выполняет ритуал «число судьбы» для даты рождения ДД.ММ.ГГГГ.
// Дата разбирается до списания орбов: опечатка не должна стоить орба.
func (s *Service) Numerology(ctx context.Context, userID int64, dateStr string) (*NumerologyReading, error) {
	birth, err := ParseBirthDate(dateStr)
	if err != nil {
		return nil, err
	}

	rec, err := s.orbs.Spend(ctx, userID, s.costs.NumerologyCost)
	if err != nil {
		return nil, err
	}

	n := LifePathNumber(birth)

	s.settle(ctx, userID, s.costs.NumerologyXP, progress.SourceNumerology, &LogEntry{
		UserID:     userID,
		RitualType: TypeNumerology,
		Detail:     fmt.Sprintf("%s → %d", dateStr, n),
		CostOrbs:   s.costs.NumerologyCost,
		XPAwarded:  s.costs.NumerologyXP,
	})

	return &NumerologyReading{
		Number:    n,
		Meaning:   NumberMeaning(n),
		CostOrbs:  s.costs.NumerologyCost,
		XPAwarded: s.costs.NumerologyXP,
		OrbsLeft:  rec.Current,
	}, nil
}

// Compatibility выполняет ритуал «совместимость» для двух дат рождения.
func (s *Service) Compatibility(ctx context.Context, userID int64, dateA, dateB string) (*CompatibilityReading, error) {
	birthA, err := ParseBirthDate(dateA)
	if err != nil {
		return nil, err
	}
	birthB, err := ParseBirthDate(dateB)
	if err != nil {
		return nil, err
	}

	rec, err := s.orbs.Spend(ctx, userID, s.costs.CompatibilityCost)
	if err != nil {
		return nil, err
	}

	na, nb := LifePathNumber(birthA), LifePathNumber(birthB)
	score := CompatibilityScore(na, nb)

	s.settle(ctx, userID, s.costs.CompatibilityXP, progress.SourceCompatibility, &LogEntry{
		UserID:     userID,
		RitualType: TypeCompatibility,
		Detail:     fmt.Sprintf("%d + %d → %d%%", na, nb, score),
		CostOrbs:   s.costs.CompatibilityCost,
		XPAwarded:  s.costs.CompatibilityXP,
	})

	return &CompatibilityReading{
		NumberA:   na,
		NumberB:   nb,
		Score:     score,
		Verdict:   CompatibilityVerdict(score),
		CostOrbs:  s.costs.CompatibilityCost,
		XPAwarded: s.costs.CompatibilityXP,
		OrbsLeft:  rec.Current,
	}, nil
}

// Journal возвращает последние записи журнала пользователя.
func (s *Service) Journal(ctx context.Context, userID int64, limit int) ([]LogEntry, error) {
	return s.repo.GetRecent(ctx, userID, limit)
}

// AppendWheel пишет вращение колеса в журнал (вызывается модулем wheel).
func (s *Service) AppendWheel(ctx context.Context, userID int64, spinID, mode, segmentID string, kind string, value int) error {
	return s.repo.Append(ctx, &LogEntry{
		UserID:     userID,
		RitualType: TypeWheel,
		Mode:       mode,
		Detail:     fmt.Sprintf("%s: %s %d", segmentID, kind, value),
		SpinID:     &spinID,
	})
}

// settle выполняет пост-обработку ритуала: опыт, отметка дня, журнал.
// Орбы уже списаны, поэтому ошибки здесь не фатальны для ритуала.
func (s *Service) settle(ctx context.Context, userID int64, xp int, source string, entry *LogEntry) {
	if _, _, err := s.progress.AddExperience(ctx, userID, xp, source); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка начисления опыта за ритуал")
	}
	if err := s.progress.MarkRitualDone(ctx, userID, time.Now()); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка отметки ритуала дня")
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка записи ритуала в журнал")
	}
}
