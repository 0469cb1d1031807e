// Package orbs — service.go содержит бизнес-логику экономики орбов:
// ленивая регенерация, проверки и атомарные списания/начисления.
package orbs

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
)

// ProChecker отдаёт Pro-статус пользователя.
// Реализуется сервисом анкет; любая ошибка внутри трактуется как «не Pro».
type ProChecker interface {
	IsPro(ctx context.Context, userID int64) bool
}

// Service управляет экономикой орбов.
type Service struct {
	repo     *Repository // Репозиторий для работы с БД
	profiles ProChecker  // Источник Pro-статуса
	tun      Tunables    // Настройки экономики
}

// NewService создаёт новый сервис орбов.
func NewService(repo *Repository, profiles ProChecker, tun Tunables) *Service {
	return &Service{repo: repo, profiles: profiles, tun: tun}
}

// Tunables возвращает действующие настройки (для обработчиков и тестов).
func (s *Service) Tunables() Tunables {
	return s.tun
}

// GetOrCreate возвращает запись орбов, создавая её при первом обращении.
// Новая запись: current = max = FreeMax. Идемпотентно.
// Регенерация здесь НЕ применяется — для этого есть MaybeRegen.
func (s *Service) GetOrCreate(ctx context.Context, userID int64) (*Record, error) {
	rec, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return rec, nil
	}

	// Записи нет — создаём с дефолтами свободного тарифа
	if err := s.repo.Create(ctx, userID, s.tun.FreeMax, s.tun.FreeMax, s.tun.FreeRegenPerHour); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}

// MaybeRegen применяет ленивую регенерацию и возвращает актуальный запас.
//
// Pro-пользователь получает синтетическую запись с полным запасом и
// eta = 0 — регенерация ему не нужна, в базу ничего не пишется.
// Свободный тариф: начисляются только целые прошедшие интервалы,
// контрольная точка сдвигается ровно на них (см. regen.go).
func (s *Service) MaybeRegen(ctx context.Context, userID int64, now time.Time) (*RegenResult, error) {
	if s.profiles.IsPro(ctx, userID) {
		return &RegenResult{
			Record:         s.tun.ProRecord(userID, now),
			Granted:        0,
			NextETASeconds: 0,
		}, nil
	}

	rec, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	newCurrent, newLast, granted := applyRegen(
		rec.Current, rec.Max, rec.RegenPerHour, rec.LastRegenAt, now, s.tun.RegenInterval,
	)

	if granted > 0 || !newLast.Equal(rec.LastRegenAt) {
		// Запас и контрольная точка сохраняются одним запросом:
		// при ошибке каллер видит прежний баланс, частичных записей нет
		if err := s.repo.UpdateRegen(ctx, userID, newCurrent, newLast); err != nil {
			return nil, err
		}
		rec.Current = newCurrent
		rec.LastRegenAt = newLast
	}

	if granted > 0 {
		log.WithFields(log.Fields{
			"user_id": userID,
			"granted": granted,
			"current": rec.Current,
		}).Debug("Орбы восстановлены")
	}

	return &RegenResult{
		Record:         rec,
		Granted:        granted,
		NextETASeconds: nextETASeconds(rec.Current, rec.Max, rec.LastRegenAt, now, s.tun.RegenInterval),
	}, nil
}

// CanSpend проверяет, хватает ли запаса на n орбов.
// Pro тратит всегда (безлимит), свободный тариф — при current ≥ n.
func CanSpend(rec *Record, n int, isPro bool) bool {
	if isPro {
		return true
	}
	return rec != nil && rec.Current >= n
}

// Spend атомарно списывает n орбов.
// При нехватке возвращает common.ErrNoOrbs, ничего не меняя.
// Pro-пользователю ничего не списывается (синтетическая запись в ответе).
func (s *Service) Spend(ctx context.Context, userID int64, n int) (*Record, error) {
	if n <= 0 {
		return nil, common.ErrInvalidAmount
	}

	if s.profiles.IsPro(ctx, userID) {
		return s.tun.ProRecord(userID, time.Now()), nil
	}

	// Перед списанием даём регенерации шанс догнать запас
	if _, err := s.MaybeRegen(ctx, userID, time.Now()); err != nil {
		return nil, fmt.Errorf("регенерация перед списанием: %w", err)
	}

	rec, err := s.repo.Spend(ctx, userID, n)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"spent":   n,
		"current": rec.Current,
	}).Debug("Орбы списаны")
	return rec, nil
}

// GrantOne начисляет ровно один орб с отсечкой по пределу.
// Используется наградами (колесо, видения) в обход интервальной арифметики.
func (s *Service) GrantOne(ctx context.Context, userID int64) (*Record, error) {
	return s.Grant(ctx, userID, 1)
}

// Grant начисляет n орбов с отсечкой по пределу.
// Pro-пользователю начислять некуда — возвращается синтетическая запись.
func (s *Service) Grant(ctx context.Context, userID int64, n int) (*Record, error) {
	if n <= 0 {
		return nil, common.ErrInvalidAmount
	}

	if s.profiles.IsPro(ctx, userID) {
		return s.tun.ProRecord(userID, time.Now()), nil
	}

	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	rec, err := s.repo.Grant(ctx, userID, n)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"granted": n,
		"current": rec.Current,
	}).Debug("Орбы начислены")
	return rec, nil
}
