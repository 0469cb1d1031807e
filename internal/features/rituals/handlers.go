// Package rituals — handlers.go обрабатывает команды
// !руна, !число, !совместимость и !журнал.
package rituals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
)

// journalPageSize — сколько записей показывает !журнал.
const journalPageSize = 10

// Handler обрабатывает команды ритуалов.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик ритуалов.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleRune обрабатывает команду !руна.
func (h *Handler) HandleRune(ctx context.Context, chatID int64, userID int64) {
	reading, err := h.service.DrawRune(ctx, userID)
	if err != nil {
		h.sendRitualError(chatID, userID, err, "руна")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s Руна дня: %s\n", reading.Rune.Symbol, reading.Rune.Name))
	sb.WriteString(fmt.Sprintf("Трактовка: %s\n", reading.Rune.Meaning))
	sb.WriteString(h.footer(reading.CostOrbs, reading.XPAwarded, reading.OrbsLeft))

	h.sendMessage(chatID, sb.String())
}

// HandleNumerology обрабатывает команду !число ДД.ММ.ГГГГ.
func (h *Handler) HandleNumerology(ctx context.Context, chatID int64, userID int64, args []string) {
	if len(args) < 1 {
		h.sendMessage(chatID, "📖 Формат: !число ДД.ММ.ГГГГ")
		return
	}

	reading, err := h.service.Numerology(ctx, userID, args[0])
	if err != nil {
		if errors.Is(err, common.ErrBadDate) {
			h.sendMessage(chatID, "❌ Не могу прочесть дату. Формат: ДД.ММ.ГГГГ, например 21.03.1990")
			return
		}
		h.sendRitualError(chatID, userID, err, "число")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔢 Число судьбы: %d\n", reading.Number))
	sb.WriteString(fmt.Sprintf("Трактовка: %s\n", reading.Meaning))
	sb.WriteString(h.footer(reading.CostOrbs, reading.XPAwarded, reading.OrbsLeft))

	h.sendMessage(chatID, sb.String())
}

// HandleCompatibility обрабатывает команду !совместимость ДД.ММ.ГГГГ ДД.ММ.ГГГГ.
func (h *Handler) HandleCompatibility(ctx context.Context, chatID int64, userID int64, args []string) {
	if len(args) < 2 {
		h.sendMessage(chatID, "📖 Формат: !совместимость ДД.ММ.ГГГГ ДД.ММ.ГГГГ")
		return
	}

	reading, err := h.service.Compatibility(ctx, userID, args[0], args[1])
	if err != nil {
		if errors.Is(err, common.ErrBadDate) {
			h.sendMessage(chatID, "❌ Не могу прочесть дату. Формат: ДД.ММ.ГГГГ, например 21.03.1990")
			return
		}
		h.sendRitualError(chatID, userID, err, "совместимость")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💞 Совместимость: %d%% (%d и %d)\n",
		reading.Score, reading.NumberA, reading.NumberB))
	sb.WriteString(fmt.Sprintf("Вердикт: %s\n", reading.Verdict))
	sb.WriteString(h.footer(reading.CostOrbs, reading.XPAwarded, reading.OrbsLeft))

	h.sendMessage(chatID, sb.String())
}

// HandleJournal обрабатывает команду !журнал — последние ритуалы.
func (h *Handler) HandleJournal(ctx context.Context, chatID int64, userID int64) {
	entries, err := h.service.Journal(ctx, userID, journalPageSize)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения журнала")
		h.sendMessage(chatID, "❌ Не удалось прочитать журнал")
		return
	}

	if len(entries) == 0 {
		h.sendMessage(chatID, "📜 Журнал пуст. Начните с !руна или !колесо")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Журнал ритуалов\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s · %s — %s\n",
			common.FormatDateTime(e.CreatedAt), ritualTitle(e.RitualType), e.Detail))
	}

	h.sendMessage(chatID, sb.String())
}

// ritualTitle возвращает название типа ритуала для журнала.
func ritualTitle(ritualType string) string {
	switch ritualType {
	case TypeRune:
		return "Руна"
	case TypeNumerology:
		return "Число"
	case TypeCompatibility:
		return "Совместимость"
	case TypeWheel:
		return "Колесо"
	default:
		return ritualType
	}
}

// footer собирает общую подпись ритуала: цена, опыт, остаток орбов.
func (h *Handler) footer(cost, xp, orbsLeft int) string {
	return fmt.Sprintf("Списано: %s · +%d %s опыта · осталось %s",
		common.FormatOrbs(int64(cost)), xp, common.PluralizeXP(int64(xp)),
		common.FormatOrbs(int64(orbsLeft)))
}

// sendRitualError разбирает ошибку ритуала и отвечает пользователю.
func (h *Handler) sendRitualError(chatID int64, userID int64, err error, ritual string) {
	if errors.Is(err, common.ErrNoOrbs) {
		h.sendMessage(chatID, "🔮 Не хватает орбов. Проверьте запас: !орбы")
		return
	}
	log.WithError(err).WithFields(log.Fields{
		"user_id": userID,
		"ritual":  ritual,
	}).Error("Ошибка ритуала")
	h.sendMessage(chatID, "❌ Ритуал сорвался, попробуйте позже")
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
