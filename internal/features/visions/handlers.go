// Package visions — handlers.go обрабатывает команду !видение.
package visions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
)

// Handler обрабатывает команды видений.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик видений.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleVision обрабатывает команду !видение [орб|колесо].
// Без аргумента показывает остаток видений на сегодня.
func (h *Handler) HandleVision(ctx context.Context, chatID int64, userID int64, args []string) {
	if len(args) == 0 {
		h.showRemaining(ctx, chatID, userID)
		return
	}

	mode, err := parseMode(args[0])
	if err != nil {
		h.sendMessage(chatID, "📖 Формат: !видение орб — или — !видение колесо")
		return
	}

	result, err := h.service.Watch(ctx, userID, mode)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNoVisions):
			h.sendMessage(chatID, "👁 Видения на сегодня исчерпаны, возвращайтесь завтра")
		case errors.Is(err, common.ErrVisionSpinsOff):
			h.sendMessage(chatID, "🎡 Вращения за видения сейчас отключены. Попробуйте: !видение орб")
		case errors.Is(err, common.ErrNoSpins):
			h.sendMessage(chatID, "🎡 Дневной предел вращений уже достигнут. Попробуйте: !видение орб")
		default:
			log.WithError(err).WithField("user_id", userID).Error("Ошибка видения")
			h.sendMessage(chatID, "❌ Видение рассеялось, попробуйте позже")
		}
		return
	}

	var sb strings.Builder
	switch result.Mode {
	case ModeOrb:
		sb.WriteString("👁 Видение принято: +1 орб\n")
		sb.WriteString(fmt.Sprintf("🔮 Орбы: %d / %d\n", result.Orbs.Current, result.Orbs.Max))
	case ModeWheel:
		sb.WriteString(fmt.Sprintf("👁 Видение принято, колесо остановилось: %s\n", result.Spin.Segment.Label))
		sb.WriteString(fmt.Sprintf("Начислено: %s\n", result.Spin.Summary))
	}
	sb.WriteString(fmt.Sprintf("Видений сегодня: %d из %d", result.UsedToday, result.Limit))

	h.sendMessage(chatID, sb.String())
}

// showRemaining отвечает остатком видений на сегодня.
func (h *Handler) showRemaining(ctx context.Context, chatID int64, userID int64) {
	used, err := h.service.UsedToday(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка подсчёта видений")
		h.sendMessage(chatID, "❌ Не удалось посчитать видения")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👁 Видений сегодня: %d из %d\n", used, h.service.dailyLimit))
	sb.WriteString("Награда на выбор: !видение орб — или — !видение колесо")

	h.sendMessage(chatID, sb.String())
}

// parseMode разбирает аргумент команды в режим награды.
func parseMode(arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "орб", "орбы", "orb":
		return ModeOrb, nil
	case "колесо", "wheel":
		return ModeWheel, nil
	default:
		return "", common.ErrUnknownVisionMode
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
