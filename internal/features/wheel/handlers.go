// Package wheel — handlers.go обрабатывает команды !колесо и !спины.
package wheel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
)

// Handler обрабатывает команды колеса.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик колеса.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleWheel обрабатывает команду !колесо — одно дневное вращение.
func (h *Handler) HandleWheel(ctx context.Context, chatID int64, userID int64) {
	result, err := h.service.Spin(ctx, userID, ModeDaily)
	if err != nil {
		if errors.Is(err, common.ErrNoSpins) {
			h.sendMessage(chatID, "🎡 Вращения на сегодня закончились. Попробуйте !видение колесо или возвращайтесь завтра")
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("Ошибка вращения колеса")
		h.sendMessage(chatID, "❌ Колесо заклинило, попробуйте позже")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎡 Колесо остановилось: %s\n", result.Segment.Label))
	sb.WriteString(fmt.Sprintf("Начислено: %s\n", result.Summary))
	sb.WriteString(fmt.Sprintf("Осталось вращений сегодня: %d", result.RemainingAfter))

	h.sendMessage(chatID, sb.String())
}

// HandleSpins обрабатывает команду !спины — сводка по вращениям.
func (h *Handler) HandleSpins(ctx context.Context, chatID int64, userID int64) {
	rem, err := h.service.SpinsRemaining(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения вращений")
		h.sendMessage(chatID, "❌ Не удалось прочитать вращения")
		return
	}

	var sb strings.Builder
	sb.WriteString("🎡 Вращения на сегодня\n")
	sb.WriteString(fmt.Sprintf("Использовано: %d из %d\n", rem.Used, rem.Max))
	sb.WriteString(fmt.Sprintf("Бесплатных по тарифу: %d\n", rem.FreeLimit))
	if rem.Remaining > 0 {
		sb.WriteString(fmt.Sprintf("Осталось: %d %s", rem.Remaining, common.PluralizeSpins(rem.Remaining)))
	} else {
		sb.WriteString("Осталось: 0 — возвращайтесь завтра")
	}

	h.sendMessage(chatID, sb.String())
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
