// Package orbs — handlers.go обрабатывает команду !орбы.
package orbs

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
)

// Handler обрабатывает команды орбов.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик орбов.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleOrbs обрабатывает команду !орбы — показывает запас и время
// до следующего восстановления.
//
// Формат ответа:
//
//	🔮 Орбы: 7 / 10
//	⏳ Следующий орб через: 42 мин
func (h *Handler) HandleOrbs(ctx context.Context, chatID int64, userID int64) {
	res, err := h.service.MaybeRegen(ctx, userID, time.Now())
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения орбов")
		h.sendMessage(chatID, "❌ Не удалось прочитать запас орбов")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔮 Орбы: %d / %d\n", res.Record.Current, res.Record.Max))

	if res.Granted > 0 {
		sb.WriteString(fmt.Sprintf("✨ Восстановлено: %s\n", common.FormatOrbsDelta(int64(res.Granted))))
	}

	if res.NextETASeconds > 0 {
		sb.WriteString(fmt.Sprintf("⏳ Следующий орб через: %s", common.FormatETA(res.NextETASeconds)))
	} else {
		sb.WriteString("✨ Полный запас")
	}

	h.sendMessage(chatID, sb.String())
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
