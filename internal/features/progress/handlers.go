// Package progress — handlers.go обрабатывает команду !профиль.
package progress

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
	"arcanum.ru/mystic-bot/internal/features/profile"
)

// Handler обрабатывает команды развития.
type Handler struct {
	service        *Service
	profileService *profile.Service
	bot            *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик развития.
func NewHandler(service *Service, profileService *profile.Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, profileService: profileService, bot: bot}
}

// HandleProfile обрабатывает команду !профиль.
//
// Формат ответа:
//
//	🧙 @username — Pro ✨
//	Уровень 3 (320 очков, до следующего: 280)
//	🔥 Стрик: 12 дней (рекорд 15)
//	🧊 Заморозок: 2
func (h *Handler) HandleProfile(ctx context.Context, chatID int64, userID int64) {
	prof, err := h.profileService.GetByUserID(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "❌ Анкета не найдена, напишите что-нибудь в круге")
		return
	}

	p, err := h.service.GetProgress(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Ошибка чтения развития")
		h.sendMessage(chatID, "❌ Не удалось прочитать профиль")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🧙 %s — %s\n", prof.DisplayName(), prof.Tier()))
	sb.WriteString(fmt.Sprintf("Уровень %d (%s %s, до следующего: %s)\n",
		p.Level,
		common.FormatNumber(p.XP), common.PluralizeXP(p.XP),
		common.FormatNumber(XPToNextLevel(p.XP)),
	))
	sb.WriteString(fmt.Sprintf("🔥 Стрик: %d %s (рекорд %d)\n",
		p.CurrentStreak, common.PluralizeDays(p.CurrentStreak), p.LongestStreak))
	sb.WriteString(fmt.Sprintf("🧊 Заморозок: %d", p.StreakFreezes))

	h.sendMessage(chatID, sb.String())
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
