package filters

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/features/profile"
)

// ChatFilter пропускает сообщения только из круга (основного чата)
// и личных сообщений участников круга.
type ChatFilter struct {
	circleChatID   int64
	profileService *profile.Service
	bot            *tgbotapi.BotAPI
}

func NewChatFilter(circleChatID int64, profileService *profile.Service, bot *tgbotapi.BotAPI) *ChatFilter {
	return &ChatFilter{
		circleChatID:   circleChatID,
		profileService: profileService,
		bot:            bot,
	}
}

func (f *ChatFilter) CheckAccess(ctx context.Context, message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat")
		return false
	}
	if message.From == nil {
		log.WithFields(log.Fields{
			"component": "ChatFilter",
			"chat_id":   message.Chat.ID,
			"chat_type": message.Chat.Type,
		}).Warn("nil message.From (сервисное сообщение?)")
		return false
	}
	if f.circleChatID == 0 {
		log.WithField("component", "ChatFilter").Error("circleChatID равен 0 (ошибка конфигурации)")
		return false
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	logger := log.WithFields(log.Fields{
		"component":      "ChatFilter",
		"chat_id":        chatID,
		"chat_type":      message.Chat.Type,
		"user_id":        userID,
		"circle_chat_id": f.circleChatID,
	})

	// 1) Круг — всегда разрешён
	if chatID == f.circleChatID {
		logger.Debug("allow: circle chat")
		return true
	}

	// 2) Личка: сначала быстро по БД
	if message.Chat.IsPrivate() {
		isMember, err := f.profileService.IsMember(ctx, userID)
		if err != nil {
			logger.WithError(err).Error("member check failed (db)")
			return false
		}
		if isMember {
			logger.Debug("allow: private (db member)")
			return true
		}

		// 2.1) БД не знает пользователя: проверяем членство через Telegram API
		cm, err := f.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
			ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
				ChatID: f.circleChatID,
				UserID: userID,
			},
		})
		if err != nil {
			logger.WithError(err).Error("member check failed (telegram GetChatMember)")
			return false
		}

		switch cm.Status {
		case "creator", "administrator", "member", "restricted":
			if err := f.profileService.EnsureMember(
				ctx, userID,
				message.From.UserName,
				message.From.FirstName,
				message.From.LastName,
			); err != nil {
				logger.WithError(err).Warn("failed to backfill member to DB (allowing anyway)")
			}
			logger.WithField("tg_status", cm.Status).Info("allow: private (telegram member, backfilled)")
			return true

		default:
			logger.WithField("tg_status", cm.Status).Info("deny: private (not a circle member)")
			msg := tgbotapi.NewMessage(chatID, "❌ Бот работает только для участников круга")
			if _, sendErr := f.bot.Send(msg); sendErr != nil {
				logger.WithError(sendErr).Warn("failed to send deny message")
			}
			return false
		}
	}

	// 3) Остальные чаты игнорируем
	logger.Info("deny: not circle chat and not private")
	return false
}
