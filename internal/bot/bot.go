// Package bot содержит главный модуль бота — инициализацию, запуск и остановку.
// bot.go принимает обработчики, подключает маршрутизацию и запускает polling.
package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/bot/filters"
	"arcanum.ru/mystic-bot/internal/bot/middleware"
	"arcanum.ru/mystic-bot/internal/config"
	"arcanum.ru/mystic-bot/internal/features/admin"
	"arcanum.ru/mystic-bot/internal/features/orbs"
	"arcanum.ru/mystic-bot/internal/features/profile"
	"arcanum.ru/mystic-bot/internal/features/progress"
	"arcanum.ru/mystic-bot/internal/features/rituals"
	"arcanum.ru/mystic-bot/internal/features/visions"
	"arcanum.ru/mystic-bot/internal/features/wheel"
)

// helpText — ответ на !старт и !помощь.
const helpText = `🔮 Мистический круг. Команды:
!орбы — запас орбов и время до восстановления
!колесо — вращение колеса наград
!спины — остаток вращений на сегодня
!видение орб|колесо — награда за видение
!руна — руна дня (1 орб)
!число ДД.ММ.ГГГГ — число судьбы (1 орб)
!совместимость ДД.ММ.ГГГГ ДД.ММ.ГГГГ — совместимость (2 орба)
!профиль — уровень, опыт и стрик
!журнал — последние ритуалы
/login <пароль> — админ-панель (в личке)`

// Bot — главная структура бота, объединяющая все компоненты.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	orbsHandler     *orbs.Handler
	wheelHandler    *wheel.Handler
	progressHandler *progress.Handler
	ritualsHandler  *rituals.Handler
	visionsHandler  *visions.Handler
	adminHandler    *admin.Handler

	profileService  *profile.Service
	orbsService     *orbs.Service
	progressService *progress.Service

	parser *CommandParser

	// ограничитель параллелизма обработки апдейтов
	inflight chan struct{}
}

// New создаёт новый экземпляр бота со всеми зависимостями.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	profileService *profile.Service,
	orbsService *orbs.Service,
	progressService *progress.Service,
	orbsHandler *orbs.Handler,
	wheelHandler *wheel.Handler,
	progressHandler *progress.Handler,
	ritualsHandler *rituals.Handler,
	visionsHandler *visions.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInFlight := cfg.BotMaxInflight
	if maxInFlight <= 0 {
		maxInFlight = 64
	}

	return &Bot{
		api:             api,
		cfg:             cfg,
		chatFilter:      chatFilter,
		rateLimiter:     middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		orbsHandler:     orbsHandler,
		wheelHandler:    wheelHandler,
		progressHandler: progressHandler,
		ritualsHandler:  ritualsHandler,
		visionsHandler:  visionsHandler,
		adminHandler:    adminHandler,
		profileService:  profileService,
		orbsService:     orbsService,
		progressService: progressService,
		parser:          NewCommandParser(),
		inflight:        make(chan struct{}, maxInFlight),
	}
}

// Start запускает polling обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("Бот запущен и ожидает сообщения...")

	for {
		select {
		case <-ctx.Done():
			log.Info("Бот останавливается (ctx done)...")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("Канал updates закрыт, бот остановлен")
				return
			}

			// лимит параллелизма
			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Telegram.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	// Обрабатываем новых участников (событие вступления)
	if update.Message != nil && update.Message.NewChatMembers != nil {
		if update.Message.Chat != nil && update.Message.Chat.ID == b.cfg.CircleChatID {
			b.handleNewMembers(ctx, update.Message.NewChatMembers)
		}
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := update.Message

	middleware.LogMessage(message)

	// Проверяем доступ (круг или DM участника круга)
	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	// EnsureMember — ошибки нельзя игнорировать, иначе потом будет "оно не работает"
	if err := b.profileService.EnsureMember(ctx, userID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureMember failed")
	}

	// В DM проверяем админ-панель
	if message.Chat.IsPrivate() {
		if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
			return
		}
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}

	b.routeCommand(ctx, chatID, userID, cmd, args)
}

// routeCommand маршрутизирует команду к нужному обработчику.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) {
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("routing command")

	switch cmd {
	case "start", "старт", "help", "помощь":
		b.sendMessage(chatID, helpText)

	case "login":
		// В DM сообщение уже перехватила админ-панель; в общем чате
		// напоминаем, что вход туда не делается (пароль в чате — беда)
		if chatID != userID {
			b.sendMessage(chatID, "🔐 Вход в админ-панель — только в личных сообщениях боту")
		}

	case "орбы":
		b.orbsHandler.HandleOrbs(ctx, chatID, userID)

	case "колесо":
		if b.cfg.FeatureWheelEnabled {
			b.wheelHandler.HandleWheel(ctx, chatID, userID)
		} else {
			b.sendMessage(chatID, "🎡 Колесо временно отключено")
		}

	case "спины":
		if b.cfg.FeatureWheelEnabled {
			b.wheelHandler.HandleSpins(ctx, chatID, userID)
		}

	case "видение":
		if b.cfg.FeatureVisionsEnabled {
			b.visionsHandler.HandleVision(ctx, chatID, userID, args)
		} else {
			b.sendMessage(chatID, "👁 Видения временно отключены")
		}

	case "руна":
		if b.cfg.FeatureRitualsEnabled {
			b.ritualsHandler.HandleRune(ctx, chatID, userID)
		}

	case "число":
		if b.cfg.FeatureRitualsEnabled {
			b.ritualsHandler.HandleNumerology(ctx, chatID, userID, args)
		}

	case "совместимость":
		if b.cfg.FeatureRitualsEnabled {
			b.ritualsHandler.HandleCompatibility(ctx, chatID, userID, args)
		}

	case "профиль":
		b.progressHandler.HandleProfile(ctx, chatID, userID)

	case "журнал":
		b.ritualsHandler.HandleJournal(ctx, chatID, userID)
	}
}

// handleNewMembers обрабатывает вступление новых участников в круг.
func (b *Bot) handleNewMembers(ctx context.Context, newMembers []tgbotapi.User) {
	for _, user := range newMembers {
		if err := b.profileService.HandleNewMember(ctx, user.ID, user.UserName, user.FirstName, user.LastName); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("HandleNewMember failed")
		}
		if _, err := b.orbsService.GetOrCreate(ctx, user.ID); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Создание запаса орбов failed")
		}
		if err := b.progressService.Ensure(ctx, user.ID); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("Создание развития failed")
		}

		log.WithField("user", user.UserName).Info("Новый участник обработан")
	}
}

// sendMessage — утилита для отправки сообщений.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("Ошибка отправки сообщения")
	}
}

// SendMessageToUser отправляет сообщение пользователю (для напоминаний).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("Не удалось отправить сообщение")
	}
}

// CommandParser парсит русские команды с префиксами !, . и /
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand разбирает текст на команду и аргументы.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}

	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)

	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}

	return command, args, true
}
