// Package admin — handlers.go обрабатывает взаимодействие с админ-панелью.
// Панель работает через Reply Keyboard в личных сообщениях.
// Поток: аутентификация → клавиатура → выбор действия → пошаговый диалог.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/common"
	"arcanum.ru/mystic-bot/internal/features/wheel"
)

// Кнопки клавиатуры админ-панели.
const (
	btnGrantOrbs   = "Выдать орбы"
	btnSetPro      = "Включить Pro"
	btnUnsetPro    = "Выключить Pro"
	btnWheelShow   = "Показать колесо"
	btnWheelConfig = "Настроить колесо"
	btnStats       = "Статистика"
	btnLogout      = "Выйти"
)

// Handler обрабатывает админ-команды.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler создаёт обработчик админ-панели.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleAdminMessage обрабатывает любое сообщение от администратора в DM.
// Определяет текущее состояние диалога и маршрутизирует сообщение.
// Возвращает true, если сообщение было обработано панелью.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID int64, userID int64, text string) bool {
	if !h.service.IsAdmin(userID) {
		return false
	}

	state := h.service.GetState(userID)

	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	if err := h.service.CheckSession(ctx, userID); errors.Is(err, common.ErrSessionExpired) {
		h.sendMessage(chatID, "🔐 Введите пароль для доступа к админ-панели:")
		h.service.SetState(userID, StateAwaitingPassword)
		return true
	}

	if err := h.service.repo.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).Debug("Ошибка обновления активности сессии")
	}

	if state != nil {
		switch state.State {
		case StateGrantOrbs:
			h.handleGrantOrbs(ctx, chatID, userID, text)
			return true
		case StateSetPro:
			h.handleSetPro(ctx, chatID, userID, text, true)
			return true
		case StateUnsetPro:
			h.handleSetPro(ctx, chatID, userID, text, false)
			return true
		case StateWheelConfig:
			h.handleWheelConfig(ctx, chatID, userID, text)
			return true
		}
	}

	switch text {
	case btnGrantOrbs:
		h.sendMessage(chatID, "Введите получателя и количество: @username 5")
		h.service.SetState(userID, StateGrantOrbs)
		return true
	case btnSetPro:
		h.sendMessage(chatID, "Введите @username для включения Pro:")
		h.service.SetState(userID, StateSetPro)
		return true
	case btnUnsetPro:
		h.sendMessage(chatID, "Введите @username для выключения Pro:")
		h.service.SetState(userID, StateUnsetPro)
		return true
	case btnWheelShow:
		h.showWheelConfig(ctx, chatID)
		return true
	case btnWheelConfig:
		h.sendMessage(chatID, "Введите параметры: <бесплатных_своб> <бесплатных_pro> <дневной_предел> <видения:да/нет>\nНапример: 1 3 5 да")
		h.service.SetState(userID, StateWheelConfig)
		return true
	case btnStats:
		h.showStats(ctx, chatID)
		return true
	case btnLogout:
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("Ошибка выхода из админ-панели")
		}
		h.sendMessage(chatID, "👋 Сессия завершена")
		return true
	case "Админ", "Панель", "админ", "панель":
		h.showKeyboard(chatID)
		return true
	}

	return false
}

// handlePasswordInput обрабатывает ввод пароля.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID int64, userID int64, password string) {
	h.service.ClearState(userID)

	if err := h.service.VerifyPassword(ctx, userID, password); err != nil {
		switch {
		case errors.Is(err, common.ErrTooManyAttempts):
			h.sendMessage(chatID, "⛔ Слишком много попыток, подождите час")
		case errors.Is(err, common.ErrWrongPassword):
			h.sendMessage(chatID, "❌ Неверный пароль")
		default:
			log.WithError(err).Error("Ошибка проверки пароля")
			h.sendMessage(chatID, "❌ Ошибка аутентификации, попробуйте позже")
		}
		return
	}

	h.sendMessage(chatID, "✅ Аутентификация успешна!")
	h.showKeyboard(chatID)
}

// showKeyboard отображает клавиатуру админ-панели.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnGrantOrbs),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSetPro),
			tgbotapi.NewKeyboardButton(btnUnsetPro),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnWheelShow),
			tgbotapi.NewKeyboardButton(btnWheelConfig),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStats),
			tgbotapi.NewKeyboardButton(btnLogout),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "✅ Админ-панель открыта")
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки клавиатуры")
	}
}

// handleGrantOrbs обрабатывает ввод "@username N".
func (h *Handler) handleGrantOrbs(ctx context.Context, chatID int64, userID int64, text string) {
	h.service.ClearState(userID)

	parts := strings.Fields(text)
	if len(parts) != 2 {
		h.sendMessage(chatID, "❌ Формат: @username 5")
		return
	}

	n, err := strconv.Atoi(parts[1])
	if err != nil || n <= 0 {
		h.sendMessage(chatID, "❌ Количество должно быть положительным числом")
		return
	}

	prof, err := h.service.GrantOrbs(ctx, strings.TrimPrefix(parts[0], "@"), n)
	if err != nil {
		h.sendActionError(chatID, err)
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ %s начислено: %s",
		prof.DisplayName(), common.FormatOrbs(int64(n))))
}

// handleSetPro обрабатывает ввод "@username" для смены тарифа.
func (h *Handler) handleSetPro(ctx context.Context, chatID int64, userID int64, text string, pro bool) {
	h.service.ClearState(userID)

	username := strings.TrimPrefix(strings.TrimSpace(text), "@")
	if username == "" {
		h.sendMessage(chatID, "❌ Формат: @username")
		return
	}

	prof, err := h.service.SetPro(ctx, username, pro)
	if err != nil {
		h.sendActionError(chatID, err)
		return
	}

	if pro {
		h.sendMessage(chatID, fmt.Sprintf("✅ %s теперь на Pro ✨", prof.DisplayName()))
	} else {
		h.sendMessage(chatID, fmt.Sprintf("✅ %s переведён на свободный тариф", prof.DisplayName()))
	}
}

// showWheelConfig показывает действующую конфигурацию колеса.
func (h *Handler) showWheelConfig(ctx context.Context, chatID int64) {
	cfg := h.service.WheelConfig(ctx)

	visions := "да"
	if !cfg.AllowVisionSpins {
		visions = "нет"
	}

	var sb strings.Builder
	sb.WriteString("🎡 Конфигурация колеса\n")
	sb.WriteString(fmt.Sprintf("Бесплатных вращений (свободный): %d\n", cfg.FreeSpinsFree))
	sb.WriteString(fmt.Sprintf("Бесплатных вращений (Pro): %d\n", cfg.FreeSpinsPro))
	sb.WriteString(fmt.Sprintf("Дневной предел: %d\n", cfg.DailyMaxSpins))
	sb.WriteString(fmt.Sprintf("Вращения за видения: %s", visions))

	h.sendMessage(chatID, sb.String())
}

// showStats показывает сводку по кругу за сегодня.
func (h *Handler) showStats(ctx context.Context, chatID int64) {
	stats, err := h.service.Overview(ctx)
	if err != nil {
		log.WithError(err).Error("Ошибка получения статистики")
		h.sendMessage(chatID, "❌ Не удалось собрать статистику")
		return
	}

	var sb strings.Builder
	sb.WriteString("📊 Статистика круга\n")
	sb.WriteString(fmt.Sprintf("Участников: %s (Pro: %s)\n",
		common.FormatNumber(stats.Members), common.FormatNumber(stats.ProMembers)))
	sb.WriteString(fmt.Sprintf("Орбов в обороте: %s\n", common.FormatNumber(stats.OrbsInPlay)))
	sb.WriteString(fmt.Sprintf("Вращений сегодня: %s\n", common.FormatNumber(stats.SpinsToday)))
	sb.WriteString(fmt.Sprintf("Ритуалов сегодня: %s", common.FormatNumber(stats.RitualsToday)))

	h.sendMessage(chatID, sb.String())
}

// handleWheelConfig обрабатывает ввод новых параметров колеса.
func (h *Handler) handleWheelConfig(ctx context.Context, chatID int64, userID int64, text string) {
	h.service.ClearState(userID)

	parts := strings.Fields(text)
	if len(parts) != 4 {
		h.sendMessage(chatID, "❌ Формат: 1 3 5 да")
		return
	}

	free, err1 := strconv.Atoi(parts[0])
	pro, err2 := strconv.Atoi(parts[1])
	max, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || free < 0 || pro < 0 || max <= 0 {
		h.sendMessage(chatID, "❌ Первые три параметра — числа, дневной предел больше нуля")
		return
	}

	var allowVisions bool
	switch strings.ToLower(parts[3]) {
	case "да", "вкл":
		allowVisions = true
	case "нет", "выкл":
		allowVisions = false
	default:
		h.sendMessage(chatID, "❌ Последний параметр: да или нет")
		return
	}

	cfg := wheel.Config{
		FreeSpinsFree:    free,
		FreeSpinsPro:     pro,
		AllowVisionSpins: allowVisions,
		DailyMaxSpins:    max,
	}
	if err := h.service.UpdateWheelConfig(ctx, cfg); err != nil {
		h.sendActionError(chatID, err)
		return
	}

	h.sendMessage(chatID, "✅ Конфигурация колеса обновлена")
	h.showWheelConfig(ctx, chatID)
}

// sendActionError разбирает ошибку админ-действия и отвечает админу.
func (h *Handler) sendActionError(chatID int64, err error) {
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		h.sendMessage(chatID, "❌ Участник не найден")
	case errors.Is(err, common.ErrInvalidAmount):
		h.sendMessage(chatID, "❌ Некорректное значение")
	default:
		log.WithError(err).Error("Ошибка админ-действия")
		h.sendMessage(chatID, "❌ Действие не выполнено, попробуйте позже")
	}
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("Ошибка отправки сообщения")
	}
}
