// Package app инициализирует все компоненты приложения.
// app.go — точка сборки: создаёт БД-пул, репозитории, сервисы, обработчики,
// фильтры и собирает всё в один объект Bot.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"arcanum.ru/mystic-bot/internal/bot"
	"arcanum.ru/mystic-bot/internal/bot/filters"
	"arcanum.ru/mystic-bot/internal/config"
	"arcanum.ru/mystic-bot/internal/db/postgres"
	"arcanum.ru/mystic-bot/internal/features/admin"
	"arcanum.ru/mystic-bot/internal/features/orbs"
	"arcanum.ru/mystic-bot/internal/features/profile"
	"arcanum.ru/mystic-bot/internal/features/progress"
	"arcanum.ru/mystic-bot/internal/features/rituals"
	"arcanum.ru/mystic-bot/internal/features/visions"
	"arcanum.ru/mystic-bot/internal/features/wheel"
	"arcanum.ru/mystic-bot/internal/jobs"
)

// App содержит все компоненты приложения.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New создаёт и инициализирует приложение.
// Порядок инициализации важен — компоненты зависят друг от друга.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. База данных ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("ошибка миграций: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Telegram API: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("Авторизован как @%s", botAPI.Self.UserName)

	// === 3. Репозитории ===
	profileRepo := profile.NewRepository(pool)
	orbsRepo := orbs.NewRepository(pool)
	progressRepo := progress.NewRepository(pool)
	wheelRepo := wheel.NewRepository(pool)
	ritualsRepo := rituals.NewRepository(pool)
	visionsRepo := visions.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 4. Сервисы ===
	profileService := profile.NewService(profileRepo)
	orbsService := orbs.NewService(orbsRepo, profileService, orbs.TunablesFromConfig(cfg))
	progressService := progress.NewService(progressRepo)
	ritualsService := rituals.NewService(ritualsRepo, orbsService, progressService, rituals.CostsFromConfig(cfg))
	wheelService := wheel.NewService(
		wheelRepo, profileService,
		orbsService, progressService, progressService, ritualsService,
		wheel.DefaultConfig(cfg),
	)
	visionsService := visions.NewService(visionsRepo, orbsService, wheelService, cfg.VisionDailyLimit)
	adminService := admin.NewService(adminRepo, profileService, orbsService, wheelService, cfg)

	// === 5. Обработчики ===
	orbsHandler := orbs.NewHandler(orbsService, botAPI)
	wheelHandler := wheel.NewHandler(wheelService, botAPI)
	progressHandler := progress.NewHandler(progressService, profileService, botAPI)
	ritualsHandler := rituals.NewHandler(ritualsService, botAPI)
	visionsHandler := visions.NewHandler(visionsService, botAPI)
	adminHandler := admin.NewHandler(adminService, botAPI)

	// === 6. Фильтры ===
	chatFilter := filters.NewChatFilter(cfg.CircleChatID, profileService, botAPI)

	// === 7. Собираем бота ===
	b := bot.New(
		botAPI, cfg,
		profileService, orbsService, progressService,
		orbsHandler, wheelHandler, progressHandler,
		ritualsHandler, visionsHandler, adminHandler,
		chatFilter,
	)

	// === 8. Планировщик задач ===
	scheduler := jobs.NewScheduler(progressService, b.SendMessageToUser)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations выполняет все SQL-миграции.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationsTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Profiles},
		{2, migration002Orbs},
		{3, migration003Progress},
		{4, migration004Wheel},
		{5, migration005RitualLog},
		{6, migration006Visions},
		{7, migration007Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("миграция %d: %w", m.version, err)
		}
		log.Infof("Миграция %d применена", m.version)
	}

	return nil
}

// SQL-миграции встроены в код для упрощения деплоя.

var migration001Profiles = `
CREATE TABLE IF NOT EXISTS profiles (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255),
    pro_entitlement BOOLEAN DEFAULT FALSE,
    is_banned BOOLEAN DEFAULT FALSE,
    joined_at TIMESTAMP DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id);
CREATE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username);
`

var migration002Orbs = `
CREATE TABLE IF NOT EXISTS orbs (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES profiles(user_id),
    current INTEGER NOT NULL DEFAULT 0,
    max INTEGER NOT NULL DEFAULT 10,
    regen_per_hour INTEGER NOT NULL DEFAULT 1,
    last_regen_at TIMESTAMP NOT NULL DEFAULT NOW(),
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_orbs_user_id ON orbs(user_id);
`

var migration003Progress = `
CREATE TABLE IF NOT EXISTS progress (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES profiles(user_id),
    xp BIGINT NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 1,
    current_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    ritual_done_today BOOLEAN NOT NULL DEFAULT FALSE,
    last_ritual_at TIMESTAMP,
    streak_freezes INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_progress_user_id ON progress(user_id);
`

var migration004Wheel = `
CREATE TABLE IF NOT EXISTS wheel_ledgers (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES profiles(user_id),
    date_key VARCHAR(10) NOT NULL,
    spins_today INTEGER NOT NULL DEFAULT 0,
    last_spin_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_wheel_ledgers_user_id ON wheel_ledgers(user_id);
CREATE TABLE IF NOT EXISTS features_config (
    id INTEGER PRIMARY KEY,
    free_spins_free INTEGER NOT NULL DEFAULT 1,
    free_spins_pro INTEGER NOT NULL DEFAULT 3,
    allow_vision_spins BOOLEAN NOT NULL DEFAULT TRUE,
    daily_max_spins INTEGER NOT NULL DEFAULT 5,
    updated_at TIMESTAMP DEFAULT NOW()
);
`

var migration005RitualLog = `
CREATE TABLE IF NOT EXISTS ritual_log (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES profiles(user_id),
    ritual_type VARCHAR(32) NOT NULL,
    mode VARCHAR(16) NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT '',
    cost_orbs INTEGER NOT NULL DEFAULT 0,
    xp_awarded INTEGER NOT NULL DEFAULT 0,
    spin_id VARCHAR(36),
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_ritual_log_user_id ON ritual_log(user_id, created_at DESC);
`

var migration006Visions = `
CREATE TABLE IF NOT EXISTS visions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES profiles(user_id),
    mode VARCHAR(16) NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_visions_user_id ON visions(user_id, created_at DESC);
`

var migration007Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    attempt_time TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
`
