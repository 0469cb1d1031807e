// Package config загружает конфигурацию бота из переменных окружения.
// Используется envconfig для маппинга переменных окружения на поля структуры.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит ВСЕ настройки приложения.
type Config struct {
	// --- Telegram ---
	AdminIDsRaw      string  `envconfig:"ADMIN_IDS" required:"true"`
	AdminIDs         []int64 `envconfig:"-"` // заполним вручную
	TelegramBotToken string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	// ID чата, в котором бот работает (единственный разрешённый групповой чат)
	CircleChatID int64 `envconfig:"CIRCLE_CHAT_ID" required:"true"`

	// --- Database ---
	// В Docker внутри контейнера "localhost" почти всегда неправильно.
	// Дефолт ставим "postgres" (имя сервиса в docker-compose), а для локалки переопределяй DB_HOST=localhost.
	DBHost     string `envconfig:"DB_HOST" default:"postgres"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"botuser"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" default:"mystic_bot"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	DBMinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"debug"`

	// --- Bot runtime ---
	// Сколько апдейтов обрабатываем параллельно. Иначе "go на каждый апдейт" = утечка памяти при флуде.
	BotMaxInflight int `envconfig:"BOT_MAX_INFLIGHT" default:"64"`
	// Таймаут long polling (секунды)
	BotUpdateTimeoutSeconds int `envconfig:"BOT_UPDATE_TIMEOUT_SECONDS" default:"60"`

	// --- Admin ---
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`

	// --- Orbs ---
	// Все настройки экономики орбов заданы здесь и передаются в сервис
	// явным объектом — никаких мутабельных глобалов.
	OrbsFreeMax          int           `envconfig:"ORBS_FREE_MAX" default:"10"`
	OrbsFreeRegenPerHour int           `envconfig:"ORBS_FREE_REGEN_PER_HOUR" default:"1"`
	OrbsRegenInterval    time.Duration `envconfig:"ORBS_REGEN_INTERVAL" default:"1h"`
	OrbsProMax           int           `envconfig:"ORBS_PRO_MAX" default:"100"`
	OrbsProRegenPerHour  int           `envconfig:"ORBS_PRO_REGEN_PER_HOUR" default:"10"`

	// --- Wheel ---
	// Дефолты конфигурации колеса. Действующие значения хранятся в таблице
	// features_config; если строка отсутствует или не читается — берём эти.
	WheelFreeSpinsFree    int  `envconfig:"WHEEL_FREE_SPINS_FREE" default:"1"`
	WheelFreeSpinsPro     int  `envconfig:"WHEEL_FREE_SPINS_PRO" default:"3"`
	WheelAllowVisionSpins bool `envconfig:"WHEEL_ALLOW_VISION_SPINS" default:"true"`
	WheelDailyMaxSpins    int  `envconfig:"WHEEL_DAILY_MAX_SPINS" default:"5"`

	// --- Rituals ---
	RitualRuneCost          int `envconfig:"RITUAL_RUNE_COST" default:"1"`
	RitualNumerologyCost    int `envconfig:"RITUAL_NUMEROLOGY_COST" default:"1"`
	RitualCompatibilityCost int `envconfig:"RITUAL_COMPATIBILITY_COST" default:"2"`
	RitualRuneXP            int `envconfig:"RITUAL_RUNE_XP" default:"10"`
	RitualNumerologyXP      int `envconfig:"RITUAL_NUMEROLOGY_XP" default:"10"`
	RitualCompatibilityXP   int `envconfig:"RITUAL_COMPATIBILITY_XP" default:"15"`

	// --- Visions ---
	VisionDailyLimit int `envconfig:"VISION_DAILY_LIMIT" default:"3"`

	// --- Rate Limiting ---
	RateLimitRequests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"10"`
	RateLimitWindow   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	// --- Feature Flags ---
	FeatureWheelEnabled   bool `envconfig:"FEATURE_WHEEL_ENABLED" default:"true"`
	FeatureVisionsEnabled bool `envconfig:"FEATURE_VISIONS_ENABLED" default:"true"`
	FeatureRitualsEnabled bool `envconfig:"FEATURE_RITUALS_ENABLED" default:"true"`
}

// DatabaseDSN возвращает строку подключения к PostgreSQL в формате DSN.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) Validate() error {
	if c.CircleChatID == 0 {
		return fmt.Errorf("CIRCLE_CHAT_ID не задан или равен 0")
	}
	if c.BotMaxInflight <= 0 {
		return fmt.Errorf("BOT_MAX_INFLIGHT должен быть > 0")
	}
	if c.BotUpdateTimeoutSeconds <= 0 {
		return fmt.Errorf("BOT_UPDATE_TIMEOUT_SECONDS должен быть > 0")
	}
	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("некорректные DB_MIN_CONNS/DB_MAX_CONNS")
	}
	if c.OrbsFreeMax <= 0 || c.OrbsProMax < c.OrbsFreeMax {
		return fmt.Errorf("некорректные ORBS_FREE_MAX/ORBS_PRO_MAX")
	}
	if c.OrbsRegenInterval <= 0 {
		return fmt.Errorf("ORBS_REGEN_INTERVAL должен быть > 0")
	}
	if c.WheelDailyMaxSpins <= 0 {
		return fmt.Errorf("WHEEL_DAILY_MAX_SPINS должен быть > 0")
	}
	return nil
}

// Load читает переменные окружения и заполняет структуру Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	ids, err := parseInt64CSV(cfg.AdminIDsRaw)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS parse: %w", err)
	}
	cfg.AdminIDs = ids

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseInt64CSV(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad int64 %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
