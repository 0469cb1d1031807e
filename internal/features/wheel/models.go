// Package wheel реализует колесо наград с дневным лимитом вращений
// и взвешенным случайным выбором сегмента.
// models.go описывает сегменты, дневной леджер и конфигурацию колеса.
package wheel

import (
	"time"

	"arcanum.ru/mystic-bot/internal/config"
)

// SegmentKind — тип награды сегмента.
type SegmentKind string

const (
	KindOrb          SegmentKind = "ORB"           // Орбы
	KindXP           SegmentKind = "XP"            // Очки опыта
	KindStreakFreeze SegmentKind = "STREAK_FREEZE" // Заморозка стрика
)

// Режимы вращения.
const (
	ModeDaily  = "daily"  // Обычное дневное вращение
	ModeVision = "vision" // Бонусное вращение за видение
)

// Segment — один сектор колеса.
type Segment struct {
	ID     string      // Идентификатор для журнала
	Kind   SegmentKind // Тип награды
	Value  int         // Величина награды
	Weight int         // Вес (вероятность = weight / totalWeight)
	Label  string      // Подпись для пользователя
}

// Segments — фиксированный набор секторов колеса.
// Веса в сумме дают 100, так что вес читается как процент.
// Набор задаётся на этапе деплоя и в рантайме не меняется.
var Segments = []Segment{
	{ID: "orb_one", Kind: KindOrb, Value: 1, Weight: 30, Label: "🔮 1 орб"},           // 30%
	{ID: "xp_ten", Kind: KindXP, Value: 10, Weight: 22, Label: "✨ 10 очков опыта"},    // 22%
	{ID: "orb_two", Kind: KindOrb, Value: 2, Weight: 18, Label: "🔮 2 орба"},          // 18%
	{ID: "xp_twenty_five", Kind: KindXP, Value: 25, Weight: 12, Label: "✨ 25 очков опыта"}, // 12%
	{ID: "freeze_one", Kind: KindStreakFreeze, Value: 1, Weight: 7, Label: "🧊 Заморозка стрика"}, // 7%
	{ID: "orb_three", Kind: KindOrb, Value: 3, Weight: 7, Label: "🔮 3 орба"},         // 7%
	{ID: "xp_fifty", Kind: KindXP, Value: 50, Weight: 4, Label: "✨ 50 очков опыта"},   // 4% — самый редкий
}

// Ledger — дневной леджер вращений пользователя.
// Сбрасывается лениво при чтении, когда date_key отстал от текущих
// UTC-суток; никакого фонового сброса в полночь нет.
type Ledger struct {
	ID         int64      `db:"id"`
	UserID     int64      `db:"user_id"`
	DateKey    string     `db:"date_key"`     // UTC-дата "2006-01-02"
	SpinsToday int        `db:"spins_today"`  // Вращений использовано сегодня
	LastSpinAt *time.Time `db:"last_spin_at"` // Время последнего вращения
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// Config — действующая конфигурация колеса.
// Хранится глобальной строкой в features_config; при отсутствии строки
// или ошибке чтения используются дефолты из переменных окружения.
type Config struct {
	FreeSpinsFree    int  `db:"free_spins_free"`    // Бесплатных вращений свободному тарифу
	FreeSpinsPro     int  `db:"free_spins_pro"`     // Бесплатных вращений Pro
	AllowVisionSpins bool `db:"allow_vision_spins"` // Разрешены ли вращения за видения
	DailyMaxSpins    int  `db:"daily_max_spins"`    // Жёсткий дневной предел (включая бесплатные)
}

// DefaultConfig собирает дефолтную конфигурацию колеса из общего конфига.
func DefaultConfig(cfg *config.Config) Config {
	return Config{
		FreeSpinsFree:    cfg.WheelFreeSpinsFree,
		FreeSpinsPro:     cfg.WheelFreeSpinsPro,
		AllowVisionSpins: cfg.WheelAllowVisionSpins,
		DailyMaxSpins:    cfg.WheelDailyMaxSpins,
	}
}

// Remaining — сводка по вращениям на сегодня.
// FreeLimit — информационное поле (сколько вращений «бесплатны» для тарифа);
// право на вращение определяется только Remaining > 0 против Max.
type Remaining struct {
	Used      int // Использовано сегодня
	FreeLimit int // Бесплатный лимит тарифа пользователя
	Max       int // Жёсткий дневной предел
	Remaining int // Осталось: max(0, Max - Used)
}

// SpinResult — результат одного вращения.
type SpinResult struct {
	Segment        Segment // Выпавший сегмент
	SegmentIndex   int     // Индекс сегмента в Segments
	Summary        string  // Что начислено, для ответа пользователю
	SpinID         string  // UUID попытки (пишется в журнал)
	RemainingAfter int     // Осталось вращений после (пересчитано из БД)
}
