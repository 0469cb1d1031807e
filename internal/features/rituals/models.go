// Package rituals реализует ежедневные ритуалы (руна дня, нумерология,
// совместимость) и журнал ритуалов, в который пишут и другие модули.
// models.go описывает таблицу рун, запись журнала и стоимости ритуалов.
package rituals

import (
	"time"

	"arcanum.ru/mystic-bot/internal/config"
)

// Типы ритуалов в журнале.
const (
	TypeRune          = "rune"          // Руна дня
	TypeNumerology    = "numerology"    // Число судьбы
	TypeCompatibility = "compatibility" // Совместимость
	TypeWheel         = "wheel"         // Вращение колеса (пишет модуль wheel)
)

// Rune — одна руна старшего футарка.
type Rune struct {
	Symbol  string // Знак руны
	Name    string // Название
	Meaning string // Трактовка для пользователя
}

// Runes — фиксированная таблица из 24 рун старшего футарка.
// Порядок канонический, выбор — равновероятный.
var Runes = []Rune{
	{Symbol: "ᚠ", Name: "Феху", Meaning: "достаток и прибыль; берегите то, что нажито"},
	{Symbol: "ᚢ", Name: "Уруз", Meaning: "сила и здоровье; время действовать напором"},
	{Symbol: "ᚦ", Name: "Турисаз", Meaning: "врата перемен; не входите не подумав"},
	{Symbol: "ᚨ", Name: "Ансуз", Meaning: "весть и знание; прислушайтесь к сказанному"},
	{Symbol: "ᚱ", Name: "Райдо", Meaning: "дорога и движение; путь важнее цели"},
	{Symbol: "ᚲ", Name: "Кеназ", Meaning: "факел и ясность; скрытое станет явным"},
	{Symbol: "ᚷ", Name: "Гебо", Meaning: "дар и союз; отдавая — получаете"},
	{Symbol: "ᚹ", Name: "Вуньо", Meaning: "радость и лад; день обещает светлое"},
	{Symbol: "ᚺ", Name: "Хагалаз", Meaning: "град и разрушение; старое должно уйти"},
	{Symbol: "ᚾ", Name: "Наутиз", Meaning: "нужда и выдержка; терпение вознаградится"},
	{Symbol: "ᛁ", Name: "Иса", Meaning: "лёд и пауза; не торопите события"},
	{Symbol: "ᛃ", Name: "Йера", Meaning: "урожай и цикл; труд вернётся плодами"},
	{Symbol: "ᛇ", Name: "Эйваз", Meaning: "тис и стойкость; опора в вас самих"},
	{Symbol: "ᛈ", Name: "Перт", Meaning: "тайна и жребий; доверьтесь случаю"},
	{Symbol: "ᛉ", Name: "Альгиз", Meaning: "защита и чутьё; интуиция не подведёт"},
	{Symbol: "ᛊ", Name: "Соулу", Meaning: "солнце и победа; энергия на вашей стороне"},
	{Symbol: "ᛏ", Name: "Тейваз", Meaning: "воин и честь; отстаивайте своё"},
	{Symbol: "ᛒ", Name: "Беркана", Meaning: "берёза и рост; время новых начинаний"},
	{Symbol: "ᛖ", Name: "Эваз", Meaning: "конь и доверие; двигайтесь вместе"},
	{Symbol: "ᛗ", Name: "Манназ", Meaning: "человек и род; ищите поддержку у своих"},
	{Symbol: "ᛚ", Name: "Лагуз", Meaning: "вода и поток; плывите по течению"},
	{Symbol: "ᛜ", Name: "Ингуз", Meaning: "семя и завершение; закройте начатое"},
	{Symbol: "ᛞ", Name: "Дагаз", Meaning: "рассвет и прорыв; перемены к лучшему"},
	{Symbol: "ᛟ", Name: "Одал", Meaning: "наследие и дом; корни дают силу"},
}

// LogEntry — запись журнала ритуалов. Таблица append-only:
// записи не обновляются и не удаляются.
type LogEntry struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	RitualType string    `db:"ritual_type"` // rune | numerology | compatibility | wheel
	Mode       string    `db:"mode"`        // Для wheel: daily | vision, иначе пусто
	Detail     string    `db:"detail"`      // Что выпало, человекочитаемо
	CostOrbs   int       `db:"cost_orbs"`   // Списано орбов
	XPAwarded  int       `db:"xp_awarded"`  // Начислено опыта
	SpinID     *string   `db:"spin_id"`     // UUID вращения (только для wheel)
	CreatedAt  time.Time `db:"created_at"`
}

// Costs — стоимость и награда каждого ритуала.
type Costs struct {
	RuneCost          int
	NumerologyCost    int
	CompatibilityCost int
	RuneXP            int
	NumerologyXP      int
	CompatibilityXP   int
}

// CostsFromConfig собирает стоимости ритуалов из общего конфига.
func CostsFromConfig(cfg *config.Config) Costs {
	return Costs{
		RuneCost:          cfg.RitualRuneCost,
		NumerologyCost:    cfg.RitualNumerologyCost,
		CompatibilityCost: cfg.RitualCompatibilityCost,
		RuneXP:            cfg.RitualRuneXP,
		NumerologyXP:      cfg.RitualNumerologyXP,
		CompatibilityXP:   cfg.RitualCompatibilityXP,
	}
}

// RuneReading — результат ритуала «руна дня».
type RuneReading struct {
	Rune      Rune
	CostOrbs  int
	XPAwarded int
	OrbsLeft  int
}

// NumerologyReading — результат ритуала «число судьбы».
type NumerologyReading struct {
	Number    int
	Meaning   string
	CostOrbs  int
	XPAwarded int
	OrbsLeft  int
}

// CompatibilityReading — результат ритуала «совместимость».
type CompatibilityReading struct {
	NumberA   int
	NumberB   int
	Score     int // 0..100
	Verdict   string
	CostOrbs  int
	XPAwarded int
	OrbsLeft  int
}
