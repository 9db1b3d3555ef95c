package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"arbicalc/internal/adapters/source/airtm"
	"arbicalc/internal/adapters/source/binancep2p"
	"arbicalc/internal/adapters/source/exchangerate"
	"arbicalc/internal/usecase/calculator"
)

type Config struct {
	HTTPAddr  string
	GRPCAddr  string // пусто = gRPC health выключен
	LogLevel  string
	LogPretty bool

	// Источники курса
	Asset           string
	Fiat            string
	TradeType       string
	P2PURL          string
	P2PRows         int
	P2PAverageOf    int
	AirTMURL        string
	ExchangeRateURL string
	SpotSymbol      string // пусто = источник Binance Spot выключен
	SourceTimeout   time.Duration

	DefaultRate float64
	RateMargin  float64
	CacheTTL    time.Duration
	RedisAddr   string // пусто = кэш в памяти

	APIRateLimit float64
	APIRateBurst int

	LLCCommissionDefault  decimal.Decimal
	UserCommissionDefault decimal.Decimal
}

// Load читает .env (если есть) и переменные окружения.
// Некорректные значения не валят старт: берётся дефолт, а текст предупреждения возвращается
// вызывающему, чтобы тот залогировал его уже настроенным логгером.
func Load() (Config, []string) {
	var warns []string
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warns = append(warns, fmt.Sprintf(".env not loaded: %v", err))
	}
	e := &env{warns: warns}

	cfg := Config{
		HTTPAddr:  e.str("HTTP_ADDR", ":8080"),
		GRPCAddr:  e.str("GRPC_ADDR", ""),
		LogLevel:  e.str("LOG_LEVEL", "info"),
		LogPretty: e.boolean("LOG_PRETTY", false),

		Asset:           strings.ToUpper(e.str("RATE_ASSET", "USDT")),
		Fiat:            strings.ToUpper(e.str("RATE_FIAT", "BOB")),
		TradeType:       strings.ToUpper(e.str("RATE_TRADE_TYPE", "SELL")),
		P2PURL:          e.str("P2P_URL", binancep2p.DefaultURL),
		P2PRows:         e.positiveInt("P2P_ROWS", 10),
		P2PAverageOf:    e.positiveInt("P2P_AVERAGE_OF", 5),
		AirTMURL:        e.str("AIRTM_URL", airtm.DefaultURL),
		ExchangeRateURL: e.str("EXCHANGERATE_URL", exchangerate.DefaultURL),
		SpotSymbol:      strings.ToUpper(e.str("BINANCE_SPOT_SYMBOL", "")),
		SourceTimeout:   e.duration("RATE_SOURCE_TIMEOUT", 5*time.Second),

		DefaultRate: e.positiveFloat("RATE_DEFAULT", 6.97),
		RateMargin:  e.nonNegativeFloat("RATE_MARGIN", 0),
		CacheTTL:    e.duration("RATE_CACHE_TTL", 30*time.Minute),
		RedisAddr:   e.str("REDIS_ADDR", ""),

		APIRateLimit: e.positiveFloat("API_RATE_LIMIT", 5),
		APIRateBurst: e.positiveInt("API_RATE_BURST", 20),

		LLCCommissionDefault:  e.percent("LLC_COMMISSION_DEFAULT", decimal.NewFromInt(30)),
		UserCommissionDefault: e.percent("USER_COMMISSION_DEFAULT", decimal.NewFromInt(50)),
	}
	return cfg, e.warns
}

type env struct{ warns []string }

func (e *env) warn(key, raw, def string, err error) {
	e.warns = append(e.warns, fmt.Sprintf("invalid %s %q, using default %s: %v", key, raw, def, err))
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *env) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) boolean(key string, def bool) bool {
	raw, ok := e.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		e.warn(key, raw, strconv.FormatBool(def), err)
		return def
	}
	return v
}

func (e *env) positiveInt(key string, def int) int {
	raw, ok := e.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err == nil && v <= 0 {
		err = fmt.Errorf("must be > 0")
	}
	if err != nil {
		e.warn(key, raw, strconv.Itoa(def), err)
		return def
	}
	return v
}

func (e *env) float(key string, def float64, ok func(float64) bool, rule string) float64 {
	raw, set := e.lookup(key)
	if !set {
		return def
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err == nil && !ok(v) {
		err = fmt.Errorf("must be %s", rule)
	}
	if err != nil {
		e.warn(key, raw, strconv.FormatFloat(def, 'f', -1, 64), err)
		return def
	}
	return v
}

func (e *env) positiveFloat(key string, def float64) float64 {
	return e.float(key, def, func(v float64) bool { return v > 0 }, "> 0")
}

func (e *env) nonNegativeFloat(key string, def float64) float64 {
	return e.float(key, def, func(v float64) bool { return v >= 0 }, ">= 0")
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	raw, ok := e.lookup(key)
	if !ok {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err == nil && v <= 0 {
		err = fmt.Errorf("must be > 0")
	}
	if err != nil {
		e.warn(key, raw, def.String(), err)
		return def
	}
	return v
}

func (e *env) percent(key string, def decimal.Decimal) decimal.Decimal {
	raw, ok := e.lookup(key)
	if !ok {
		return def
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err == nil && (v.IsNegative() || v.GreaterThan(decimal.NewFromInt(100))) {
		err = fmt.Errorf("must be between 0 and 100")
	}
	if err != nil {
		e.warn(key, raw, def.String(), err)
		return def
	}
	return v
}

// FormDefaults — значения формы: курс RATE_DEFAULT и комиссии из окружения.
func (c Config) FormDefaults() calculator.Defaults {
	d := calculator.StandardDefaults()
	if c.DefaultRate > 0 {
		d.ExchangeRate = decimal.NewFromFloat(c.DefaultRate)
	}
	d.LLCCommissionPct = c.LLCCommissionDefault
	d.UserCommissionPct = c.UserCommissionDefault
	return d
}
