package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort         string
	StoreDriver     string
	DBDSN           string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTExpiresMin   int
	AccountLatency  time.Duration
	RegisterLatency time.Duration
	DraftTTL        time.Duration
	DraftMax        int
	NotifyBridge    bool
	FrontendBaseURL string
	LogLevel        string
	LogJSON         bool
}

func Load() Config {
	driver := get("STORE_DRIVER", "memory")
	dsn := get("DB_DSN", "")
	if driver == "postgres" {
		dsn = must("DB_DSN")
	}
	return Config{
		AppPort:         get("APP_PORT", "8080"),
		StoreDriver:     driver,
		DBDSN:           dsn,
		RedisAddr:       get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   get("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),
		JWTSecret:       must("JWT_SECRET"),
		JWTExpiresMin:   getInt("JWT_EXPIRES_MIN", 10080),
		AccountLatency:  time.Duration(getInt("ACCOUNT_LATENCY_MS", 1000)) * time.Millisecond,
		RegisterLatency: time.Duration(getInt("REGISTER_LATENCY_MS", 2000)) * time.Millisecond,
		DraftTTL:        time.Duration(getInt("WIZARD_DRAFT_TTL_MIN", 60)) * time.Minute,
		DraftMax:        getInt("WIZARD_DRAFT_MAX", 10000),
		NotifyBridge:    getBool("NOTIFY_BRIDGE", false),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),
		LogLevel:        get("LOG_LEVEL", "info"),
		LogJSON:         getBool("LOG_JSON", false),
	}
}

// UsesRedis reports whether any component needs a Redis client.
func (c Config) UsesRedis() bool {
	return c.StoreDriver == "redis" || c.NotifyBridge
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	n, err := strconv.Atoi(get(k, ""))
	if err != nil {
		return def
	}
	return n
}

func getBool(k string, def bool) bool {
	b, err := strconv.ParseBool(get(k, ""))
	if err != nil {
		return def
	}
	return b
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
