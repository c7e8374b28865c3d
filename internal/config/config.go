package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL        string
	DBMaxConns   int32
	StoreBackend string

	// PublicBaseURL + APIPrefix is the root every hypermedia link is built from.
	PublicBaseURL string
	APIPrefix     string

	OTelEnabled    bool
	OTelEndpoint   string
	ServiceName    string
	ServiceVersion string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitRequests int
	RateLimitWindow   time.Duration

	CORSAllowedOrigins []string
	MaxBodyBytes       int64
}

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Load reads an optional .env file and then the process environment.
func Load() Config {
	// a missing .env is the normal case outside local dev
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		DBURL:        getEnv("DATABASE_URL", buildDBURL()),
		DBMaxConns:   int32(getEnvInt("DB_MAX_CONNS", 10)),
		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", StorePostgres)),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		APIPrefix:     normalizePrefix(getEnv("API_PREFIX", "/api/event-manager")),

		OTelEnabled:    getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "event-manager"),
		ServiceVersion: getEnv("SERVICE_VERSION", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}
}

// LinkBaseURL is the absolute prefix for every href the API emits.
func (c Config) LinkBaseURL() string {
	return strings.TrimRight(c.PublicBaseURL, "/") + c.APIPrefix
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "eventmanager")
	pass := getEnv("DB_PASSWORD", "eventmanager")
	name := getEnv("DB_NAME", "eventmanager")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}

	return "/" + strings.Trim(p, "/")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean env var, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}
		return b
	}
	return fallback
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c Config) String() string {
	return fmt.Sprintf("env=%s port=%d store=%s base=%s", c.Env, c.Port, c.StoreBackend, c.LinkBaseURL())
}
