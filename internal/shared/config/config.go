package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPollInterval   = 3000 * time.Millisecond
	defaultBackendTimeout = 30 * time.Second
)

// Config holds application configuration.
type Config struct {
	Env             string
	Port            string
	CORSAllowOrigin []string

	BackendBaseURL string
	BackendToken   string
	BackendTimeout time.Duration
	BackendRPS     float64

	PollInterval   time.Duration
	EnableBoosting bool

	KVBackend     string
	KVDataDir     string
	KVBreaker     bool
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AWSRegion     string
	S3Bucket      string
	S3Prefix      string
	SSEKMSKeyID   string
	SQSQueueURL   string

	AppLanguage           string
	ContentSourceLanguage string
	ContentTargetLanguage string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	backendURL := strings.TrimRight(strings.TrimSpace(os.Getenv("BACKEND_BASE_URL")), "/")
	if env == "production" && backendURL == "" {
		log.Printf("BACKEND_BASE_URL is required in production")
	}

	return Config{
		Env:             env,
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:8081")),

		BackendBaseURL: backendURL,
		BackendToken:   strings.TrimSpace(os.Getenv("BACKEND_TOKEN")),
		BackendTimeout: getSeconds("BACKEND_TIMEOUT_SECONDS", defaultBackendTimeout),
		BackendRPS:     getFloat("BACKEND_RPS", 2),

		PollInterval:   getMillis("POLL_INTERVAL_MS", defaultPollInterval),
		EnableBoosting: getBool("ENABLE_METRIC_BOOSTING", true),

		KVBackend:     normalizeKVBackend(getEnv("KV_BACKEND", "sqlite")),
		KVDataDir:     getEnv("KV_DATA_DIR", "./data"),
		KVBreaker:     getBool("KV_BREAKER", true),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		AWSRegion:     getEnv("AWS_REGION", ""),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Prefix:      getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:   getEnv("SSE_KMS_KEY_ID", ""),
		SQSQueueURL:   strings.TrimSpace(os.Getenv("SQS_QUEUE_URL")),

		AppLanguage:           getEnv("APP_LANGUAGE", "en"),
		ContentSourceLanguage: getEnv("CONTENT_SOURCE_LANGUAGE", "en"),
		ContentTargetLanguage: getEnv("CONTENT_TARGET_LANGUAGE", "es"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool %q, using %t", key, raw, def)
		return def
	}
	return val
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		log.Printf("config %s invalid number %q, using %g", key, raw, def)
		return def
	}
	return val
}

func getMillis(key string, def time.Duration) time.Duration {
	ms := getInt(key, -1)
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func getSeconds(key string, def time.Duration) time.Duration {
	sec := getInt(key, -1)
	if sec <= 0 {
		return def
	}
	return time.Duration(sec) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}

func normalizeKVBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "redis":
		return "redis"
	case "s3":
		return "s3"
	case "file", "local":
		return "file"
	case "memory", "mem":
		return "memory"
	default:
		return "sqlite"
	}
}
