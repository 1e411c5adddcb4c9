package config

import (
	"os"
	"strconv"
	"time"
)

// Config carrega tudo do ambiente uma única vez.
// Os componentes recebem os valores no construtor, nunca leem env em runtime.
type Config struct {
	Env  string // "production", "development", "test"
	Port string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitUser string
	RabbitPass string
	RabbitHost string
	RabbitPort string

	// Presença da key decide entre chamada real e fallback determinístico
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	FeedURL string

	SyncBatchSize   int
	SyncMaxAttempts int
	SyncBackoffBase time.Duration
	KeepCompleted   int
	KeepFailed      int
	SyncCronSpec    string

	CacheTTL time.Duration

	JWTSecret    string
	DemoUsername string
	DemoPassword string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	ReportTo string
}

func Load() *Config {
	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RabbitUser: getEnv("RABBITMQ_USER", "guest"),
		RabbitPass: getEnv("RABBITMQ_PASS", "guest"),
		RabbitHost: getEnv("RABBITMQ_HOST", "localhost"),
		RabbitPort: getEnv("RABBITMQ_PORT", "5672"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		FeedURL: getEnv("FEED_URL", "https://randomuser.me/api/"),

		SyncBatchSize:   getEnvInt("SYNC_BATCH_SIZE", 10),
		SyncMaxAttempts: getEnvInt("SYNC_MAX_ATTEMPTS", 3),
		SyncBackoffBase: time.Duration(getEnvInt("SYNC_BACKOFF_MS", 2000)) * time.Millisecond,
		KeepCompleted:   getEnvInt("SYNC_KEEP_COMPLETED", 10),
		KeepFailed:      getEnvInt("SYNC_KEEP_FAILED", 5),
		SyncCronSpec:    getEnv("SYNC_CRON", "@hourly"),

		CacheTTL: time.Duration(getEnvInt("CACHE_TTL_MS", 300000)) * time.Millisecond,

		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		DemoUsername: getEnv("DEMO_USERNAME", "admin"),
		DemoPassword: getEnv("DEMO_PASSWORD", "password"),

		MailHost: os.Getenv("MAIL_HOST"),
		MailPort: getEnvInt("MAIL_PORT", 587),
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		ReportTo: os.Getenv("SYNC_REPORT_TO"),
	}
}

// IsTest desliga o cron e os health checks de infraestrutura nos testes.
func (c *Config) IsTest() bool {
	return c.Env == "test"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
