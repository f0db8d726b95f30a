package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken  string        `env:"TELEGRAM_BOT_TOKEN,required"`
	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	// MonitorInterval separates full passes; ItemInterval is the minimum
	// spacing between consecutive page fetches. Keep ItemInterval low but
	// non-zero or stores will start blocking the bot.
	MonitorInterval  time.Duration `env:"MONITOR_INTERVAL,default=2m"`
	ItemInterval     time.Duration `env:"ITEM_INTERVAL,default=2s"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT,default=10s"`
	FetchUserAgent   string        `env:"FETCH_USER_AGENT,default=Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"`
	FetchMaxFailures int           `env:"FETCH_MAX_FAILURES,default=5"`
	RemoveOnMatch    bool          `env:"REMOVE_ON_MATCH,default=false"`

	TelegramPollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT,default=60"`
	LogLevel            string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
