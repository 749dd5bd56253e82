package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	BotToken          string
	OwnerChatID       int64
	TokenSecret       string
	AdminPasswordHash string
	WebhookSecret     string
	PollTimeout       time.Duration
	BroadcastWorkers  int
	SubmitMinInterval time.Duration
	RecentOrdersLimit int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultTokenSecret       = "change-me-in-production"
	defaultPollTimeout       = 30 * time.Second
	defaultBroadcastWorkers  = 4
	defaultSubmitMinInterval = 3 * time.Second
	defaultRecentOrders      = 20
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		BotToken:          getString(lookup, "BOT_TOKEN", ""),
		OwnerChatID:       getInt64(lookup, "OWNER_CHAT_ID", 0),
		TokenSecret:       getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		AdminPasswordHash: getString(lookup, "ADMIN_PASSWORD_HASH", ""),
		WebhookSecret:     getString(lookup, "WEBHOOK_SECRET", ""),
		PollTimeout:       getDuration(lookup, "POLL_TIMEOUT", defaultPollTimeout),
		BroadcastWorkers:  getInt(lookup, "BROADCAST_WORKERS", defaultBroadcastWorkers),
		SubmitMinInterval: getDuration(lookup, "SUBMIT_MIN_INTERVAL", defaultSubmitMinInterval),
		RecentOrdersLimit: getInt(lookup, "RECENT_ORDERS_LIMIT", defaultRecentOrders),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("teremok", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollTimeoutStr     = cfg.PollTimeout.String()
		submitIntervalStr  = cfg.SubmitMinInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.BotToken, "t", cfg.BotToken, "Telegram bot token")
	fs.Int64Var(&cfg.OwnerChatID, "owner", cfg.OwnerChatID, "Owner Telegram chat ID")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing admin API tokens")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", cfg.WebhookSecret, "Webhook path secret (empty enables long polling)")
	fs.IntVar(&cfg.BroadcastWorkers, "broadcast-workers", cfg.BroadcastWorkers, "Number of concurrent broadcast senders")
	fs.IntVar(&cfg.RecentOrdersLimit, "recent-orders", cfg.RecentOrdersLimit, "Orders shown in the owner's recent view")
	fs.StringVar(&pollTimeoutStr, "poll-timeout", pollTimeoutStr, "Telegram long-poll timeout")
	fs.StringVar(&submitIntervalStr, "submit-interval", submitIntervalStr, "Minimum interval between order submissions per user")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PollTimeout, err = time.ParseDuration(pollTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid poll timeout: %w", err)
	}

	if cfg.SubmitMinInterval, err = time.ParseDuration(submitIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid submit interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if tokenFile, ok := lookup("BOT_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read bot token file: %w", err)
		}
		cfg.BotToken = strings.TrimSpace(string(content))
	}

	if cfg.BroadcastWorkers <= 0 {
		cfg.BroadcastWorkers = defaultBroadcastWorkers
	}

	if cfg.RecentOrdersLimit <= 0 {
		cfg.RecentOrdersLimit = defaultRecentOrders
	}

	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = defaultPollTimeout
	}

	if cfg.SubmitMinInterval < 0 {
		cfg.SubmitMinInterval = defaultSubmitMinInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("bot token must be provided")
	}

	if cfg.OwnerChatID <= 0 {
		return nil, fmt.Errorf("owner chat ID must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
