package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	TokenSecret       string
	CartSessionMaxAge time.Duration
	DedupWindow       time.Duration
	EventPollInterval time.Duration
	WorkerPoolSize    int
	MaxEventsBatch    int
	MaxEventAttempts  int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultTokenSecret       = "change-me-in-production"
	defaultCartSessionMaxAge = 30 * time.Minute
	defaultDedupWindow       = 5 * time.Minute
	defaultEventPollInterval = 2 * time.Second
	defaultWorkerPoolSize    = 4
	defaultMaxEventsBatch    = 32
	defaultMaxEventAttempts  = 5
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
		TokenSecret:       getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		CartSessionMaxAge: getDuration(lookup, "CART_SESSION_MAX_AGE", defaultCartSessionMaxAge),
		DedupWindow:       getDuration(lookup, "NOTIFICATION_DEDUP_WINDOW", defaultDedupWindow),
		EventPollInterval: getDuration(lookup, "EVENT_POLL_INTERVAL", defaultEventPollInterval),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxEventsBatch:    getInt(lookup, "EVENT_BATCH_SIZE", defaultMaxEventsBatch),
		MaxEventAttempts:  getInt(lookup, "EVENT_MAX_ATTEMPTS", defaultMaxEventAttempts),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("docflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionMaxAgeStr   = cfg.CartSessionMaxAge.String()
		dedupWindowStr     = cfg.DedupWindow.String()
		pollIntervalStr    = cfg.EventPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&sessionMaxAgeStr, "session-max-age", sessionMaxAgeStr, "Cart session freshness window")
	fs.StringVar(&dedupWindowStr, "dedup-window", dedupWindowStr, "Notification dedup window")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between outbox polls")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent notification workers")
	fs.IntVar(&cfg.MaxEventsBatch, "poll-batch", cfg.MaxEventsBatch, "Maximum status events per polling batch")
	fs.IntVar(&cfg.MaxEventAttempts, "event-attempts", cfg.MaxEventAttempts, "Dispatch attempts before an event is parked")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.CartSessionMaxAge, err = time.ParseDuration(sessionMaxAgeStr); err != nil {
		return nil, fmt.Errorf("invalid session max age: %w", err)
	}

	if cfg.DedupWindow, err = time.ParseDuration(dedupWindowStr); err != nil {
		return nil, fmt.Errorf("invalid dedup window: %w", err)
	}

	if cfg.EventPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.CartSessionMaxAge <= 0 {
		cfg.CartSessionMaxAge = defaultCartSessionMaxAge
	}

	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = defaultDedupWindow
	}

	if cfg.EventPollInterval <= 0 {
		cfg.EventPollInterval = defaultEventPollInterval
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxEventsBatch <= 0 {
		cfg.MaxEventsBatch = defaultMaxEventsBatch
	}

	if cfg.MaxEventAttempts <= 0 {
		cfg.MaxEventAttempts = defaultMaxEventAttempts
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
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

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
