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
	RunAddress    string
	DatabaseURI   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthSecret   string
	PickupSecret string

	WhatsAppAPIURL     string
	WhatsAppToken      string
	WhatsAppPhoneID    string
	WebhookVerifyToken string

	PaymentAPIURL string

	SessionTTL      time.Duration
	DedupTTL        time.Duration
	PickupCodeTTL   time.Duration
	WorkerPoolSize  int
	QueueSize       int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultAuthSecret      = "change-me-in-production"
	defaultSessionTTL      = 30 * time.Minute
	defaultDedupTTL        = 24 * time.Hour
	defaultPickupCodeTTL   = 90 * time.Second
	defaultWorkerPoolSize  = 4
	defaultQueueSize       = 256
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		RedisAddr:          getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:      getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:            getInt(lookup, "REDIS_DB", 0),
		AuthSecret:         getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		PickupSecret:       getString(lookup, "PICKUP_SECRET", ""),
		WhatsAppAPIURL:     getString(lookup, "WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
		WhatsAppToken:      getString(lookup, "WHATSAPP_TOKEN", ""),
		WhatsAppPhoneID:    getString(lookup, "WHATSAPP_PHONE_ID", ""),
		WebhookVerifyToken: getString(lookup, "WEBHOOK_VERIFY_TOKEN", ""),
		PaymentAPIURL:      getString(lookup, "PAYMENT_API_URL", ""),
		SessionTTL:         getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		DedupTTL:           getDuration(lookup, "DEDUP_TTL", defaultDedupTTL),
		PickupCodeTTL:      getDuration(lookup, "PICKUP_CODE_TTL", defaultPickupCodeTTL),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		QueueSize:          getInt(lookup, "QUEUE_SIZE", defaultQueueSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("tuckshop", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sessionTTLStr      = cfg.SessionTTL.String()
		dedupTTLStr        = cfg.DedupTTL.String()
		pickupTTLStr       = cfg.PickupCodeTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.PickupSecret, "pickup-secret", cfg.PickupSecret, "Secret for signing pickup payloads")
	fs.StringVar(&cfg.PaymentAPIURL, "payment-url", cfg.PaymentAPIURL, "Payment provider base URL")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent message workers")
	fs.IntVar(&cfg.QueueSize, "queue-size", cfg.QueueSize, "Inbound message queue capacity")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Conversation inactivity window")
	fs.StringVar(&dedupTTLStr, "dedup-ttl", dedupTTLStr, "Processed message marker retention")
	fs.StringVar(&pickupTTLStr, "pickup-ttl", pickupTTLStr, "Cash pickup code validity window")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SessionTTL, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}
	if cfg.DedupTTL, err = time.ParseDuration(dedupTTLStr); err != nil {
		return nil, fmt.Errorf("invalid dedup ttl: %w", err)
	}
	if cfg.PickupCodeTTL, err = time.ParseDuration(pickupTTLStr); err != nil {
		return nil, fmt.Errorf("invalid pickup ttl: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.PickupSecret == "" {
		cfg.PickupSecret = cfg.AuthSecret
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.DedupTTL <= 0 {
		cfg.DedupTTL = defaultDedupTTL
	}
	if cfg.PickupCodeTTL <= 0 {
		cfg.PickupCodeTTL = defaultPickupCodeTTL
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis address must be provided")
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
