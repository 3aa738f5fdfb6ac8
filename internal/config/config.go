package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from file, environment and flags.
type Config struct {
	RunAddress        string
	DataDir           string
	CacheTTL          time.Duration
	MaxOrders         int
	StoreTimeout      time.Duration
	ChatAPIURL        string
	BotToken          string
	ChatPublicKey     string
	OwnerID           string
	OwnerPasswordHash string
	TokenSecret       string
	NotifyWorkers     int
	NotifyQueueSize   int
	SubmitRate        float64
	SubmitBurst       int
	ShutdownTimeout   time.Duration
	LogLevel          string
}

const (
	defaultRunAddress      = ":8080"
	defaultDataDir         = "./data"
	defaultCacheTTL        = 30 * time.Second
	defaultMaxOrders       = 500
	defaultStoreTimeout    = 5 * time.Second
	defaultChatAPIURL      = "https://discord.com/api/v10"
	defaultTokenSecret     = "change-me-in-production"
	defaultNotifyWorkers   = 2
	defaultNotifyQueueSize = 64
	defaultSubmitRate      = 0.2
	defaultSubmitBurst     = 3
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

var snowflakePattern = regexp.MustCompile(`^\d{17,20}$`)

// Load parses configuration from the optional YAML file, environment variables and flags.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := defaults()

	if path := configPath(args, lookup); path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.RunAddress = getString(lookup, "RUN_ADDRESS", cfg.RunAddress)
	cfg.DataDir = getString(lookup, "DATA_DIR", cfg.DataDir)
	cfg.CacheTTL = getDuration(lookup, "CACHE_TTL", cfg.CacheTTL)
	cfg.MaxOrders = getInt(lookup, "MAX_ORDERS", cfg.MaxOrders)
	cfg.StoreTimeout = getDuration(lookup, "STORE_TIMEOUT", cfg.StoreTimeout)
	cfg.ChatAPIURL = getString(lookup, "CHAT_API_URL", cfg.ChatAPIURL)
	cfg.BotToken = getString(lookup, "BOT_TOKEN", cfg.BotToken)
	cfg.ChatPublicKey = getString(lookup, "CHAT_PUBLIC_KEY", cfg.ChatPublicKey)
	cfg.OwnerID = getString(lookup, "OWNER_ID", cfg.OwnerID)
	cfg.OwnerPasswordHash = getString(lookup, "OWNER_PASSWORD_HASH", cfg.OwnerPasswordHash)
	cfg.TokenSecret = getString(lookup, "TOKEN_SECRET", cfg.TokenSecret)
	cfg.NotifyWorkers = getInt(lookup, "NOTIFY_WORKERS", cfg.NotifyWorkers)
	cfg.NotifyQueueSize = getInt(lookup, "NOTIFY_QUEUE", cfg.NotifyQueueSize)
	cfg.SubmitRate = getFloat(lookup, "SUBMIT_RATE", cfg.SubmitRate)
	cfg.SubmitBurst = getInt(lookup, "SUBMIT_BURST", cfg.SubmitBurst)
	cfg.ShutdownTimeout = getDuration(lookup, "SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.LogLevel = getString(lookup, "LOG_LEVEL", cfg.LogLevel)

	fs := flag.NewFlagSet("orderdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configFile         string
		cacheTTLStr        = cfg.CacheTTL.String()
		storeTimeoutStr    = cfg.StoreTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&configFile, "config", "", "Path to YAML configuration file")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory holding orders.json and config.json")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "How long a loaded orders snapshot stays fresh")
	fs.IntVar(&cfg.MaxOrders, "max-orders", cfg.MaxOrders, "Maximum number of retained orders")
	fs.StringVar(&storeTimeoutStr, "store-timeout", storeTimeoutStr, "Deadline for a single file read or write")
	fs.StringVar(&cfg.ChatAPIURL, "chat-url", cfg.ChatAPIURL, "Chat platform REST API base URL")
	fs.StringVar(&cfg.BotToken, "bot-token", cfg.BotToken, "Bot token for the chat platform")
	fs.StringVar(&cfg.ChatPublicKey, "chat-public-key", cfg.ChatPublicKey, "Hex ed25519 key that signs chat interactions")
	fs.StringVar(&cfg.OwnerID, "owner", cfg.OwnerID, "Chat user id of the owner")
	fs.StringVar(&cfg.OwnerPasswordHash, "owner-password-hash", cfg.OwnerPasswordHash, "Bcrypt hash of the owner HTTP password")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing owner tokens")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Pending notification queue size")
	fs.Float64Var(&cfg.SubmitRate, "submit-rate", cfg.SubmitRate, "Allowed submissions per second per client")
	fs.IntVar(&cfg.SubmitBurst, "submit-burst", cfg.SubmitBurst, "Submission burst per client")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.CacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.StoreTimeout, err = time.ParseDuration(storeTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.BotToken, err = readSecretFile(lookup, "BOT_TOKEN_FILE", cfg.BotToken); err != nil {
		return nil, err
	}

	if cfg.TokenSecret, err = readSecretFile(lookup, "TOKEN_SECRET_FILE", cfg.TokenSecret); err != nil {
		return nil, err
	}

	normalize(cfg)

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("bot token must be provided")
	}

	if !snowflakePattern.MatchString(cfg.OwnerID) {
		return nil, fmt.Errorf("owner id must be a 17 to 20 digit chat user id")
	}

	if cfg.ChatPublicKey != "" && cfg.InteractionKey() == nil {
		return nil, fmt.Errorf("chat public key must be %d hex-encoded bytes", ed25519.PublicKeySize)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	return cfg, nil
}

// InteractionKey decodes ChatPublicKey. It returns nil when the key is unset or malformed.
func (c *Config) InteractionKey() ed25519.PublicKey {
	key, err := hex.DecodeString(c.ChatPublicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return nil
	}
	return ed25519.PublicKey(key)
}

func defaults() *Config {
	return &Config{
		RunAddress:      defaultRunAddress,
		DataDir:         defaultDataDir,
		CacheTTL:        defaultCacheTTL,
		MaxOrders:       defaultMaxOrders,
		StoreTimeout:    defaultStoreTimeout,
		ChatAPIURL:      defaultChatAPIURL,
		TokenSecret:     defaultTokenSecret,
		NotifyWorkers:   defaultNotifyWorkers,
		NotifyQueueSize: defaultNotifyQueueSize,
		SubmitRate:      defaultSubmitRate,
		SubmitBurst:     defaultSubmitBurst,
		ShutdownTimeout: defaultShutdownTimeout,
		LogLevel:        defaultLogLevel,
	}
}

func normalize(cfg *Config) {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	if cfg.MaxOrders <= 0 {
		cfg.MaxOrders = defaultMaxOrders
	}

	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.SubmitRate <= 0 {
		cfg.SubmitRate = defaultSubmitRate
	}

	if cfg.SubmitBurst <= 0 {
		cfg.SubmitBurst = defaultSubmitBurst
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.ChatAPIURL = strings.TrimRight(cfg.ChatAPIURL, "/")
	cfg.ChatPublicKey = strings.TrimSpace(cfg.ChatPublicKey)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
}

// configPath resolves the YAML file location ahead of flag parsing.
func configPath(args []string, lookup envLookup) string {
	path := getString(lookup, "CONFIG_FILE", "")
	for i := 0; i < len(args); i++ {
		arg := strings.TrimLeft(args[i], "-")
		if arg == args[i] {
			continue
		}
		switch {
		case arg == "config" && i+1 < len(args):
			path = args[i+1]
			i++
		case strings.HasPrefix(arg, "config="):
			path = strings.TrimPrefix(arg, "config=")
		}
	}
	return path
}

func readSecretFile(lookup envLookup, key, current string) (string, error) {
	path, ok := lookup(key)
	if !ok || path == "" {
		return current, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	return strings.TrimSpace(string(content)), nil
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

func getFloat(lookup envLookup, key string, def float64) float64 {
	if v, ok := lookup(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
