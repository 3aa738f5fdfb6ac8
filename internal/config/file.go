package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	Server struct {
		Addr            string  `yaml:"addr"`
		ShutdownTimeout string  `yaml:"shutdown_timeout"`
		SubmitRate      float64 `yaml:"submit_rate"`
		SubmitBurst     int     `yaml:"submit_burst"`
	} `yaml:"server"`
	Storage struct {
		Dir       string `yaml:"dir"`
		CacheTTL  string `yaml:"cache_ttl"`
		MaxOrders int    `yaml:"max_orders"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"storage"`
	Chat struct {
		APIURL   string `yaml:"api_url"`
		BotToken  string `yaml:"bot_token"`
		PublicKey string `yaml:"public_key"`
		OwnerID   string `yaml:"owner_id"`
	} `yaml:"chat"`
	Owner struct {
		PasswordHash string `yaml:"password_hash"`
		TokenSecret  string `yaml:"token_secret"`
	} `yaml:"owner"`
	Notify struct {
		Workers   int `yaml:"workers"`
		QueueSize int `yaml:"queue_size"`
	} `yaml:"notify"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}

	setString(&cfg.RunAddress, fc.Server.Addr)
	setString(&cfg.DataDir, fc.Storage.Dir)
	setString(&cfg.ChatAPIURL, fc.Chat.APIURL)
	setString(&cfg.BotToken, fc.Chat.BotToken)
	setString(&cfg.ChatPublicKey, fc.Chat.PublicKey)
	setString(&cfg.OwnerID, fc.Chat.OwnerID)
	setString(&cfg.OwnerPasswordHash, fc.Owner.PasswordHash)
	setString(&cfg.TokenSecret, fc.Owner.TokenSecret)
	setString(&cfg.LogLevel, fc.Log.Level)

	if fc.Storage.MaxOrders != 0 {
		cfg.MaxOrders = fc.Storage.MaxOrders
	}
	if fc.Notify.Workers != 0 {
		cfg.NotifyWorkers = fc.Notify.Workers
	}
	if fc.Notify.QueueSize != 0 {
		cfg.NotifyQueueSize = fc.Notify.QueueSize
	}
	if fc.Server.SubmitRate != 0 {
		cfg.SubmitRate = fc.Server.SubmitRate
	}
	if fc.Server.SubmitBurst != 0 {
		cfg.SubmitBurst = fc.Server.SubmitBurst
	}

	durations := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"storage.cache_ttl", fc.Storage.CacheTTL, &cfg.CacheTTL},
		{"storage.timeout", fc.Storage.Timeout, &cfg.StoreTimeout},
		{"server.shutdown_timeout", fc.Server.ShutdownTimeout, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s in config file: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
