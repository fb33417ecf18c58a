// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	RPCList          []string `mapstructure:"rpc_list"`
	WebSocketURL     string   `mapstructure:"websocket_url"`
	PollIntervalMs   int      `mapstructure:"poll_interval_ms"`
	MaxAttempts      int      `mapstructure:"max_attempts"`
	TransientRetries int      `mapstructure:"transient_retries"`
	LedgerOffset     int      `mapstructure:"ledger_offset"`
	DefaultFee       string   `mapstructure:"default_fee"`
	DebugLogging     bool     `mapstructure:"debug_logging"`
	LogFile          string   `mapstructure:"log_file"`
	WalletKey        string   `mapstructure:"wallet_key"`
	CacheSizeMB      int      `mapstructure:"cache_size_mb"`
}

const (
	EnvPrefix = "XRPL_SDK"

	DefaultPollIntervalMs   = 1000
	DefaultMaxAttempts      = 20
	DefaultTransientRetries = 3
	DefaultLedgerOffset     = 20
	DefaultCacheSizeMB      = 16
)

// LoadConfig загружает конфигурацию из файла, если он указан, и применяет
// переменные окружения XRPL_SDK_*
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"rpc_list":          []string{},
		"websocket_url":     "",
		"poll_interval_ms":  DefaultPollIntervalMs,
		"max_attempts":      DefaultMaxAttempts,
		"transient_retries": DefaultTransientRetries,
		"ledger_offset":     DefaultLedgerOffset,
		"default_fee":       "",
		"debug_logging":     false,
		"log_file":          "",
		"wallet_key":        "",
		"cache_size_mb":     DefaultCacheSizeMB,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cleanRPCList(&cfg)

	return &cfg, validateConfig(&cfg)
}

// PollInterval возвращает паузу между запросами статуса транзакции
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Endpoints returns every configured node URL, JSON-RPC ones first.
func (c *Config) Endpoints() []string {
	endpoints := append([]string(nil), c.RPCList...)
	if c.WebSocketURL != "" {
		endpoints = append(endpoints, c.WebSocketURL)
	}
	return endpoints
}

func validateConfig(cfg *Config) error {
	if len(cfg.RPCList) == 0 && cfg.WebSocketURL == "" {
		return errors.New("rpc_list and websocket_url are both empty")
	}
	if cfg.WebSocketURL != "" {
		if err := validateURLWithCache(cfg.WebSocketURL, "ws"); err != nil {
			return errors.New("invalid WebSocket URL protocol")
		}
	}
	for _, rpcURL := range cfg.RPCList {
		if err := validateURLWithCache(rpcURL, "http"); err != nil {
			return errors.New("invalid RPC URL protocol")
		}
	}
	return validateNumericParams(cfg)
}

func validateNumericParams(cfg *Config) error {
	if cfg.PollIntervalMs <= 0 {
		return errors.New("invalid poll_interval_ms")
	}
	if cfg.MaxAttempts <= 0 {
		return errors.New("invalid max_attempts")
	}
	if cfg.TransientRetries < 0 {
		return errors.New("invalid transient_retries")
	}
	if cfg.LedgerOffset <= 0 {
		return errors.New("invalid ledger_offset")
	}
	if cfg.CacheSizeMB < 0 {
		return errors.New("invalid cache_size_mb")
	}
	if cfg.DefaultFee != "" && strings.Trim(cfg.DefaultFee, "0123456789") != "" {
		return errors.New("default_fee must be a number of drops")
	}
	return nil
}

var urlCache sync.Map

func validateURLWithCache(rawURL string, protocol string) error {
	key := protocol + "|" + rawURL
	if _, ok := urlCache.Load(key); ok {
		return nil
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) || parsed.Host == "" {
		return errors.New("invalid URL protocol")
	}
	urlCache.Store(key, parsed)
	return nil
}

// cleanRPCList trims the entries of rpc_list, which may come from a comma
// separated XRPL_SDK_RPC_LIST.
func cleanRPCList(cfg *Config) {
	var cleanRPCs []string
	for _, rpc := range cfg.RPCList {
		clean := strings.TrimSpace(rpc)
		if clean != "" {
			cleanRPCs = append(cleanRPCs, clean)
		}
	}
	cfg.RPCList = cleanRPCs
}
