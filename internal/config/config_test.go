package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `{"rpc_list": ["https://s.altnet.rippletest.net:51234"]}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://s.altnet.rippletest.net:51234"}, cfg.RPCList)
	assert.Equal(t, time.Second, cfg.PollInterval())
	assert.Equal(t, DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, DefaultTransientRetries, cfg.TransientRetries)
	assert.Equal(t, DefaultLedgerOffset, cfg.LedgerOffset)
	assert.Equal(t, DefaultCacheSizeMB, cfg.CacheSizeMB)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"rpc_list": ["http://localhost:5005"], "max_attempts": 5}`)
	t.Setenv("XRPL_SDK_RPC_LIST", "http://a:5005, http://b:5005")
	t.Setenv("XRPL_SDK_MAX_ATTEMPTS", "9")
	t.Setenv("XRPL_SDK_WEBSOCKET_URL", "wss://s.altnet.rippletest.net:51233")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a:5005", "http://b:5005"}, cfg.RPCList)
	assert.Equal(t, 9, cfg.MaxAttempts)
	assert.Equal(t, []string{"http://a:5005", "http://b:5005", "wss://s.altnet.rippletest.net:51233"}, cfg.Endpoints())
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XRPL_SDK_WEBSOCKET_URL", "ws://localhost:6006")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.RPCList)
	assert.Equal(t, "ws://localhost:6006", cfg.WebSocketURL)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no endpoints", `{}`, "both empty"},
		{"bad rpc scheme", `{"rpc_list": ["ftp://x"]}`, "invalid RPC URL protocol"},
		{"bad ws scheme", `{"websocket_url": "http://x"}`, "invalid WebSocket URL protocol"},
		{"bad poll interval", `{"rpc_list": ["http://x"], "poll_interval_ms": 0}`, "poll_interval_ms"},
		{"bad offset", `{"rpc_list": ["http://x"], "ledger_offset": -1}`, "ledger_offset"},
		{"bad fee", `{"rpc_list": ["http://x"], "default_fee": "1.5"}`, "default_fee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
