package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/walletbot/core/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, config.TONSourceStatic, cfg.Quotes.TONSource)
	assert.InDelta(t, 2.5, cfg.Quotes.TONStaticPrice, 1e-9)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "file-token"
quotes:
  ton_source: static
`)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("QUOTES_TON_SOURCE", "coingecko")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.Token)
	assert.Equal(t, config.TONSourceCoinGecko, cfg.Quotes.TONSource)
}

func TestNormalizeRejectsMissingToken(t *testing.T) {
	err := config.Normalize(&config.Config{})
	require.ErrorContains(t, err, "token")
}

func TestNormalizeRunModeAlias(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Token = "t"
	cfg.Telegram.RunMode = "polling"

	require.NoError(t, config.Normalize(cfg))
	assert.Equal(t, config.RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Token = "t"
	cfg.Telegram.RunMode = config.RunModeWebhook

	err := config.Normalize(cfg)
	require.ErrorContains(t, err, "webhook.url")
}

func TestNormalizeRejectsUnknownTONSource(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.Token = "t"
	cfg.Quotes.TONSource = "oracle"

	err := config.Normalize(cfg)
	require.ErrorContains(t, err, "ton_source")
}
