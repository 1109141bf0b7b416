package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings that are common for all bots.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// QuotesConfig holds settings for the external price providers.
type QuotesConfig struct {
	// OneInchBaseURL overrides the 1inch quote endpoint; empty -> production default.
	OneInchBaseURL string `yaml:"oneinch_base_url" envconfig:"ONE_INCH_BASE_URL"`
	OneInchAPIKey  string `yaml:"oneinch_api_key" envconfig:"ONE_INCH_API_KEY"`
	// CoinGeckoBaseURL overrides the CoinGecko API root; empty -> production default.
	CoinGeckoBaseURL string `yaml:"coingecko_base_url" envconfig:"COINGECKO_BASE_URL"`
	// TONSource selects the TON/USDT price source: "static" or "coingecko".
	TONSource string `yaml:"ton_source" envconfig:"QUOTES_TON_SOURCE"`
	// TONStaticPrice is the fixed TON/USDT reference price used by the static source.
	TONStaticPrice float64 `yaml:"ton_static_price" envconfig:"QUOTES_TON_STATIC_PRICE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// TONSourceStatic selects the fixed reference price for TON quotes.
	TONSourceStatic = "static"
	// TONSourceCoinGecko selects the live CoinGecko spot price for TON quotes.
	TONSourceCoinGecko = "coingecko"
)

const defaultTONStaticPrice = 2.5

// Config aggregates the configuration that belongs to the wallet bot.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Logging  LoggingConfig  `yaml:"logging"`
	Quotes   QuotesConfig   `yaml:"quotes"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	src := strings.ToLower(strings.TrimSpace(cfg.Quotes.TONSource))
	if src == "" {
		src = TONSourceStatic
	}
	switch src {
	case TONSourceStatic, TONSourceCoinGecko:
	default:
		return fmt.Errorf("invalid quotes.ton_source %q; allowed: static, coingecko", cfg.Quotes.TONSource)
	}
	cfg.Quotes.TONSource = src

	if cfg.Quotes.TONStaticPrice < 0 {
		return fmt.Errorf("quotes.ton_static_price must be >= 0")
	}
	if cfg.Quotes.TONStaticPrice == 0 {
		cfg.Quotes.TONStaticPrice = defaultTONStaticPrice
	}

	return nil
}
