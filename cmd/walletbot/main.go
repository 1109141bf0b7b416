package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	corecmd "github.com/m3rciful/walletbot/core/cmd"
	coreconfig "github.com/m3rciful/walletbot/core/config"
	"github.com/m3rciful/walletbot/core/logger"
	"github.com/m3rciful/walletbot/internal/bot"
	"github.com/m3rciful/walletbot/internal/i18n"
	"github.com/m3rciful/walletbot/internal/quote"
	"github.com/m3rciful/walletbot/internal/quote/coingecko"
	"github.com/m3rciful/walletbot/internal/quote/oneinch"
	"github.com/m3rciful/walletbot/internal/session"
)

type configCarrier struct {
	cfg *coreconfig.Config
}

func (c *configCarrier) CoreConfig() *coreconfig.Config { return c.cfg }

func main() {
	// .env is a local convenience; absence is not an error.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return &configCarrier{cfg: cfg}, nil
		},
		Bootstrap: bootstrap,
	})
	if err != nil {
		log.Fatalf("walletbot: %v", err)
	}
}

func bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg := carrier.CoreConfig()

	if err := logger.Init(cfg); err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	if err := i18n.Verify(); err != nil {
		return nil, err
	}

	router := quote.NewRouter()
	if err := router.Register(quote.ETH, quote.USDT, buildETHProvider(cfg)); err != nil {
		return nil, err
	}
	if err := router.Register(quote.TON, quote.USDT, buildTONProvider(cfg)); err != nil {
		return nil, err
	}

	svc := bot.NewService(session.NewStore(), router)
	return bot.NewApp(cfg, svc), nil
}

func buildETHProvider(cfg *coreconfig.Config) quote.Provider {
	opts := []oneinch.Option{}
	if cfg.Quotes.OneInchBaseURL != "" {
		opts = append(opts, oneinch.WithBaseURL(cfg.Quotes.OneInchBaseURL))
	}
	return oneinch.NewClient(cfg.Quotes.OneInchAPIKey, opts...)
}

func buildTONProvider(cfg *coreconfig.Config) quote.Provider {
	if cfg.Quotes.TONSource == coreconfig.TONSourceCoinGecko {
		opts := []coingecko.Option{}
		if cfg.Quotes.CoinGeckoBaseURL != "" {
			opts = append(opts, coingecko.WithBaseURL(cfg.Quotes.CoinGeckoBaseURL))
		}
		return coingecko.NewClient(opts...)
	}
	return quote.NewFixedProvider(cfg.Quotes.TONStaticPrice)
}
