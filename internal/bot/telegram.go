package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	coreconfig "github.com/m3rciful/walletbot/core/config"
	"github.com/m3rciful/walletbot/core/logger"
	coretelegram "github.com/m3rciful/walletbot/core/telegram"
	"github.com/m3rciful/walletbot/core/telegram/callbacks"
	"github.com/m3rciful/walletbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/walletbot/core/telegram/helpers"
	"github.com/m3rciful/walletbot/core/telegram/keyboard"
	tgrouter "github.com/m3rciful/walletbot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App binds the command service to the Telegram runtime.
type App struct {
	cfg *coreconfig.Config
	svc *Service
}

// NewApp builds the Telegram application around an initialized service.
func NewApp(cfg *coreconfig.Config, svc *Service) *App {
	return &App{cfg: cfg, svc: svc}
}

// CoreConfig exposes the embedded core configuration.
func (a *App) CoreConfig() *coreconfig.Config { return a.cfg }

// TelegramRunOptions assembles the registry, routes and middlewares.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.registerCommands(reg)

	if err := reg.RegisterCallback(CallbackSelectLocale, a.handleSelectLocale); err != nil {
		return coretelegram.RunOptions{}, fmt.Errorf("bot: register callback: %w", err)
	}

	routes := tgrouter.CommandRoutes(reg)
	routes = append(routes,
		tgrouter.CallbackRoute(reg, tgrouter.CallbackOptions{}),
		tgrouter.TextRoute(reg, tgrouter.TextOptions{}),
	)

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ coretelegram.Runtime) error {
			logger.Quotes.LogAttrs(ctx, slog.LevelInfo, "providers ready",
				slog.String("event", "providers"),
				slog.String("pairs", strings.Join(a.svc.QuotePairs(), ",")),
			)
			return nil
		},
		OnStop: func(ctx context.Context, _ coretelegram.Runtime) error {
			logger.Sessions.LogAttrs(ctx, slog.LevelInfo, "sessions held",
				slog.String("event", "drain"),
				slog.Int("count", a.svc.Sessions().Len()),
			)
			return nil
		},
	}, nil
}

func (a *App) registerCommands(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Create your wallet and show help",
	})
	reg.RegisterCommand("/wallet", commands.Command{
		Handler:     a.handleWallet,
		Description: "Show addresses and balances",
	})
	reg.RegisterCommand("/receive", commands.Command{
		Handler:     a.handleReceive,
		Description: "Show deposit addresses",
	})
	reg.RegisterCommand("/send", commands.Command{
		Handler:     a.handleSend,
		Description: "Send funds",
	})
	reg.RegisterCommand("/swap", commands.Command{
		Handler:     a.handleSwap,
		Description: "Swap assets",
	})
	reg.RegisterCommand("/rate", commands.Command{
		Handler:     a.handleRate,
		Description: "ETH to USDT quote",
	})
	reg.RegisterCommand("/rate_ton", commands.Command{
		Handler:     a.handleRateTON,
		Description: "TON to USDT rate",
	})
	reg.RegisterCommand("/language", commands.Command{
		Handler:     a.handleLanguage,
		Description: "Change language",
		Aliases:     []string{"/lang"},
	})
}

// sendReply pushes a reply as plain text; wallet addresses and rate output
// contain characters Telegram Markdown would misparse.
func sendReply(c tele.Context, reply Reply) error {
	if len(reply.Actions) == 0 {
		return tghelpers.SendText(c, reply.Text)
	}
	return tghelpers.SendText(c, reply.Text, &tele.SendOptions{
		ReplyMarkup: actionKeyboard(reply.Actions),
	})
}

// actionKeyboard lays locale buttons out in a single row of three.
func actionKeyboard(actions []Action) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(actions))
	for _, a := range actions {
		btns = append(btns, keyboard.InlineBtn{
			Text:   a.Label,
			Unique: a.Unique,
			Data:   a.Data,
		})
	}
	return keyboard.InlineButtonsNPerRow(btns, 3)
}

func (a *App) handleStart(c tele.Context) error {
	return sendReply(c, a.svc.Start(c.Sender().ID))
}

func (a *App) handleWallet(c tele.Context) error {
	reply, err := a.svc.Wallet(c.Sender().ID)
	if sendErr := sendReply(c, reply); sendErr != nil {
		return sendErr
	}
	return err
}

func (a *App) handleReceive(c tele.Context) error {
	reply, err := a.svc.Receive(c.Sender().ID)
	if sendErr := sendReply(c, reply); sendErr != nil {
		return sendErr
	}
	return err
}

func (a *App) handleSend(c tele.Context) error {
	return sendReply(c, a.svc.Send(c.Sender().ID))
}

func (a *App) handleSwap(c tele.Context) error {
	return sendReply(c, a.svc.Swap(c.Sender().ID))
}

func (a *App) handleLanguage(c tele.Context) error {
	return sendReply(c, a.svc.Language(c.Sender().ID))
}

func (a *App) handleRate(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply, err := a.svc.Rate(ctx, c.Sender().ID, c.Args())
	if sendErr := sendReply(c, reply); sendErr != nil {
		return sendErr
	}
	return err
}

func (a *App) handleRateTON(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply, err := a.svc.RateTON(ctx, c.Sender().ID, c.Args())
	if sendErr := sendReply(c, reply); sendErr != nil {
		return sendErr
	}
	return err
}

// handleSelectLocale applies the locale from the keyboard payload, edits the
// prompt into a confirmation and re-sends the welcome in the new language.
func (a *App) handleSelectLocale(c tele.Context) error {
	code := callbacks.CallbackPayload(c)
	confirmation, welcome, err := a.svc.SelectLocale(c.Sender().ID, code)
	if err != nil {
		return err
	}
	if editErr := tghelpers.EditMD(c, confirmation.Text); editErr != nil {
		return editErr
	}
	return tghelpers.SendText(c, welcome.Text)
}
