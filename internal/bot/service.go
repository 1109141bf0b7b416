// Package bot implements the wallet bot's command logic on top of the
// session store and the quote router. Handlers stay thin: every command is a
// Service method returning a Reply, so the behaviour is testable without a
// live Telegram connection.
package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/m3rciful/walletbot/internal/i18n"
	"github.com/m3rciful/walletbot/internal/quote"
	"github.com/m3rciful/walletbot/internal/session"
)

// CallbackSelectLocale is the callback key for the language keyboard.
const CallbackSelectLocale = "select-locale"

const (
	cmdRate    = "/rate"
	cmdRateTON = "/rate_ton"
)

// Action describes one inline keyboard button attached to a Reply.
type Action struct {
	Label  string
	Unique string
	Data   string
}

// Reply is the outcome of a command: text to send plus optional buttons.
// When a method also returns an error, Text still holds the localized
// message for the user and the error carries the diagnostic for logs.
type Reply struct {
	Text    string
	Actions []Action
}

// Service wires sessions and quotes into the bot's commands.
type Service struct {
	sessions *session.Store
	quotes   *quote.Router
}

// NewService builds the command service.
func NewService(sessions *session.Store, quotes *quote.Router) *Service {
	return &Service{
		sessions: sessions,
		quotes:   quotes,
	}
}

// Sessions exposes the underlying store for diagnostics.
func (s *Service) Sessions() *session.Store { return s.sessions }

// QuotePairs lists the asset pairs with a registered provider.
func (s *Service) QuotePairs() []string { return s.quotes.Pairs() }

func (s *Service) localeFor(userID int64) i18n.Locale {
	sess, ok := s.sessions.Get(userID)
	if !ok || sess.Locale == "" {
		return i18n.DefaultLocale
	}
	return sess.Locale
}

// Start creates the user's session if needed. Until the user has picked a
// language it replies with the locale prompt; afterwards with the welcome
// text. Repeated /start never resets an existing session.
func (s *Service) Start(userID int64) Reply {
	sess := s.sessions.GetOrCreate(userID)
	if sess.Locale == "" {
		return s.Language(userID)
	}
	return Reply{Text: i18n.Resolve(i18n.KeyWelcome, sess.Locale, nil)}
}

// Wallet renders the placeholder addresses and balances. A user without a
// session gets a hint to run /start.
func (s *Service) Wallet(userID int64) (Reply, error) {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return Reply{Text: i18n.Resolve(i18n.KeyNoWallet, i18n.DefaultLocale, nil)},
			&NoSessionError{UserID: userID}
	}
	return Reply{Text: i18n.Resolve(i18n.KeyWalletSummary, s.localeFor(userID), i18n.Params{
		"eth_address": sess.Addresses["ETH"],
		"ton_address": sess.Addresses["TON"],
		"eth_balance": formatAmount(sess.Balances["ETH"]),
		"ton_balance": formatAmount(sess.Balances["TON"]),
	})}, nil
}

// Receive shows the deposit addresses.
func (s *Service) Receive(userID int64) (Reply, error) {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return Reply{Text: i18n.Resolve(i18n.KeyNoWallet, i18n.DefaultLocale, nil)},
			&NoSessionError{UserID: userID}
	}
	return Reply{Text: i18n.Resolve(i18n.KeyReceive, s.localeFor(userID), i18n.Params{
		"eth_address": sess.Addresses["ETH"],
		"ton_address": sess.Addresses["TON"],
	})}, nil
}

// Send acknowledges the not-yet-implemented transfer flow.
func (s *Service) Send(userID int64) Reply {
	return Reply{Text: i18n.Resolve(i18n.KeySendPending, s.localeFor(userID), nil)}
}

// Swap acknowledges the not-yet-implemented swap flow.
func (s *Service) Swap(userID int64) Reply {
	return Reply{Text: i18n.Resolve(i18n.KeySwapPending, s.localeFor(userID), nil)}
}

// Language offers the locale picker keyboard.
func (s *Service) Language(userID int64) Reply {
	locales := i18n.Supported()
	actions := make([]Action, 0, len(locales))
	for _, loc := range locales {
		actions = append(actions, Action{
			Label:  loc.DisplayName(),
			Unique: CallbackSelectLocale,
			Data:   string(loc),
		})
	}
	return Reply{
		Text:    i18n.Resolve(i18n.KeyChooseLanguage, s.localeFor(userID), nil),
		Actions: actions,
	}
}

// SelectLocale applies a locale chosen via the language keyboard and returns
// the confirmation plus a refreshed welcome, both in the new locale.
func (s *Service) SelectLocale(userID int64, code string) (confirmation, welcome Reply, err error) {
	loc, ok := i18n.Parse(code)
	if !ok {
		return Reply{}, Reply{}, &UsageError{Command: "/language", Reason: "unknown locale " + strconv.Quote(code)}
	}
	if err := s.sessions.SetLocale(userID, loc); err != nil {
		return Reply{}, Reply{}, err
	}
	confirmation = Reply{Text: i18n.Resolve(i18n.KeyLanguageChanged, loc, i18n.Params{
		"language": loc.DisplayName(),
	})}
	welcome = Reply{Text: i18n.Resolve(i18n.KeyWelcome, loc, nil)}
	return confirmation, welcome, nil
}

// Rate quotes the given ETH amount in USDT through the swap aggregator.
func (s *Service) Rate(ctx context.Context, userID int64, args []string) (Reply, error) {
	return s.rate(ctx, userID, cmdRate, quote.ETH, args)
}

// RateTON quotes the given TON amount in USDT from the reference price.
func (s *Service) RateTON(ctx context.Context, userID int64, args []string) (Reply, error) {
	return s.rate(ctx, userID, cmdRateTON, quote.TON, args)
}

func (s *Service) rate(ctx context.Context, userID int64, command string, base quote.Asset, args []string) (Reply, error) {
	loc := s.localeFor(userID)

	amount, err := parseAmount(args)
	if err != nil {
		usage := i18n.Resolve(i18n.KeyRateUsage, loc, i18n.Params{"command": command})
		return Reply{Text: usage}, &UsageError{Command: command, Reason: err.Error()}
	}

	q, err := s.quotes.Quote(ctx, base, quote.USDT, amount)
	if err != nil {
		return Reply{Text: i18n.Resolve(i18n.KeyRateUnavailable, loc, nil)}, err
	}

	return Reply{Text: i18n.Resolve(i18n.KeyRateResult, loc, i18n.Params{
		"base":   base.Symbol,
		"target": quote.USDT.Symbol,
		"amount": formatAmount(amount),
		"price":  formatMoney(q.UnitPrice),
		"total":  formatMoney(q.Converted),
	})}, nil
}

func parseAmount(args []string) (float64, error) {
	if len(args) != 1 {
		return 0, errAmountMissing
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return 0, errAmountNotNumeric
	}
	if amount <= 0 {
		return 0, errAmountNotPositive
	}
	return amount, nil
}

var (
	errAmountMissing     = staticError("amount argument required")
	errAmountNotNumeric  = staticError("amount is not a number")
	errAmountNotPositive = staticError("amount must be positive")
)

type staticError string

func (e staticError) Error() string { return string(e) }

// formatAmount renders user-entered quantities without trailing zeros.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatMoney renders USDT values with two decimal places.
func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
