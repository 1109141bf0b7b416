package bot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/walletbot/internal/bot"
	"github.com/m3rciful/walletbot/internal/i18n"
	"github.com/m3rciful/walletbot/internal/quote"
	"github.com/m3rciful/walletbot/internal/session"
)

type stubProvider struct {
	name  string
	q     quote.Quote
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Quote(_ context.Context, _, _ quote.Asset, _ float64) (quote.Quote, error) {
	p.calls++
	if p.err != nil {
		return quote.Quote{}, p.err
	}
	return p.q, nil
}

func newService(t *testing.T, eth, ton quote.Provider) *bot.Service {
	t.Helper()

	router := quote.NewRouter()
	if eth != nil {
		require.NoError(t, router.Register(quote.ETH, quote.USDT, eth))
	}
	if ton != nil {
		require.NoError(t, router.Register(quote.TON, quote.USDT, ton))
	}
	return bot.NewService(session.NewStore(), router)
}

func TestStartCreatesWallet(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)

	reply := svc.Start(100)
	assert.Contains(t, reply.Text, "language")
	require.Len(t, reply.Actions, 3, "first start offers the language picker")

	wallet, err := svc.Wallet(100)
	require.NoError(t, err)
	assert.Contains(t, wallet.Text, session.PlaceholderETHAddress)
	assert.Contains(t, wallet.Text, session.PlaceholderTONAddress)
	assert.Contains(t, wallet.Text, "ETH: 0")
}

func TestWalletWithoutStart(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)

	reply, err := svc.Wallet(100)
	assert.Equal(t, i18n.Resolve(i18n.KeyNoWallet, i18n.DefaultLocale, nil), reply.Text)

	var noSess *bot.NoSessionError
	require.ErrorAs(t, err, &noSess)
	assert.Equal(t, int64(100), noSess.UserID)
	assert.Equal(t, "SESSION_NOT_FOUND", noSess.Code())
}

func TestReceiveShowsAddresses(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)
	svc.Start(100)

	reply, err := svc.Receive(100)
	require.NoError(t, err)
	assert.Contains(t, reply.Text, session.PlaceholderETHAddress)
	assert.Contains(t, reply.Text, session.PlaceholderTONAddress)
}

func TestLanguageKeyboard(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)
	svc.Start(100)

	reply := svc.Language(100)
	require.Len(t, reply.Actions, 3)
	for _, action := range reply.Actions {
		assert.Equal(t, bot.CallbackSelectLocale, action.Unique)
	}
	assert.Equal(t, "EN", reply.Actions[0].Data)
	assert.Equal(t, "Українська", reply.Actions[1].Label)
}

func TestSelectLocaleSwitchesReplies(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)
	svc.Start(100)

	confirmation, welcome, err := svc.SelectLocale(100, "UA")
	require.NoError(t, err)
	assert.Contains(t, confirmation.Text, "Українська")
	assert.Contains(t, welcome.Text, "Привіт")

	repeat := svc.Start(100)
	assert.Empty(t, repeat.Actions, "locale is set, repeat start shows the welcome")
	assert.Contains(t, repeat.Text, "/wallet")

	wallet, err := svc.Wallet(100)
	require.NoError(t, err)
	assert.Contains(t, wallet.Text, "Ваші адреси")
}

func TestSelectLocaleUnknownCode(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)
	svc.Start(100)

	_, _, err := svc.SelectLocale(100, "DE")

	var usage *bot.UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, "USER_INPUT", usage.Code())
}

func TestLocaleIsolation(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)
	svc.Start(1)
	svc.Start(2)

	_, _, err := svc.SelectLocale(1, "RU")
	require.NoError(t, err)

	ru, err := svc.Wallet(1)
	require.NoError(t, err)
	assert.Contains(t, ru.Text, "Ваши адреса")

	en, err := svc.Wallet(2)
	require.NoError(t, err)
	assert.Contains(t, en.Text, "Your addresses")
}

func TestRateSuccess(t *testing.T) {
	t.Parallel()

	eth := &stubProvider{name: "1inch", q: quote.Quote{Converted: 3750.00, UnitPrice: 2500.00, Source: "1inch"}}
	svc := newService(t, eth, nil)
	svc.Start(100)

	reply, err := svc.Rate(t.Context(), 100, []string{"1.5"})
	require.NoError(t, err)
	assert.Equal(t, 1, eth.calls)
	assert.Contains(t, reply.Text, "1 ETH = 2500.00 USDT")
	assert.Contains(t, reply.Text, "1.5 ETH: 3750.00 USDT")
}

func TestRateUsageErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{name: "no args", args: nil},
		{name: "too many args", args: []string{"1", "2"}},
		{name: "not a number", args: []string{"abc"}},
		{name: "zero", args: []string{"0"}},
		{name: "negative", args: []string{"-3"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			eth := &stubProvider{name: "1inch"}
			svc := newService(t, eth, nil)
			svc.Start(100)

			reply, err := svc.Rate(t.Context(), 100, tc.args)

			var usage *bot.UsageError
			require.ErrorAs(t, err, &usage)
			assert.Contains(t, reply.Text, "/rate <amount>")
			assert.Zero(t, eth.calls, "provider must not be called on bad input")
		})
	}
}

func TestRateProviderFailure(t *testing.T) {
	t.Parallel()

	eth := &stubProvider{name: "1inch", err: &quote.ExternalServiceError{Provider: "1inch", StatusCode: 502}}
	svc := newService(t, eth, nil)
	svc.Start(100)

	reply, err := svc.Rate(t.Context(), 100, []string{"1"})
	assert.Contains(t, reply.Text, "try again later")
	require.True(t, quote.IsExternal(err))
}

func TestRateTONFixedPrice(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, quote.NewFixedProvider(2.5))
	svc.Start(100)

	reply, err := svc.RateTON(t.Context(), 100, []string{"5"})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "1 TON = 2.50 USDT")
	assert.Contains(t, reply.Text, "5 TON: 12.50 USDT")
}

func TestRateTONUsageMentionsCommand(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, quote.NewFixedProvider(2.5))
	svc.Start(100)

	reply, err := svc.RateTON(t.Context(), 100, nil)
	require.Error(t, err)
	assert.Contains(t, reply.Text, "/rate_ton <amount>")
}

func TestRateBeforeStartUsesDefaultLocale(t *testing.T) {
	t.Parallel()

	eth := &stubProvider{name: "1inch", q: quote.Quote{Converted: 2500, UnitPrice: 2500, Source: "1inch"}}
	svc := newService(t, eth, nil)

	reply, err := svc.Rate(t.Context(), 999, []string{"1"})
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "ETH rate")
}

func TestRateUnknownPair(t *testing.T) {
	t.Parallel()

	svc := newService(t, nil, nil)
	svc.Start(100)

	reply, err := svc.Rate(t.Context(), 100, []string{"1"})
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*bot.UsageError)))
	assert.Contains(t, reply.Text, "try again later")
}
