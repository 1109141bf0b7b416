package coingecko_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m3rciful/walletbot/internal/quote"
	"github.com/m3rciful/walletbot/internal/quote/coingecko"
)

func TestQuoteTONPrice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/simple/price", r.URL.Path)
		require.Equal(t, "the-open-network", r.URL.Query().Get("ids"))
		require.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"the-open-network":{"usd":2.53187}}`))
	}))
	defer server.Close()

	client := coingecko.NewClient(coingecko.WithBaseURL(server.URL))

	got, err := client.Quote(t.Context(), quote.TON, quote.USDT, 10)
	require.NoError(t, err)
	require.InDelta(t, 2.5319, got.UnitPrice, 1e-9)
	require.InDelta(t, 25.32, got.Converted, 1e-9)
	require.Equal(t, "coingecko", got.Source)
}

func TestQuoteUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := coingecko.NewClient(coingecko.WithBaseURL(server.URL))

	_, err := client.Quote(t.Context(), quote.TON, quote.USDT, 1)

	var extErr *quote.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	require.Equal(t, http.StatusTooManyRequests, extErr.StatusCode)
}

func TestQuoteMissingPrice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := coingecko.NewClient(coingecko.WithBaseURL(server.URL))

	_, err := client.Quote(t.Context(), quote.TON, quote.USDT, 1)
	require.True(t, quote.IsExternal(err))
}

func TestQuoteUnsupportedAsset(t *testing.T) {
	t.Parallel()

	client := coingecko.NewClient()

	_, err := client.Quote(t.Context(), quote.Asset{Symbol: "DOGE"}, quote.USDT, 1)
	require.True(t, quote.IsExternal(err))
}
