package oneinch_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/m3rciful/walletbot/internal/quote"
	"github.com/m3rciful/walletbot/internal/quote/oneinch"
)

func jsonBody(t *testing.T, payload any) io.ReadCloser {
	t.Helper()

	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(payload))
	return io.NopCloser(buffer)
}

func TestQuoteSuccess(t *testing.T) {
	t.Parallel()

	// Arrange: a mock http client returning a swap quote in USDT base units.
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "Bearer test-key", req.Header.Get("Authorization"))

			query := req.URL.Query()
			require.Equal(t, quote.ETH.Address, query.Get("fromTokenAddress"))
			require.Equal(t, quote.USDT.Address, query.Get("toTokenAddress"))
			require.Equal(t, "1000000000000000000", query.Get("amount"))

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       jsonBody(t, map[string]any{"toAmount": "2500000000"}),
			}, nil
		}).
		Times(1)

	client := oneinch.NewClient("test-key", oneinch.WithHTTPClient(httpClient))

	// Act: quote 1 ETH into USDT.
	got, err := client.Quote(t.Context(), quote.ETH, quote.USDT, 1)

	// Assert: the integer-string amount is descaled by USDT decimals.
	require.NoError(t, err)
	require.InDelta(t, 2500.00, got.Converted, 1e-9)
	require.InDelta(t, 2500.00, got.UnitPrice, 1e-9)
	require.Equal(t, "1inch", got.Source)
}

func TestQuoteScalesFractionalAmount(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "1500000000000000000", req.URL.Query().Get("amount"))

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       jsonBody(t, map[string]any{"toAmount": "3750000000"}),
			}, nil
		}).
		Times(1)

	client := oneinch.NewClient("test-key", oneinch.WithHTTPClient(httpClient))

	got, err := client.Quote(t.Context(), quote.ETH, quote.USDT, 1.5)
	require.NoError(t, err)
	require.InDelta(t, 3750.00, got.Converted, 1e-9)
	require.InDelta(t, 2500.00, got.UnitPrice, 1e-9)
}

func TestQuoteWithBaseURL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	baseURL := "http://localhost:8080/quote"

	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       jsonBody(t, map[string]any{"toAmount": "1000000"}),
			}, nil
		}).
		Times(1)

	client := oneinch.NewClient("test-key",
		oneinch.WithHTTPClient(httpClient),
		oneinch.WithBaseURL(baseURL),
	)

	_, err := client.Quote(t.Context(), quote.ETH, quote.USDT, 1)
	require.NoError(t, err)
}

func TestQuoteMissingAPIKey(t *testing.T) {
	t.Parallel()

	// Arrange: a client without a key and a mock that must never be called.
	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Times(0)

	client := oneinch.NewClient("", oneinch.WithHTTPClient(httpClient))

	_, err := client.Quote(t.Context(), quote.ETH, quote.USDT, 1)

	var extErr *quote.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	require.Equal(t, "1inch", extErr.Provider)
	require.Contains(t, extErr.Message, "missing API key")
}

func TestQuoteUpstreamError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(&http.Response{
			StatusCode: http.StatusTooManyRequests,
			Body:       io.NopCloser(strings.NewReader(`{"error":"rate limited"}`)),
		}, nil).
		Times(1)

	client := oneinch.NewClient("test-key", oneinch.WithHTTPClient(httpClient))

	_, err := client.Quote(t.Context(), quote.ETH, quote.USDT, 1)

	var extErr *quote.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	require.Equal(t, http.StatusTooManyRequests, extErr.StatusCode)
	require.Equal(t, "EXTERNAL_SERVICE", extErr.Code())
}

func TestQuoteTransportError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	client := oneinch.NewClient("test-key", oneinch.WithHTTPClient(httpClient))

	_, err := client.Quote(t.Context(), quote.ETH, quote.USDT, 1)
	require.True(t, quote.IsExternal(err))
}

func TestQuoteMalformedResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{name: "missing to amount", body: `{}`},
		{name: "non integer to amount", body: `{"toAmount":"not-a-number"}`},
		{name: "broken json", body: `{`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			httpClient := NewMockHTTPClient(ctrl)

			httpClient.EXPECT().
				Do(gomock.Any()).
				Return(&http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(strings.NewReader(tc.body)),
				}, nil).
				Times(1)

			client := oneinch.NewClient("test-key", oneinch.WithHTTPClient(httpClient))

			_, err := client.Quote(t.Context(), quote.ETH, quote.USDT, 1)
			require.True(t, quote.IsExternal(err))
		})
	}
}
