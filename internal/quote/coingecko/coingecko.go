// Package coingecko implements a reference-price quote adapter backed by the
// CoinGecko simple price endpoint.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m3rciful/walletbot/internal/quote"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

const maxErrorBody = 512

// assetIDs maps asset symbols to CoinGecko coin identifiers.
var assetIDs = map[string]string{
	"TON": "the-open-network",
	"ETH": "ethereum",
}

// vsCurrencies maps target asset symbols to CoinGecko vs_currencies values.
// USDT quotes use the USD reference price.
var vsCurrencies = map[string]string{
	"USDT": "usd",
	"USD":  "usd",
}

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a quote.Provider backed by the CoinGecko API.
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// Option is a configuration option for the CoinGecko client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a CoinGecko quote client. No API key is required for the
// public simple price endpoint.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Name() string { return "coingecko" }

// Quote fetches the reference price for base in the target currency and
// multiplies it by amount. The unit price is rounded to 4 decimal places and
// the converted total to 2.
func (c *Client) Quote(ctx context.Context, base, target quote.Asset, amount float64) (quote.Quote, error) {
	coinID, ok := assetIDs[base.Symbol]
	if !ok {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("unsupported asset %q", base.Symbol),
		}
	}
	currency, ok := vsCurrencies[target.Symbol]
	if !ok {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("unsupported target %q", target.Symbol),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/simple/price", http.NoBody)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("coingecko: build request: %w", err)
	}
	q := url.Values{}
	q.Set("ids", coinID)
	q.Set("vs_currencies", currency)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider: c.Name(),
			Message:  err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	var parsed map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decode response: %v", err),
		}
	}
	price, ok := parsed[coinID][currency]
	if !ok {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("response missing price for %s/%s", coinID, currency),
		}
	}

	unitPrice := quote.Round(price, 4)
	return quote.Quote{
		Converted: quote.Round(unitPrice*amount, 2),
		UnitPrice: unitPrice,
		Source:    c.Name(),
	}, nil
}
