// Package oneinch implements the swap-aggregator quote adapter backed by the
// 1inch v5.2 quote endpoint.
package oneinch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"

	"github.com/m3rciful/walletbot/internal/quote"
)

const defaultBaseURL = "https://api.1inch.dev/swap/v5.2/1/quote"

// maxErrorBody bounds how much of a provider error body is kept for logs.
const maxErrorBody = 512

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=oneinch_test -destination=mock_http_client_test.go -source=oneinch.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a quote.Provider backed by the 1inch aggregation API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
}

// Option is a configuration option for the 1inch client.
type Option func(*Client)

// WithBaseURL overrides the quote endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a 1inch quote client. The key is required by the API;
// its absence surfaces as an ExternalServiceError on the first call rather
// than at construction so the bot can boot without the integration.
func NewClient(apiKey string, options ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Name() string { return "1inch" }

type quoteResponse struct {
	ToAmount string `json:"toAmount"`
}

// Quote requests a swap quote for amount of base into target.
// The amount is scaled to the base asset's smallest indivisible unit before
// the request and the response is descaled by the target asset's decimals.
func (c *Client) Quote(ctx context.Context, base, target quote.Asset, amount float64) (quote.Quote, error) {
	if c.apiKey == "" {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider: c.Name(),
			Message:  "missing API key",
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, http.NoBody)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("oneinch: build request: %w", err)
	}
	q := url.Values{}
	q.Set("fromTokenAddress", base.Address)
	q.Set("toTokenAddress", target.Address)
	q.Set("amount", scaleToBaseUnits(amount, base.Decimals))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

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

	var parsed quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decode response: %v", err),
		}
	}
	if parsed.ToAmount == "" {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    "response missing toAmount",
		}
	}

	converted, err := descaleBaseUnits(parsed.ToAmount, target.Decimals)
	if err != nil {
		return quote.Quote{}, &quote.ExternalServiceError{
			Provider:   c.Name(),
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid toAmount %q", parsed.ToAmount),
		}
	}

	converted = quote.Round(converted, 2)
	unitPrice := converted
	if amount != 0 {
		unitPrice = quote.Round(converted/amount, 2)
	}

	return quote.Quote{
		Converted: converted,
		UnitPrice: unitPrice,
		Source:    c.Name(),
	}, nil
}

// scaleToBaseUnits converts a decimal amount to the asset's integer base
// units, e.g. 1.5 ETH -> 1500000000000000000.
func scaleToBaseUnits(amount float64, decimals int) string {
	scaled := new(big.Float).Mul(big.NewFloat(amount), pow10(decimals))
	units, _ := scaled.Int(nil)
	return units.String()
}

// descaleBaseUnits converts an integer base-unit string back to the asset's
// decimal amount, e.g. "2500000000" with 6 decimals -> 2500.
func descaleBaseUnits(raw string, decimals int) (float64, error) {
	units, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return 0, fmt.Errorf("not an integer: %q", raw)
	}
	value := new(big.Float).Quo(new(big.Float).SetInt(units), pow10(decimals))
	out, _ := value.Float64()
	return out, nil
}

func pow10(n int) *big.Float {
	exp := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	return new(big.Float).SetInt(exp)
}
