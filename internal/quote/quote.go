// Package quote defines the normalized contract over external price sources
// and routes quote requests to the provider registered for an asset pair.
package quote

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Asset describes a quotable asset. Address and Decimals matter only for
// providers that speak in smallest indivisible units.
type Asset struct {
	Symbol   string
	Address  string
	Decimals int
}

// Assets known to the bot. Addresses follow the 1inch mainnet convention.
var (
	ETH  = Asset{Symbol: "ETH", Address: "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", Decimals: 18}
	USDT = Asset{Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6}
	TON  = Asset{Symbol: "TON", Decimals: 9}
)

// Quote is a converted-amount/unit-price pair for an asset pair and amount.
type Quote struct {
	// Converted is the target-asset total for the requested amount.
	Converted float64
	// UnitPrice is the effective price of one base unit in the target asset.
	UnitPrice float64
	// Source names the provider for diagnostics.
	Source string
}

// Provider is a single external price source.
// Implementations make exactly one attempt per call: no retry, no caching.
type Provider interface {
	Name() string
	Quote(ctx context.Context, base, target Asset, amount float64) (Quote, error)
}

// Router selects a Provider by asset pair. Adding a new source for a pair is
// a registration, not new branching in handlers.
type Router struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRouter constructs an empty Router.
func NewRouter() *Router {
	return &Router{providers: make(map[string]Provider)}
}

// Register binds a provider to the base/target pair. Rebinding a pair is a
// wiring defect and is rejected.
func (r *Router) Register(base, target Asset, p Provider) error {
	if p == nil {
		return fmt.Errorf("quote: nil provider for %s", pairKey(base, target))
	}
	key := pairKey(base, target)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.providers[key]; exists {
		return fmt.Errorf("quote: provider already registered for %s", key)
	}
	r.providers[key] = p
	return nil
}

// Quote dispatches to the provider registered for the pair.
func (r *Router) Quote(ctx context.Context, base, target Asset, amount float64) (Quote, error) {
	r.mu.RLock()
	p, ok := r.providers[pairKey(base, target)]
	r.mu.RUnlock()
	if !ok {
		return Quote{}, fmt.Errorf("quote: no provider for %s", pairKey(base, target))
	}
	return p.Quote(ctx, base, target, amount)
}

// Pairs returns the registered pair keys, sorted, for diagnostics.
func (r *Router) Pairs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.providers))
	for k := range r.providers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func pairKey(base, target Asset) string {
	return base.Symbol + "/" + target.Symbol
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
