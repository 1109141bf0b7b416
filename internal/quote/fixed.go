package quote

import "context"

// FixedProvider serves quotes from a fixed reference price. It stands in for
// pairs without a live integration; the TON/USDT rate defaults to it.
type FixedProvider struct {
	// Price is the target-asset price of one base unit.
	Price float64
}

// NewFixedProvider constructs a provider pinned to the given reference price.
func NewFixedProvider(price float64) *FixedProvider {
	return &FixedProvider{Price: price}
}

func (p *FixedProvider) Name() string { return "fixed" }

// Quote converts using the fixed price. It never fails and makes no calls.
func (p *FixedProvider) Quote(_ context.Context, _, _ Asset, amount float64) (Quote, error) {
	return Quote{
		Converted: Round(amount*p.Price, 2),
		UnitPrice: p.Price,
		Source:    p.Name(),
	}, nil
}
