// Package pricing turns a pull forecast into purchase advice: the cheapest
// pack combination that funds a pull count, or the most pulls a cash
// budget can buy.
package pricing

import "github.com/shopspring/decimal"

// Pack is one purchasable top-up SKU.
type Pack struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tokens      int    `json:"tokens"`      // base premium-currency grant
	BonusTokens int    `json:"bonusTokens"` // permanent extra grant
	FirstTimeX2 bool   `json:"firstTimeX2"` // first purchase doubles Tokens (not the bonus)
	PriceCents  int64  `json:"priceCents"`
}

// Catalog is a regional product catalog. TaxRate applies to the subtotal;
// leave it zero for tax-inclusive prices.
type Catalog struct {
	Currency string          `json:"currency"`
	TaxRate  decimal.Decimal `json:"taxRate"`
	Packs    []Pack          `json:"packs"`
}

// FirstTimeState marks pack IDs whose first-purchase double is unused.
type FirstTimeState map[string]bool

// Purchase is one line item of a plan.
type Purchase struct {
	PackID         string `json:"packId"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	UnitTokens     int    `json:"unitTokens"`
	SubtotalCents  int64  `json:"subtotalCents"`
}

// Plan summarizes a purchase recommendation.
type Plan struct {
	Purchases     []Purchase `json:"purchases"`
	SubtotalCents int64      `json:"subtotalCents"`
	TaxCents      int64      `json:"taxCents"`
	TotalCents    int64      `json:"totalCents"`
	TotalTokens   int        `json:"totalTokens"`
	Currency      string     `json:"currency"`
}

func applyTax(sub int64, rate decimal.Decimal) (tax, total int64) {
	if rate.Sign() <= 0 {
		return 0, sub
	}
	t := decimal.NewFromInt(sub).Mul(rate).Round(0).IntPart()
	return t, sub + t
}

// DefaultCatalog is the standard USD tier ladder shared by the supported
// titles; deployments with regional prices construct their own.
func DefaultCatalog() Catalog {
	return Catalog{
		Currency: "USD",
		TaxRate:  decimal.Zero,
		Packs: []Pack{
			{ID: "60", Name: "60 Crystals", Tokens: 60, FirstTimeX2: true, PriceCents: 99},
			{ID: "300", Name: "300 Crystals", Tokens: 300, BonusTokens: 30, FirstTimeX2: true, PriceCents: 499},
			{ID: "980", Name: "980 Crystals", Tokens: 980, BonusTokens: 110, FirstTimeX2: true, PriceCents: 1499},
			{ID: "1980", Name: "1980 Crystals", Tokens: 1980, BonusTokens: 260, FirstTimeX2: true, PriceCents: 2999},
			{ID: "3280", Name: "3280 Crystals", Tokens: 3280, BonusTokens: 600, FirstTimeX2: true, PriceCents: 4999},
			{ID: "6480", Name: "6480 Crystals", Tokens: 6480, BonusTokens: 1600, FirstTimeX2: true, PriceCents: 9999},
		},
	}
}
