package valuation

import "time"

// InvestmentModel selects how the requested amount is deployed
type InvestmentModel string

const (
	// ModelShares buys fractional shares at the historical price
	ModelShares InvestmentModel = "shares"
	// ModelOptions buys whole ATM call option contracts at the historical price
	ModelOptions InvestmentModel = "options"
)

// Request is one immutable valuation question: what would this amount,
// invested in this ticker on this date, be worth today?
type Request struct {
	Ticker       string
	PurchaseDate time.Time
	Amount       float64
	Model        InvestmentModel
}

// ResolvedPrice is the outcome of collapsing a price series to a single
// usable quote. Price is always positive.
type ResolvedPrice struct {
	Ticker string
	At     time.Time
	Price  float64
}

// Result is the terminal output of a valuation. Field names mirror the JSON
// contract of the calculate endpoint; option-only fields are nil for the
// shares model. All values are rounded at this boundary: 2 decimal places for
// currency and percentages, 4 for share counts.
type Result struct {
	Ticker          string          `json:"ticker"`
	InvestmentType  InvestmentModel `json:"investment_type"`
	PurchaseDate    string          `json:"purchase_date"`
	HistoricalPrice float64         `json:"historical_price"`
	CurrentPrice    float64         `json:"current_price"`

	SharesBought *float64 `json:"shares_bought,omitempty"`

	OptionPremium      *float64 `json:"option_premium,omitempty"`
	ContractsPurchased *int     `json:"contracts_purchased,omitempty"`
	StrikePrice        *float64 `json:"strike_price,omitempty"`
	IntrinsicValue     *float64 `json:"intrinsic_value,omitempty"`

	// Invested is the capital actually deployed. For options this is the cost
	// of the whole contracts purchased, which can be less than the requested
	// amount; the discrepancy is surfaced, never silently reconciled.
	Invested     float64 `json:"invested"`
	CurrentValue float64 `json:"current_value"`
	Profit       float64 `json:"profit"`
	PercentGain  float64 `json:"percent_gain"`
}
