package valuation

import "fmt"

// PriceUnavailableError is returned when no usable quote exists in the search
// window, for either the historical or the current lookup. At is the requested
// date ("2024-01-15") or "now" for the current-price lookup.
type PriceUnavailableError struct {
	Ticker string
	At     string
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("no price available for %s at %s", e.Ticker, e.At)
}

// InsufficientCapitalError is a business outcome, not a fault: the request was
// well formed but the amount buys zero whole contracts. It carries the computed
// premium so callers can explain why.
type InsufficientCapitalError struct {
	PremiumPerShare    float64
	PremiumPerContract float64
}

func (e *InsufficientCapitalError) Error() string {
	return fmt.Sprintf("amount too small for one contract ($%.2f/share, $%.2f/contract)",
		e.PremiumPerShare, e.PremiumPerContract)
}

// InvalidInputError reports a malformed request. The HTTP layer validates
// first, so hitting this from the engine means a caller bypassed validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
