package valuation

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fomo-calculator/internal/clients/yahoo"
	"github.com/aristath/fomo-calculator/pkg/formulas"
)

// PriceProvider is the injected price-series capability. The Yahoo Finance
// client satisfies it; tests use a stub.
type PriceProvider interface {
	DailyCloses(symbol string, start, end time.Time) ([]yahoo.Quote, error)
}

// Direction selects which end of the timeline a lookup targets
type Direction int

const (
	// DirectionHistorical resolves the trading price at or just before a past date
	DirectionHistorical Direction = iota
	// DirectionCurrent resolves the most recent trading price
	DirectionCurrent
)

// Window offsets, in days. Five days of lookback bridges weekends and holiday
// runs; one day of lookahead makes sure the target date itself is included.
const (
	lookbackDays  = 5
	lookaheadDays = 1
)

// Resolver turns a gappy daily price series into a single usable quote.
// It holds no state between lookups.
type Resolver struct {
	provider PriceProvider
	log      zerolog.Logger
}

// NewResolver creates a price resolver backed by the given provider
func NewResolver(provider PriceProvider, log zerolog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		log:      log.With().Str("component", "price_resolver").Logger(),
	}
}

// Resolve finds the best available price for a ticker around a target instant.
//
// Both directions share one policy: search a short window ending at (or just
// after) the target, drop the gaps, and take the last present value, the
// trading price closest to, at, or immediately preceding the target. Any
// provider failure, malformed series, or fully empty window resolves to
// PriceUnavailableError; provider-specific errors never propagate.
func (r *Resolver) Resolve(ticker string, direction Direction, target time.Time) (*ResolvedPrice, error) {
	var start, end time.Time
	switch direction {
	case DirectionHistorical:
		start = target.AddDate(0, 0, -lookbackDays)
		end = target.AddDate(0, 0, lookaheadDays)
	case DirectionCurrent:
		start = target.AddDate(0, 0, -lookbackDays)
		end = target
	}

	notFound := &PriceUnavailableError{Ticker: ticker, At: r.describeInstant(direction, target)}

	quotes, err := r.provider.DailyCloses(ticker, start, end)
	if err != nil {
		r.log.Warn().Err(err).
			Str("ticker", ticker).
			Time("target", target).
			Msg("Price lookup failed")
		return nil, notFound
	}

	price := lastPresentValue(quotes)
	if price == nil {
		r.log.Warn().
			Str("ticker", ticker).
			Time("target", target).
			Int("window_size", len(quotes)).
			Msg("No trading data in search window")
		return nil, notFound
	}

	return &ResolvedPrice{
		Ticker: ticker,
		At:     target,
		Price:  formulas.Round2(*price),
	}, nil
}

// lastPresentValue filters out gaps and non-positive quotes, then returns the
// latest remaining value, or nil when the window holds no trading data.
func lastPresentValue(quotes []yahoo.Quote) *float64 {
	for i := len(quotes) - 1; i >= 0; i-- {
		if quotes[i].AdjClose != nil && *quotes[i].AdjClose > 0 {
			return quotes[i].AdjClose
		}
	}
	return nil
}

func (r *Resolver) describeInstant(direction Direction, target time.Time) string {
	if direction == DirectionCurrent {
		return "now"
	}
	return target.Format("2006-01-02")
}
