package valuation

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fomo-calculator/pkg/formulas"
)

// PricingConfig carries the option-model business constants. They are passed
// explicitly rather than read from globals so tests can override them.
type PricingConfig struct {
	BS formulas.BSParams

	// FallbackPremiumRate is the premium floor, as a fraction of the strike,
	// substituted when the model returns a degenerate (non-positive) premium.
	FallbackPremiumRate float64

	// ExpiryFloorYears keeps sigma*sqrt(t) away from zero when the purchase
	// date is today.
	ExpiryFloorYears float64
}

// DefaultPricingConfig matches the production constants
var DefaultPricingConfig = PricingConfig{
	BS:                  formulas.DefaultBSParams,
	FallbackPremiumRate: 0.15,
	ExpiryFloorYears:    0.01,
}

const daysPerYear = 365.25

// Service is the valuation engine. Stateless: one Evaluate call is one
// independent computation, fully determined by its inputs and the price series.
type Service struct {
	resolver *Resolver
	pricing  PricingConfig
	now      func() time.Time
	log      zerolog.Logger
}

// NewService creates a valuation engine backed by the given price provider
func NewService(provider PriceProvider, pricing PricingConfig, log zerolog.Logger) *Service {
	return &Service{
		resolver: NewResolver(provider, log),
		pricing:  pricing,
		now:      time.Now,
		log:      log.With().Str("component", "valuation").Logger(),
	}
}

// Evaluate answers one "what if" question. Failures come back as typed errors:
// PriceUnavailableError, InsufficientCapitalError or InvalidInputError.
func (s *Service) Evaluate(req Request) (*Result, error) {
	now := s.now()

	// The HTTP layer validates first; these guards keep a bypassing caller
	// from dividing by zero.
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, &InvalidInputError{Field: "ticker", Reason: "must not be empty"}
	}
	if req.Amount <= 0 {
		return nil, &InvalidInputError{Field: "amount", Reason: "must be positive"}
	}
	if req.PurchaseDate.After(now) {
		return nil, &InvalidInputError{Field: "date", Reason: "must not be in the future"}
	}

	historical, err := s.resolver.Resolve(req.Ticker, DirectionHistorical, req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	current, err := s.resolver.Resolve(req.Ticker, DirectionCurrent, now)
	if err != nil {
		return nil, err
	}

	if historical.Price <= 0 || current.Price <= 0 {
		// The resolver guarantees positive prices; keep the guard anyway.
		return nil, &PriceUnavailableError{Ticker: req.Ticker, At: req.PurchaseDate.Format("2006-01-02")}
	}

	switch req.Model {
	case ModelShares:
		return s.evaluateShares(req, historical.Price, current.Price), nil
	default:
		return s.evaluateOptions(req, historical.Price, current.Price, now)
	}
}

// evaluateShares values a fractional direct-share purchase
func (s *Service) evaluateShares(req Request, historicalPrice, currentPrice float64) *Result {
	shares := req.Amount / historicalPrice
	currentValue := shares * currentPrice
	profit := currentValue - req.Amount
	percentGain := (currentPrice - historicalPrice) / historicalPrice * 100

	sharesRounded := formulas.Round4(shares)

	s.log.Debug().
		Str("ticker", req.Ticker).
		Float64("shares", sharesRounded).
		Float64("current_value", currentValue).
		Msg("Evaluated share purchase")

	return &Result{
		Ticker:          req.Ticker,
		InvestmentType:  ModelShares,
		PurchaseDate:    req.PurchaseDate.Format("2006-01-02"),
		HistoricalPrice: historicalPrice,
		CurrentPrice:    currentPrice,
		SharesBought:    &sharesRounded,
		Invested:        formulas.Round2(req.Amount),
		CurrentValue:    formulas.Round2(currentValue),
		Profit:          formulas.Round2(profit),
		PercentGain:     formulas.Round2(percentGain),
	}
}

// evaluateOptions values an ATM call option purchase: strike equals the
// historical price, and "today" is treated as the option's effective expiry,
// so the exit value is pure intrinsic value.
func (s *Service) evaluateOptions(req Request, historicalPrice, currentPrice float64, now time.Time) (*Result, error) {
	strike := historicalPrice
	tYears := s.timeToExpiry(req.PurchaseDate, now)

	premium := formulas.CallPrice(historicalPrice, strike, tYears, s.pricing.BS)
	if premium <= 0 {
		// Degenerate model output never blocks the simulation
		premium = formulas.Round2(s.pricing.FallbackPremiumRate * historicalPrice)
		s.log.Debug().
			Str("ticker", req.Ticker).
			Float64("fallback_premium", premium).
			Msg("Model returned degenerate premium, using floor")
	}

	contracts := formulas.ContractsPurchasable(req.Amount, premium)
	if contracts == 0 {
		return nil, &InsufficientCapitalError{
			PremiumPerShare:    premium,
			PremiumPerContract: formulas.Round2(premium * formulas.ContractSize),
		}
	}

	intrinsic := formulas.IntrinsicValue(currentPrice, strike)
	currentValue := intrinsic * formulas.ContractSize * float64(contracts)
	actualInvested := premium * formulas.ContractSize * float64(contracts)
	profit := currentValue - actualInvested

	percentGain := 0.0
	if actualInvested > 0 {
		percentGain = profit / actualInvested * 100
	}

	s.log.Debug().
		Str("ticker", req.Ticker).
		Float64("premium", premium).
		Int("contracts", contracts).
		Float64("intrinsic", intrinsic).
		Msg("Evaluated option purchase")

	return &Result{
		Ticker:             req.Ticker,
		InvestmentType:     ModelOptions,
		PurchaseDate:       req.PurchaseDate.Format("2006-01-02"),
		HistoricalPrice:    historicalPrice,
		CurrentPrice:       currentPrice,
		OptionPremium:      &premium,
		ContractsPurchased: &contracts,
		StrikePrice:        &strike,
		IntrinsicValue:     &intrinsic,
		Invested:           formulas.Round2(actualInvested),
		CurrentValue:       formulas.Round2(currentValue),
		Profit:             formulas.Round2(profit),
		PercentGain:        formulas.Round2(percentGain),
	}, nil
}

// timeToExpiry converts the holding period to years, floored so that a
// same-day purchase still prices.
func (s *Service) timeToExpiry(purchase, now time.Time) float64 {
	years := now.Sub(purchase).Hours() / 24 / daysPerYear
	if years < s.pricing.ExpiryFloorYears {
		return s.pricing.ExpiryFloorYears
	}
	return years
}
