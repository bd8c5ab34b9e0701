package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ContractSize is the number of underlying shares per option contract.
const ContractSize = 100

// BSParams holds the model inputs for Black-Scholes pricing
type BSParams struct {
	Volatility   float64 // Annualized volatility (sigma)
	RiskFreeRate float64 // Annual risk-free rate (r)
}

// DefaultBSParams are deliberate simplifications standing in for a volatility
// surface and a yield curve. They are configuration, not estimated from data.
var DefaultBSParams = BSParams{
	Volatility:   0.60,
	RiskFreeRate: 0.04,
}

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// CallPrice calculates the theoretical price of a European call option using
// the closed-form Black-Scholes formula:
//
//	d1 = (ln(S/K) + (r + sigma^2/2)*t) / (sigma*sqrt(t))
//	d2 = d1 - sigma*sqrt(t)
//	call = S*N(d1) - K*e^(-r*t)*N(d2)
//
// Args:
//
//	spot: Current price of the underlying (S)
//	strike: Strike price (K)
//	tYears: Time to expiration in years (t)
//	p: Volatility and risk-free rate
//
// Returns 0 for degenerate inputs (t, spot or strike <= 0) rather than
// erroring; callers supply their own pricing floor. Result is rounded to
// 2 decimal places.
func CallPrice(spot, strike, tYears float64, p BSParams) float64 {
	if tYears <= 0 || spot <= 0 || strike <= 0 {
		return 0
	}

	sigmaSqrtT := p.Volatility * math.Sqrt(tYears)
	d1 := (math.Log(spot/strike) + (p.RiskFreeRate+p.Volatility*p.Volatility/2)*tYears) / sigmaSqrtT
	d2 := d1 - sigmaSqrtT

	call := spot*stdNormal.CDF(d1) - strike*math.Exp(-p.RiskFreeRate*tYears)*stdNormal.CDF(d2)

	return Round2(call)
}

// IntrinsicValue calculates the payoff of a call option exercised immediately:
// max(currentPrice - strikePrice, 0), rounded to 2 decimal places.
func IntrinsicValue(currentPrice, strikePrice float64) float64 {
	return Round2(math.Max(currentPrice-strikePrice, 0))
}

// ContractsPurchasable calculates how many whole option contracts a given
// amount buys. One contract covers ContractSize shares, so the cost per
// contract is premiumPerShare * ContractSize. Returns 0 when the premium is
// non-positive (an unpriceable option cannot size a position).
func ContractsPurchasable(amount, premiumPerShare float64) int {
	if premiumPerShare <= 0 {
		return 0
	}
	costPerContract := premiumPerShare * ContractSize
	return int(math.Floor(amount / costPerContract))
}

// Round2 rounds to 2 decimal places (currency and percentages)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places (share and unit counts)
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
