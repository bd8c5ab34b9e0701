package formulas

import (
	"math"
	"testing"
)

func TestCallPrice_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name   string
		spot   float64
		strike float64
		tYears float64
	}{
		{name: "zero time", spot: 100, strike: 100, tYears: 0},
		{name: "negative time", spot: 100, strike: 100, tYears: -1},
		{name: "zero spot", spot: 0, strike: 100, tYears: 1},
		{name: "negative spot", spot: -50, strike: 100, tYears: 1},
		{name: "zero strike", spot: 100, strike: 0, tYears: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CallPrice(tt.spot, tt.strike, tt.tYears, DefaultBSParams)
			if got != 0 {
				t.Errorf("CallPrice(%v, %v, %v) = %v, want 0", tt.spot, tt.strike, tt.tYears, got)
			}
		})
	}
}

func TestCallPrice_ATMPositive(t *testing.T) {
	price := CallPrice(100, 100, 1.0, DefaultBSParams)
	if price <= 0 {
		t.Fatalf("expected ATM call price > 0, got %v", price)
	}
	// An option is never worth more than the underlying
	if price >= 100 {
		t.Fatalf("expected call price < spot, got %v", price)
	}
}

func TestCallPrice_MonotoneInTime(t *testing.T) {
	// Longer time to expiry means more optionality, so a higher premium
	short := CallPrice(100, 100, 0.1, DefaultBSParams)
	long := CallPrice(100, 100, 2.0, DefaultBSParams)
	if long <= short {
		t.Errorf("expected CallPrice to increase with time: t=0.1 -> %v, t=2.0 -> %v", short, long)
	}
}

func TestCallPrice_ConvergesToIntrinsic(t *testing.T) {
	tests := []struct {
		name      string
		spot      float64
		strike    float64
		intrinsic float64
	}{
		{name: "deep ITM", spot: 150, strike: 100, intrinsic: 50},
		{name: "deep OTM", spot: 50, strike: 100, intrinsic: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CallPrice(tt.spot, tt.strike, 1e-6, DefaultBSParams)
			if math.Abs(got-tt.intrinsic) > 0.05 {
				t.Errorf("CallPrice as t->0 = %v, want ~%v", got, tt.intrinsic)
			}
		})
	}
}

func TestCallPrice_LowerBound(t *testing.T) {
	// European call lower bound: C >= S - K*e^(-r*t)
	spot, strike, tYears := 120.0, 100.0, 0.5
	price := CallPrice(spot, strike, tYears, DefaultBSParams)
	bound := spot - strike*math.Exp(-DefaultBSParams.RiskFreeRate*tYears)
	if price < bound-0.01 {
		t.Errorf("call price %v below no-arbitrage bound %v", price, bound)
	}
}

func TestIntrinsicValue(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		strike  float64
		want    float64
	}{
		{name: "in the money", current: 120, strike: 100, want: 20},
		{name: "at the money", current: 100, strike: 100, want: 0},
		{name: "out of the money", current: 80, strike: 100, want: 0},
		{name: "fractional", current: 103.456, strike: 100, want: 3.46},
		{name: "negative prices clamp to zero", current: -5, strike: 10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntrinsicValue(tt.current, tt.strike)
			if got != tt.want {
				t.Errorf("IntrinsicValue(%v, %v) = %v, want %v", tt.current, tt.strike, got, tt.want)
			}
		})
	}
}

func TestContractsPurchasable(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		premium float64
		want    int
	}{
		{name: "exact multiple", amount: 3000, premium: 15, want: 2},
		{name: "rounds down", amount: 2999, premium: 15, want: 1},
		{name: "too small for one contract", amount: 1000, premium: 15, want: 0},
		{name: "zero premium", amount: 5000, premium: 0, want: 0},
		{name: "negative premium", amount: 5000, premium: -3, want: 0},
		{name: "cheap option", amount: 1000, premium: 0.5, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContractsPurchasable(tt.amount, tt.premium)
			if got != tt.want {
				t.Errorf("ContractsPurchasable(%v, %v) = %v, want %v", tt.amount, tt.premium, got, tt.want)
			}
		})
	}
}
