package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateReturns(t *testing.T) {
	returns := CalculateReturns([]float64{100, 110, 99})
	assert.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)

	assert.Empty(t, CalculateReturns([]float64{100}))
	assert.Empty(t, CalculateReturns(nil))
}

func TestAnnualizedVolatility(t *testing.T) {
	assert.Equal(t, 0.0, AnnualizedVolatility(nil))

	// Constant returns have zero volatility
	flat := []float64{0.01, 0.01, 0.01, 0.01}
	assert.Equal(t, 0.0, AnnualizedVolatility(flat))

	varied := []float64{0.02, -0.01, 0.03, -0.02, 0.01}
	assert.Greater(t, AnnualizedVolatility(varied), 0.0)
}

func TestIndicators_InsufficientData(t *testing.T) {
	short := []float64{100, 101, 102}

	assert.Nil(t, CalculateRSI(short, 14))
	assert.Nil(t, CalculateSMA(short, 50))
}

func TestCalculateSMA(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}

	sma := CalculateSMA(closes, 50)
	if assert.NotNil(t, sma) {
		assert.InDelta(t, 100.0, *sma, 1e-9)
	}
}
