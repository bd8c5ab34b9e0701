package charts

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fomo-calculator/internal/clients/yahoo"
)

type stubProvider struct {
	quotes []yahoo.Quote
	err    error
}

func (s *stubProvider) DailyCloses(symbol string, start, end time.Time) ([]yahoo.Quote, error) {
	return s.quotes, s.err
}

func fptr(v float64) *float64 {
	return &v
}

var testNow = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func newTestService(provider PriceProvider) *Service {
	svc := NewService(provider, zerolog.Nop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantDays int // Expected days before now (approximate)
	}{
		{
			name:     "1 month",
			input:    "1M",
			wantDays: 30,
		},
		{
			name:     "3 months",
			input:    "3M",
			wantDays: 90,
		},
		{
			name:     "6 months",
			input:    "6M",
			wantDays: 180,
		},
		{
			name:     "1 year",
			input:    "1Y",
			wantDays: 365,
		},
		{
			name:     "5 years",
			input:    "5Y",
			wantDays: 365 * 5,
		},
		{
			name:     "10 years",
			input:    "10Y",
			wantDays: 365 * 10,
		},
		{
			name:     "empty string",
			input:    "",
			wantDays: -1,
		},
		{
			name:     "invalid range",
			input:    "invalid",
			wantDays: -1,
		},
		{
			name:     "lowercase is rejected",
			input:    "1y",
			wantDays: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, ok := parseDateRange(tt.input, testNow)

			if tt.wantDays == -1 {
				assert.False(t, ok, "parseDateRange(%q) should be rejected", tt.input)
				return
			}

			require.True(t, ok)
			gotDays := testNow.Sub(from).Hours() / 24
			// Calendar months vary in length; a few days of slack is expected
			assert.InDelta(t, float64(tt.wantDays), gotDays, 6,
				"parseDateRange(%q) = %v days before now", tt.input, gotDays)
		})
	}
}

func TestSeries_FiltersGapsAndRounds(t *testing.T) {
	base := testNow.AddDate(0, 0, -5)
	provider := &stubProvider{quotes: []yahoo.Quote{
		{Date: base, AdjClose: fptr(100.456)},
		{Date: base.AddDate(0, 0, 1), AdjClose: nil},
		{Date: base.AddDate(0, 0, 2), AdjClose: fptr(0)},
		{Date: base.AddDate(0, 0, 3), AdjClose: fptr(103.5)},
	}}
	svc := newTestService(provider)

	points, err := svc.Series("AAPL", base, testNow)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, Point{Date: base.Format("2006-01-02"), Price: 100.46}, points[0])
	assert.Equal(t, 103.5, points[1].Price)
}

func TestSeries_ProviderError(t *testing.T) {
	svc := newTestService(&stubProvider{err: errors.New("boom")})

	_, err := svc.Series("AAPL", testNow.AddDate(0, -1, 0), testNow)
	assert.Error(t, err)
}

func TestSeriesForRange_InvalidRange(t *testing.T) {
	svc := newTestService(&stubProvider{})

	_, err := svc.SeriesForRange("AAPL", "2W")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDownsample(t *testing.T) {
	points := make([]Point, 1000)
	for i := range points {
		points[i] = Point{Date: time.Unix(int64(i), 0).Format("2006-01-02"), Price: float64(i)}
	}

	sampled := downsample(points, 260)

	assert.Len(t, sampled, 260)
	assert.Equal(t, points[0], sampled[0])
	assert.Equal(t, points[999], sampled[259])

	// Short series pass through untouched
	short := points[:50]
	assert.Equal(t, short, downsample(short, 260))
}

func TestStats(t *testing.T) {
	// A year of synthetic closes trending up with a dip in the middle
	var quotes []yahoo.Quote
	base := testNow.AddDate(0, 0, -260)
	for i := 0; i < 260; i++ {
		price := 100 + float64(i)*0.2 + 10*math.Sin(float64(i)/20)
		quotes = append(quotes, yahoo.Quote{Date: base.AddDate(0, 0, i), AdjClose: fptr(price)})
	}
	svc := newTestService(&stubProvider{quotes: quotes})

	stats, err := svc.Stats("AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", stats.Ticker)
	assert.Greater(t, stats.High52W, stats.Low52W)
	assert.NotEmpty(t, stats.High52WDate)
	assert.NotEmpty(t, stats.Low52WDate)
	require.NotNil(t, stats.SMA50)
	require.NotNil(t, stats.SMA200)
	require.NotNil(t, stats.RSI14)
	assert.GreaterOrEqual(t, *stats.RSI14, 0.0)
	assert.LessOrEqual(t, *stats.RSI14, 100.0)
	assert.Greater(t, stats.AnnualizedVolatility, 0.0)
	assert.Equal(t, stats.LastClose, quotesLast(quotes))
}

func TestStats_NoData(t *testing.T) {
	svc := newTestService(&stubProvider{quotes: []yahoo.Quote{
		{Date: testNow, AdjClose: nil},
	}})

	_, err := svc.Stats("GONE")
	assert.Error(t, err)
}

func quotesLast(quotes []yahoo.Quote) float64 {
	last := *quotes[len(quotes)-1].AdjClose
	return math.Round(last*100) / 100
}
