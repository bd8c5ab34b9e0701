package charts

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fomo-calculator/internal/clients/yahoo"
	"github.com/aristath/fomo-calculator/pkg/formulas"
)

// Point is one chart sample as the UI consumes it
type Point struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// Stats summarizes a ticker over the trailing 52 weeks. Indicator fields are
// nil when the history is too short to compute them.
type Stats struct {
	Ticker               string   `json:"ticker"`
	LastClose            float64  `json:"last_close"`
	High52W              float64  `json:"high_52w"`
	High52WDate          string   `json:"high_52w_date"`
	Low52W               float64  `json:"low_52w"`
	Low52WDate           string   `json:"low_52w_date"`
	SMA50                *float64 `json:"sma_50,omitempty"`
	SMA200               *float64 `json:"sma_200,omitempty"`
	RSI14                *float64 `json:"rsi_14,omitempty"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
}

// PriceProvider is the slice of the market-data client this module needs
type PriceProvider interface {
	DailyCloses(symbol string, start, end time.Time) ([]yahoo.Quote, error)
}

// maxChartPoints caps the series size sent to the UI; multi-year histories
// are downsampled to roughly one point per trading week.
const maxChartPoints = 260

const statsWindowDays = 371 // 52 weeks plus a lookback cushion

// ErrInvalidRange reports an unknown chart range label
var ErrInvalidRange = errors.New("invalid chart range")

// Service builds chart series and summary statistics from daily closes
type Service struct {
	provider PriceProvider
	now      func() time.Time
	log      zerolog.Logger
}

// NewService creates a new charts service
func NewService(provider PriceProvider, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		now:      time.Now,
		log:      log.With().Str("component", "charts").Logger(),
	}
}

// Series returns the gap-free daily close series for [from, to], downsampled
// to at most maxChartPoints samples.
func (s *Service) Series(ticker string, from, to time.Time) ([]Point, error) {
	quotes, err := s.provider.DailyCloses(ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch series for %s: %w", ticker, err)
	}

	points := make([]Point, 0, len(quotes))
	for _, q := range quotes {
		if q.AdjClose == nil || *q.AdjClose <= 0 {
			continue
		}
		points = append(points, Point{
			Date:  q.Date.Format("2006-01-02"),
			Price: formulas.Round2(*q.AdjClose),
		})
	}

	return downsample(points, maxChartPoints), nil
}

// SeriesForRange resolves a UI range label (1M, 3M, 6M, 1Y, 5Y, 10Y) and
// returns the corresponding series ending now.
func (s *Service) SeriesForRange(ticker, rangeStr string) ([]Point, error) {
	from, ok := parseDateRange(rangeStr, s.now())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, rangeStr)
	}
	return s.Series(ticker, from, s.now())
}

// Stats computes the 52-week summary for a ticker
func (s *Service) Stats(ticker string) (*Stats, error) {
	to := s.now()
	from := to.AddDate(0, 0, -statsWindowDays)

	quotes, err := s.provider.DailyCloses(ticker, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", ticker, err)
	}

	var closes []float64
	var dates []time.Time
	for _, q := range quotes {
		if q.AdjClose == nil || *q.AdjClose <= 0 {
			continue
		}
		closes = append(closes, *q.AdjClose)
		dates = append(dates, q.Date)
	}

	if len(closes) == 0 {
		return nil, fmt.Errorf("no trading data for %s", ticker)
	}

	highIdx, lowIdx := 0, 0
	for i, c := range closes {
		if c > closes[highIdx] {
			highIdx = i
		}
		if c < closes[lowIdx] {
			lowIdx = i
		}
	}

	stats := &Stats{
		Ticker:               ticker,
		LastClose:            formulas.Round2(closes[len(closes)-1]),
		High52W:              formulas.Round2(closes[highIdx]),
		High52WDate:          dates[highIdx].Format("2006-01-02"),
		Low52W:               formulas.Round2(closes[lowIdx]),
		Low52WDate:           dates[lowIdx].Format("2006-01-02"),
		SMA50:                round2Ptr(formulas.CalculateSMA(closes, 50)),
		SMA200:               round2Ptr(formulas.CalculateSMA(closes, 200)),
		RSI14:                round2Ptr(formulas.CalculateRSI(closes, 14)),
		AnnualizedVolatility: formulas.Round4(formulas.AnnualizedVolatility(formulas.CalculateReturns(closes))),
	}

	return stats, nil
}

// parseDateRange maps a UI range label to a window start relative to now.
// Unknown labels report false.
func parseDateRange(rangeStr string, now time.Time) (time.Time, bool) {
	switch rangeStr {
	case "1M":
		return now.AddDate(0, -1, 0), true
	case "3M":
		return now.AddDate(0, -3, 0), true
	case "6M":
		return now.AddDate(0, -6, 0), true
	case "1Y":
		return now.AddDate(-1, 0, 0), true
	case "5Y":
		return now.AddDate(-5, 0, 0), true
	case "10Y":
		return now.AddDate(-10, 0, 0), true
	default:
		return time.Time{}, false
	}
}

// downsample thins a series to at most max points, always keeping the last one
func downsample(points []Point, max int) []Point {
	if len(points) <= max {
		return points
	}

	step := float64(len(points)-1) / float64(max-1)
	sampled := make([]Point, 0, max)
	for i := 0; i < max-1; i++ {
		sampled = append(sampled, points[int(float64(i)*step)])
	}
	return append(sampled, points[len(points)-1])
}

func round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	rounded := formulas.Round2(*v)
	return &rounded
}
