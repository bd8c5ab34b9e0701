package jobs

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fomo-calculator/internal/clients/yahoo"
)

// PriceProvider is the market-data capability the health check probes
type PriceProvider interface {
	DailyCloses(symbol string, start, end time.Time) ([]yahoo.Quote, error)
}

// ProviderCheckJob periodically verifies the market-data provider is reachable
// and returning trading data, using a liquid canary symbol. It only observes
// and logs; nothing is stored.
type ProviderCheckJob struct {
	provider PriceProvider
	symbol   string
	log      zerolog.Logger
}

// NewProviderCheck creates a provider health-check job
func NewProviderCheck(provider PriceProvider, symbol string, log zerolog.Logger) *ProviderCheckJob {
	return &ProviderCheckJob{
		provider: provider,
		symbol:   symbol,
		log:      log.With().Str("job", "provider_check").Logger(),
	}
}

// Name implements scheduler.Job
func (j *ProviderCheckJob) Name() string {
	return "provider_check"
}

// Run implements scheduler.Job
func (j *ProviderCheckJob) Run() error {
	now := time.Now()

	quotes, err := j.provider.DailyCloses(j.symbol, now.AddDate(0, 0, -5), now)
	if err != nil {
		return fmt.Errorf("provider unreachable: %w", err)
	}

	present := 0
	var latest *yahoo.Quote
	for i := range quotes {
		if quotes[i].AdjClose != nil && *quotes[i].AdjClose > 0 {
			present++
			latest = &quotes[i]
		}
	}

	if latest == nil {
		return fmt.Errorf("provider returned no trading data for %s", j.symbol)
	}

	j.log.Info().
		Str("symbol", j.symbol).
		Int("quotes", present).
		Float64("latest", *latest.AdjClose).
		Time("latest_date", latest.Date).
		Msg("Market data provider healthy")

	return nil
}
