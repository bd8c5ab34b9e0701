package yahoo

import "time"

// Quote is a single daily data point from the chart API. AdjClose is nil for
// non-trading days and provider gaps; callers decide how to treat gaps.
type Quote struct {
	Date     time.Time `json:"date"`
	AdjClose *float64  `json:"adj_close"`
}

// chartResponse mirrors the Yahoo Finance v8 chart API payload.
// Close and adjclose arrays carry JSON nulls for missing days, hence pointers.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}
