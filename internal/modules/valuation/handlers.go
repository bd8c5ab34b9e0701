package valuation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fomo-calculator/internal/modules/charts"
)

// ChartSource supplies the price series rendered next to a valuation result.
// The charts service satisfies it; a nil source simply omits the series.
type ChartSource interface {
	Series(ticker string, from, to time.Time) ([]charts.Point, error)
}

// Handler handles valuation HTTP requests
type Handler struct {
	service *Service
	charts  ChartSource
	now     func() time.Time
	log     zerolog.Logger
}

// NewHandler creates a new valuation handler
func NewHandler(service *Service, charts ChartSource, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		charts:  charts,
		now:     time.Now,
		log:     log.With().Str("handler", "valuation").Logger(),
	}
}

type calculateRequest struct {
	Ticker         string  `json:"ticker"`
	Date           string  `json:"date"`
	Amount         float64 `json:"amount"`
	InvestmentType string  `json:"investment_type"`
}

type calculateResponse struct {
	*Result
	ChartData []charts.Point `json:"chart_data,omitempty"`
}

// HandleCalculate handles POST /api/calculate
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var body calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := h.buildRequest(body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Evaluate(*req)
	if err != nil {
		h.writeEvaluateError(w, err)
		return
	}

	resp := calculateResponse{Result: result}
	if h.charts != nil {
		series, chartErr := h.charts.Series(req.Ticker, req.PurchaseDate, h.now())
		if chartErr != nil {
			// The valuation stands on its own; a missing chart is cosmetic
			h.log.Warn().Err(chartErr).Str("ticker", req.Ticker).Msg("Chart series unavailable")
		} else {
			resp.ChartData = series
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// buildRequest validates and normalizes the request body
func (h *Handler) buildRequest(body calculateRequest) (*Request, error) {
	ticker := strings.ToUpper(strings.TrimSpace(body.Ticker))
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}

	if body.Date == "" {
		return nil, fmt.Errorf("date is required")
	}
	purchaseDate, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", body.Date)
	}
	if purchaseDate.After(h.now()) {
		return nil, fmt.Errorf("date must not be in the future")
	}

	if body.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	var model InvestmentModel
	switch strings.ToLower(strings.TrimSpace(body.InvestmentType)) {
	case "", string(ModelOptions):
		model = ModelOptions
	case string(ModelShares):
		model = ModelShares
	default:
		return nil, fmt.Errorf("invalid investment_type %q, expected shares or options", body.InvestmentType)
	}

	return &Request{
		Ticker:       ticker,
		PurchaseDate: purchaseDate,
		Amount:       body.Amount,
		Model:        model,
	}, nil
}

// writeEvaluateError maps engine failures to HTTP statuses
func (h *Handler) writeEvaluateError(w http.ResponseWriter, err error) {
	var invalidInput *InvalidInputError
	if errors.As(err, &invalidInput) {
		h.writeError(w, http.StatusBadRequest, invalidInput.Error())
		return
	}

	var priceUnavailable *PriceUnavailableError
	if errors.As(err, &priceUnavailable) {
		h.writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("could not fetch price for %s at %s", priceUnavailable.Ticker, priceUnavailable.At))
		return
	}

	var insufficientCapital *InsufficientCapitalError
	if errors.As(err, &insufficientCapital) {
		h.writeError(w, http.StatusUnprocessableEntity, insufficientCapital.Error())
		return
	}

	h.log.Error().Err(err).Msg("Valuation failed")
	h.writeError(w, http.StatusInternalServerError, "valuation failed")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
