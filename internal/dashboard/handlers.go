package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/warehouse"
	"github.com/salesdash/salesdash/pkg/version"
)

// APIHandlers serves the JSON endpoints behind the dashboard charts. Every
// request recomputes its query against the store; nothing is cached across
// interactions.
type APIHandlers struct {
	wh *warehouse.Warehouse
}

// NewAPIHandlers creates handlers over a built warehouse.
func NewAPIHandlers(wh *warehouse.Warehouse) *APIHandlers {
	return &APIHandlers{wh: wh}
}

type successResponse struct {
	Data    any  `json:"data"`
	Success bool `json:"success"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(successResponse{Data: data, Success: true})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg, Success: false})
}

// HandleCities returns all cities available in the store, for the dropdown.
func (h *APIHandlers) HandleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.wh.Cities(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Cities query failed")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeSuccess(w, cities)
}

// HandlePopularity returns the global per-service order ranking.
func (h *APIHandlers) HandlePopularity(w http.ResponseWriter, r *http.Request) {
	rows, err := h.wh.Popularity(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("Popularity query failed")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeSuccess(w, rows)
}

// HandleCityProfit returns per-service revenue for one city. An unknown city
// yields an empty data array so the client renders a placeholder chart.
func (h *APIHandlers) HandleCityProfit(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeError(w, http.StatusBadRequest, "city parameter is required")
		return
	}

	rows, err := h.wh.CityProfit(r.Context(), city)
	if err != nil {
		logging.Error().Err(err).Str("city", city).Msg("City profit query failed")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeSuccess(w, rows)
}

// HandleCityYears returns per-year sales counts for one city.
func (h *APIHandlers) HandleCityYears(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeError(w, http.StatusBadRequest, "city parameter is required")
		return
	}

	rows, err := h.wh.CityProfitPerYear(r.Context(), city)
	if err != nil {
		logging.Error().Err(err).Str("city", city).Msg("City yearly sales query failed")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeSuccess(w, rows)
}

// HandleHealth reports liveness.
func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version.Short(),
	})
}
