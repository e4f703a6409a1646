package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/askcarbuddy/carscout/pkg/adapters"
	"github.com/askcarbuddy/carscout/pkg/models/api"
	"github.com/askcarbuddy/carscout/pkg/models/domain"
	"github.com/askcarbuddy/carscout/pkg/models/store"
	"github.com/askcarbuddy/carscout/pkg/services/listing"
	reportstore "github.com/askcarbuddy/carscout/pkg/store/sqlite/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Analyzer runs the full analysis pipeline for one listing.
type Analyzer interface {
	Analyze(ctx context.Context, input domain.ListingInput, paid bool) (*domain.Report, error)
}

type Handler struct {
	analyzer Analyzer
	reports  reportstore.Store
}

func NewHandler(analyzer Analyzer, reports reportstore.Store) *Handler {
	return &Handler{
		analyzer: analyzer,
		reports:  reports,
	}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrInvalidInput)
		return
	}

	generated, err := h.analyzer.Analyze(ctx, adapters.MapAnalyzeRequestApiToDomain(req), req.Paid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := adapters.MapReportDomainToApi(*generated)
	h.cacheReport(ctx, response)

	writeJSON(w, http.StatusOK, response)
}

// cacheReport persists the rendered report so it can be re-fetched by
// id. Cache write failures are logged, never surfaced.
func (h *Handler) cacheReport(ctx context.Context, response api.Report) {
	logger := zerolog.Ctx(ctx)

	payload, err := json.Marshal(response)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode report for cache")
		return
	}
	err = h.reports.Save(ctx, store.Report{
		ID:        response.ID,
		Tier:      response.Tier,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error().Err(err).Str("report_id", response.ID).Msg("failed to cache report")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportID")

	cached, err := h.reports.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(cached.Payload)
}

func (h *Handler) ParseURL(w http.ResponseWriter, r *http.Request) {
	var req api.ParseURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, r, domain.ErrInvalidInput)
		return
	}

	parsed, err := listing.ParseURL(req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, adapters.MapListingInputDomainToApi(parsed))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "carscout",
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
	}

	logger.Error().
		Err(err).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("request failed")

	writeJSON(w, status, api.Error{Error: err.Error()})
}
