package report

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mkt-tools/pulse-report/pkg/adapters"
	"github.com/mkt-tools/pulse-report/pkg/models/api"
	"github.com/mkt-tools/pulse-report/pkg/services/cohort"
	"github.com/mkt-tools/pulse-report/pkg/services/extract"
	reportsvc "github.com/mkt-tools/pulse-report/pkg/services/report"
	reportstore "github.com/mkt-tools/pulse-report/pkg/store/duckdb/report"
)

const defaultListLimit = 20

// Generator is the slice of the engine the handler needs.
type Generator interface {
	GenerateReport(ctx context.Context, sources extract.SourceData) (*reportsvc.Result, error)
}

type Handler struct {
	generator Generator
	runs      reportstore.Store
}

func NewHandler(generator Generator, runs reportstore.Store) *Handler {
	return &Handler{
		generator: generator,
		runs:      runs,
	}
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Business == "" {
		http.Error(w, "business is required", http.StatusBadRequest)
		return
	}

	result, err := h.generator.GenerateReport(ctx, extract.SourceData{
		Quicksight: req.QuicksightData,
		Ignite:     req.IgniteData,
		Zylo:       req.ZyloData,
		MSP:        req.MSPData,
	})
	if err != nil {
		logger.Error().Err(err).Str("business", req.Business).Msg("report generation failed")
		if errors.Is(err, cohort.ErrUnresolvedCohort) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	run, err := adapters.MapResultDomainToStore(newRunID(), req.Business, result, time.Now().UTC())
	if err != nil {
		logger.Error().Err(err).Msg("failed to map report run")
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	// Archiving failure does not discard a generated report.
	if err := h.runs.Add(ctx, run); err != nil {
		logger.Error().Err(err).Str("run", run.ID).Msg("failed to archive report run")
	}

	response, err := adapters.MapRunStoreToApi(run)
	if err != nil {
		logger.Error().Err(err).Msg("failed to map report run response")
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode report run")
	}
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "run")

	run, err := h.runs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, reportstore.ErrRunNotFound) {
			http.Error(w, "report run not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("run", id).Msg("failed to load report run")
		http.Error(w, "failed to load report run", http.StatusInternalServerError)
		return
	}

	response, err := adapters.MapRunStoreToApi(*run)
	if err != nil {
		logger.Error().Err(err).Str("run", id).Msg("failed to map report run")
		http.Error(w, "failed to load report run", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("run", id).Msg("failed to encode report run")
	}
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	business := chi.URLParam(r, "business")

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid 'limit' value", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	runs, err := h.runs.ListByBusiness(ctx, business, limit)
	if err != nil {
		logger.Error().Err(err).Str("business", business).Msg("failed to list report runs")
		http.Error(w, "failed to list report runs", http.StatusInternalServerError)
		return
	}

	response := make([]api.ReportRunSummary, 0, len(runs))
	for _, run := range runs {
		response = append(response, adapters.MapRunStoreToSummaryApi(run))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("business", business).Msg("failed to encode report runs")
	}
}

func (h *Handler) GetLatestRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	business := chi.URLParam(r, "business")

	run, err := h.runs.Latest(ctx, business)
	if err != nil {
		if errors.Is(err, reportstore.ErrRunNotFound) {
			http.Error(w, "no report runs for business", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("business", business).Msg("failed to load latest report run")
		http.Error(w, "failed to load latest report run", http.StatusInternalServerError)
		return
	}

	response, err := adapters.MapRunStoreToApi(*run)
	if err != nil {
		logger.Error().Err(err).Str("business", business).Msg("failed to map report run")
		http.Error(w, "failed to load latest report run", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Str("business", business).Msg("failed to encode report run")
	}
}

func newRunID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "run-" + strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return "run-" + hex.EncodeToString(buf)
}
