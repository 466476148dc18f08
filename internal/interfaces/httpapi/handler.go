package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
)

// MatchupService is the slice of the usecase layer the HTTP surface needs.
type MatchupService interface {
	AggregateWeek(ctx context.Context, week int) (usecase.WeekReport, error)
	ReconcileWeekMatchup(ctx context.Context, week int, matchupID int64) (matchup.Aggregated, error)
	CacheStatistics() usecase.CacheStatistics
	ClearCaches(ctx context.Context, scope string) (int, error)
}

type Handler struct {
	matchupService MatchupService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(matchupService MatchupService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchupService: matchupService,
		logger:         logger,
		validator:      validator.New(),
	}
}

type weekMatchupsRequest struct {
	Week int `validate:"required,gt=0"`
}

type reconcileMatchupRequest struct {
	Week      int   `validate:"required,gt=0"`
	MatchupID int64 `validate:"required,gt=0"`
}

type clearCacheRequest struct {
	Scope string `validate:"required,oneof=players teams scoring all"`
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetWeekMatchups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekMatchups")
	defer span.End()

	raw := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(raw)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a positive integer", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, weekMatchupsRequest{Week: week}); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.matchupService.AggregateWeek(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "aggregate week failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := toWeekMatchupsDTO(report)
	if report.Partial() {
		h.logger.WarnContext(ctx, "partial week served",
			"week", week,
			"run_id", report.RunID,
			"expected", report.ExpectedCount,
			"served", len(report.Matchups),
		)
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ReconcileWeekMatchup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReconcileWeekMatchup")
	defer span.End()

	week, weekErr := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	matchupID, idErr := strconv.ParseInt(strings.TrimSpace(r.PathValue("matchupId")), 10, 64)
	if weekErr != nil || idErr != nil {
		writeError(ctx, w, fmt.Errorf("%w: week and matchup id must be positive integers", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, reconcileMatchupRequest{Week: week, MatchupID: matchupID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchupService.ReconcileWeekMatchup(ctx, week, matchupID)
	if err != nil {
		h.logger.WarnContext(ctx, "reconcile matchup failed", "week", week, "matchup_id", matchupID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toMatchupDTO(item))
}

func (h *Handler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCacheStats")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, toCacheStatsDTO(h.matchupService.CacheStatistics()))
}

func (h *Handler) ClearCaches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCaches")
	defer span.End()

	scope := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scope")))
	if scope == "" {
		scope = usecase.CacheScopeAll
	}
	if err := h.validateRequest(ctx, clearCacheRequest{Scope: scope}); err != nil {
		writeError(ctx, w, err)
		return
	}

	removed, err := h.matchupService.ClearCaches(ctx, scope)
	if err != nil {
		h.logger.WarnContext(ctx, "clear caches failed", "scope", scope, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clearCacheDTO{Scope: scope, Removed: removed})
}
