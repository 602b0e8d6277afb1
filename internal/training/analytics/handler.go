package analytics

import (
	"net/http"
	"strconv"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/auth"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

func (h *Handler) HandleOneRMProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.1rm_progression")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	exerciseID, err := strconv.Atoi(query.Get("exercise_id"))
	if err != nil {
		apperr.WriteMessage(w, "Invalid exercise_id", http.StatusBadRequest)
		return
	}

	points, err := h.analyzer.OneRMProgression(ctx, userID, exerciseID, query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		apperr.WriteError(w, err, "Failed to get 1RM progression")
		return
	}

	pkg.WriteJSON(w, points, http.StatusOK)
}

func (h *Handler) HandleVolumeTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.volume_trends")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	weeks := DefaultTrendWeeks
	if weeksParam := query.Get("weeks"); weeksParam != "" {
		var err error
		if weeks, err = strconv.Atoi(weeksParam); err != nil {
			apperr.WriteMessage(w, "Invalid weeks parameter. Must be a positive number.", http.StatusBadRequest)
			return
		}
	}

	trends, err := h.analyzer.VolumeTrends(ctx, userID, weeks, query.Get("muscle_group"))
	if err != nil {
		apperr.WriteError(w, err, "Failed to get volume trends")
		return
	}

	pkg.WriteJSON(w, trends, http.StatusOK)
}

func (h *Handler) HandleVolumeByWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.volume_by_week")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	totals, err := h.analyzer.VolumeByWeek(ctx, userID, query.Get("muscle_group"), query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		apperr.WriteError(w, err, "Failed to get weekly volume")
		return
	}

	pkg.WriteJSON(w, totals, http.StatusOK)
}

func (h *Handler) HandleCurrentWeekVolume(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.volume_current_week")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	week, err := h.analyzer.CurrentWeek(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get current week volume")
		return
	}

	pkg.WriteJSON(w, week, http.StatusOK)
}

func (h *Handler) HandleProgramVolumeAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.program_volume_analysis")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	analysis, err := h.analyzer.ProgramAnalysis(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to analyze program volume")
		return
	}

	pkg.WriteJSON(w, analysis, http.StatusOK)
}

func (h *Handler) HandleConsistency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.consistency")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	consistency, err := h.analyzer.Consistency(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get consistency metrics")
		return
	}

	pkg.WriteJSON(w, consistency, http.StatusOK)
}
