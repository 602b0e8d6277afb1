package exercises

import (
	"net/http"
	"strconv"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/auth"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"

	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	query := r.URL.Query()
	exercises, err := h.service.List(ctx, Filter{
		MuscleGroup:     query.Get("muscle_group"),
		Equipment:       query.Get("equipment"),
		MovementPattern: query.Get("movement_pattern"),
		Difficulty:      query.Get("difficulty"),
	})
	if err != nil {
		apperr.WriteError(w, err, "Failed to list exercises")
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperr.WriteMessage(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	exercise, err := h.service.Get(ctx, id)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get exercise")
		return
	}

	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (h *Handler) HandleLastPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.last_performance")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperr.WriteMessage(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	perf, err := h.service.LastPerformance(ctx, userID, id)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get last performance")
		return
	}

	pkg.WriteJSON(w, perf, http.StatusOK)
}
