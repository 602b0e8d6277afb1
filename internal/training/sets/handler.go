package sets

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/auth"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.log")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !pkg.IsJSONRequest(r) {
		apperr.WriteMessage(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var params LogParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("log set, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	set, err := h.service.Log(ctx, userID, params)
	if err != nil {
		apperr.WriteError(w, err, "Failed to log set")
		return
	}

	pkg.WriteJSON(w, set.LogResponse(), http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	workoutID, err := strconv.Atoi(r.URL.Query().Get("workout_id"))
	if err != nil || workoutID <= 0 {
		apperr.WriteMessage(w, "workout_id query parameter is required", http.StatusBadRequest)
		return
	}

	sets, err := h.service.ListForWorkout(ctx, userID, workoutID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to list sets")
		return
	}

	pkg.WriteJSON(w, sets, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.delete")
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

	if err := h.service.Delete(ctx, userID, id); err != nil {
		apperr.WriteError(w, err, "Failed to delete set")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
