package bodyweight

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
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.log")
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
		log.Errorf("log body weight, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Log(ctx, userID, params)
	if err != nil {
		apperr.WriteError(w, err, "Failed to log body weight")
		return
	}

	pkg.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		var err error
		if limit, err = strconv.Atoi(limitParam); err != nil || limit < 0 {
			apperr.WriteMessage(w, "limit must be a positive number", http.StatusBadRequest)
			return
		}
	}

	entries, err := h.service.List(ctx, userID, limit)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get body weight history")
		return
	}

	pkg.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.latest")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.Latest(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get latest body weight")
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodyweight.delete")
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
		apperr.WriteError(w, err, "Failed to delete body weight entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
