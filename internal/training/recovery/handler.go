package recovery

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

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.create")
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

	var checkIn CheckIn
	if err := json.NewDecoder(r.Body).Decode(&checkIn); err != nil {
		log.Errorf("recovery assessment, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.Assess(ctx, userID, checkIn)
	if err != nil {
		apperr.WriteError(w, err, "Failed to create recovery assessment")
		return
	}

	pkg.WriteJSON(w, assessment.Result, http.StatusCreated)
}

func (h *Handler) HandleGetToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.today")
	defer span.End()

	callerID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if err != nil {
		apperr.WriteMessage(w, "error, user_id NaN", http.StatusBadRequest)
		return
	}

	assessment, err := h.service.ForDate(ctx, callerID, userID, h.service.Today())
	if err != nil {
		apperr.WriteError(w, err, "Failed to fetch recovery assessment")
		return
	}

	pkg.WriteJSON(w, assessment, http.StatusOK)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if limit, err = strconv.Atoi(limitStr); err != nil || limit < 1 {
			apperr.WriteMessage(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
	}

	assessments, err := h.service.History(ctx, userID, limit)
	if err != nil {
		apperr.WriteError(w, err, "Failed to list recovery assessments")
		return
	}

	pkg.WriteJSON(w, assessments, http.StatusOK)
}
