package cardio

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
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cardio.create")
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

	var params CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("create vo2max session, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Create(ctx, userID, params)
	if err != nil {
		apperr.WriteError(w, err, "Failed to create VO2max session")
		return
	}

	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cardio.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	query := ListQuery{
		StartDate:    q.Get("start_date"),
		EndDate:      q.Get("end_date"),
		ProtocolType: q.Get("protocol_type"),
	}
	var err error
	if limitParam := q.Get("limit"); limitParam != "" {
		if query.Limit, err = strconv.Atoi(limitParam); err != nil || query.Limit < 1 {
			apperr.WriteMessage(w, "limit must be a positive number", http.StatusBadRequest)
			return
		}
	}
	if offsetParam := q.Get("offset"); offsetParam != "" {
		if query.Offset, err = strconv.Atoi(offsetParam); err != nil || query.Offset < 0 {
			apperr.WriteMessage(w, "offset must be a non-negative number", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.List(ctx, userID, query)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get VO2max sessions")
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cardio.get")
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

	session, err := h.service.Get(ctx, userID, id)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get VO2max session")
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cardio.update")
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

	if !pkg.IsJSONRequest(r) {
		apperr.WriteMessage(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var update SessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Errorf("update vo2max session, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.Update(ctx, userID, id, update)
	if err != nil {
		apperr.WriteError(w, err, "Failed to update VO2max session")
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.cardio.progression")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	points, err := h.service.Progression(ctx, userID, r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	if err != nil {
		apperr.WriteError(w, err, "Failed to get VO2max progression")
		return
	}

	pkg.WriteJSON(w, map[string]any{"sessions": points}, http.StatusOK)
}
