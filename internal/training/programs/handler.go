package programs

import (
	"encoding/json"
	"errors"
	"io"
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

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.create")
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
		log.Errorf("create program, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	program, err := h.service.Create(ctx, userID, params)
	if err != nil {
		apperr.WriteError(w, err, "Failed to create program")
		return
	}

	pkg.WriteJSON(w, program, http.StatusCreated)
}

func (h *Handler) HandleGetLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.latest")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	program, err := h.service.Latest(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get program")
		return
	}

	pkg.WriteJSON(w, program, http.StatusOK)
}

func (h *Handler) HandleAdvancePhase(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.advance_phase")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	programID, ok := pathID(r)
	if !ok {
		apperr.WriteMessage(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	// the body is optional, an empty one follows the regular progression
	var req AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Errorf("advance phase, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.AdvancePhase(ctx, userID, programID, req)
	if err != nil {
		apperr.WriteError(w, err, "Failed to advance phase")
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

type addExerciseRequest struct {
	ProgramDayID int `json:"program_day_id"`
	ExerciseParams
}

func (h *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.add_exercise")
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

	var req addExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add program exercise, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	change, err := h.service.AddExercise(ctx, userID, req.ProgramDayID, req.ExerciseParams)
	if err != nil {
		apperr.WriteError(w, err, "Failed to add program exercise")
		return
	}

	pkg.WriteJSON(w, change, http.StatusCreated)
}

func (h *Handler) HandleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.update_exercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		apperr.WriteMessage(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if !pkg.IsJSONRequest(r) {
		apperr.WriteMessage(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var update ExerciseUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Errorf("update program exercise, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	change, err := h.service.UpdateExercise(ctx, userID, id, update)
	if err != nil {
		apperr.WriteError(w, err, "Failed to update program exercise")
		return
	}

	pkg.WriteJSON(w, change, http.StatusOK)
}

func (h *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.delete_exercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		apperr.WriteMessage(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	change, err := h.service.DeleteExercise(ctx, userID, id)
	if err != nil {
		apperr.WriteError(w, err, "Failed to delete program exercise")
		return
	}

	pkg.WriteJSON(w, change, http.StatusOK)
}

func (h *Handler) HandleSwapExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.swap_exercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		apperr.WriteMessage(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if !pkg.IsJSONRequest(r) {
		apperr.WriteMessage(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("swap program exercise, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.SwapExercise(ctx, userID, id, req)
	if err != nil {
		apperr.WriteError(w, err, "Failed to swap exercise")
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) HandleReorderExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.reorder_exercises")
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

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("reorder program exercises, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ReorderExercises(ctx, userID, req)
	if err != nil {
		apperr.WriteError(w, err, "Failed to reorder exercises")
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) HandleListDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list_days")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	days, err := h.service.Days(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to list program days")
		return
	}

	pkg.WriteJSON(w, days, http.StatusOK)
}

func (h *Handler) HandleRecommendedDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.recommended_day")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	day, err := h.service.RecommendedDay(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "Failed to get recommended program day")
		return
	}

	pkg.WriteJSON(w, day, http.StatusOK)
}
