package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/audit"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RegisterResponse struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

// withClientIP carries the caller address into the audit trail.
func withClientIP(ctx context.Context, r *http.Request) context.Context {
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Tracef("audit client ip: %s", err)
		return ctx
	}
	return audit.WithClientIP(ctx, ip)
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.register")
	defer span.End()
	ctx = withClientIP(ctx, r)

	if !pkg.IsJSONRequest(r) {
		apperr.WriteMessage(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var params RegisterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("register, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.service.Register(ctx, params)
	if err != nil {
		apperr.WriteError(w, err, "registration failed")
		return
	}

	log.Debugf("new user registered: %d", user.ID)
	pkg.WriteJSON(w, RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Token:    token,
	}, http.StatusCreated)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()
	ctx = withClientIP(ctx, r)

	if !pkg.IsJSONRequest(r) {
		apperr.WriteMessage(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Errorf("login, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if creds.Username == "" || creds.Password == "" {
		apperr.WriteMessage(w, "username and password are required", http.StatusBadRequest)
		return
	}

	token, user, err := h.service.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrWrongCredentials) {
			log.Tracef("failed login attempt for [%s]", creds.Username)
			apperr.WriteMessage(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		apperr.WriteError(w, err, "login failed")
		return
	}

	pkg.WriteJSON(w, LoginResponse{
		Token: token,
		User:  user,
	}, http.StatusOK)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()
	ctx = withClientIP(ctx, r)

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(ctx, claims); err != nil {
		apperr.WriteError(w, err, "logout failed")
		return
	}

	pkg.WriteJSON(w, map[string]string{"message": "logged out"}, http.StatusOK)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.me")
	defer span.End()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.Me(ctx, userID)
	if err != nil {
		apperr.WriteError(w, err, "failed to get user")
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.delete_user")
	defer span.End()
	ctx = withClientIP(ctx, r)

	callerID, ok := UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		apperr.WriteMessage(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteAccount(ctx, callerID, id); err != nil {
		apperr.WriteError(w, err, "failed to delete user")
		return
	}

	log.Debugf("user %d deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.update_me")
	defer span.End()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if !pkg.IsJSONRequest(r) {
		apperr.WriteMessage(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var update ProfileUpdate
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&update); err != nil {
		log.Errorf("update profile, unmarshal json params: %s", err)
		apperr.WriteMessage(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.UpdateProfile(ctx, userID, update)
	if err != nil {
		apperr.WriteError(w, err, "failed to update profile")
		return
	}

	pkg.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) HandleAuditEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.audit_events")
	defer span.End()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		apperr.WriteMessage(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		if limit, err = strconv.Atoi(limitStr); err != nil || limit <= 0 {
			apperr.WriteMessage(w, "limit must be a positive number", http.StatusBadRequest)
			return
		}
	}

	events, err := h.service.AuditEvents(ctx, userID, limit)
	if err != nil {
		apperr.WriteError(w, err, "failed to list audit events")
		return
	}

	pkg.WriteJSON(w, events, http.StatusOK)
}
