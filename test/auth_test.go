//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/2beens/fitflow/internal/audit"
	"github.com/2beens/fitflow/internal/auth"
	"github.com/2beens/fitflow/internal/training/programs"
)

func (s *IntegrationTestSuite) TestHealth() {
	var resp map[string]string
	status := s.request(context.Background(), http.MethodGet, "/health", "", nil, &resp)
	s.Equal(http.StatusOK, status)
	s.Equal(map[string]string{"status": "ok"}, resp)
}

func (s *IntegrationTestSuite) TestRegisterAndLogin() {
	ctx := context.Background()
	user := s.registerUser(ctx)

	// same username again
	var errResp map[string]string
	status := s.request(ctx, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": user.Username,
		"password": testPassword,
	}, &errResp)
	s.Equal(http.StatusConflict, status)
	s.Equal("Username already exists", errResp["error"])

	status = s.request(ctx, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": user.Username,
		"password": "wrong-password",
	}, nil)
	s.Equal(http.StatusUnauthorized, status)

	var loginResp auth.LoginResponse
	status = s.request(ctx, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": user.Username,
		"password": testPassword,
	}, &loginResp)
	s.Require().Equal(http.StatusOK, status)
	s.NotEmpty(loginResp.Token)
	s.Require().NotNil(loginResp.User)
	s.Equal(user.ID, loginResp.User.ID)

	var me map[string]any
	status = s.request(ctx, http.MethodGet, "/api/users/me", loginResp.Token, nil, &me)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(user.Username, me["username"])
	s.NotContains(me, "password_hash")
}

func (s *IntegrationTestSuite) TestRegister_seedsDefaultProgram() {
	ctx := context.Background()
	user := s.registerUser(ctx)

	var program programs.Program
	status := s.request(ctx, http.MethodGet, "/api/programs", user.Token, nil, &program)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(programs.PhaseMEV, program.MesocyclePhase)
	s.Equal(1, program.MesocycleWeek)
	s.Len(program.Days, 6)
}

func (s *IntegrationTestSuite) TestLogout_revokesToken() {
	ctx := context.Background()
	user := s.registerUser(ctx)

	s.Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/users/me", user.Token, nil, nil))
	s.Equal(http.StatusOK, s.request(ctx, http.MethodPost, "/api/auth/logout", user.Token, nil, nil))
	s.Equal(http.StatusUnauthorized, s.request(ctx, http.MethodGet, "/api/users/me", user.Token, nil, nil))
}

func (s *IntegrationTestSuite) TestDeleteUser() {
	ctx := context.Background()
	alice := s.registerUser(ctx)
	bob := s.registerUser(ctx)

	status := s.request(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", bob.ID), alice.Token, nil, nil)
	s.Equal(http.StatusForbidden, status)

	status = s.request(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", alice.ID), alice.Token, nil, nil)
	s.Equal(http.StatusNoContent, status)

	var count int
	s.Require().NoError(s.DB.QueryRow(`SELECT COUNT(*) FROM programs WHERE user_id = $1`, alice.ID).Scan(&count))
	s.Zero(count)
}

func (s *IntegrationTestSuite) TestProtectedRoute_withoutToken() {
	status := s.request(context.Background(), http.MethodGet, "/api/workouts", "", nil, nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestUpdateMe_andAuditEvents() {
	ctx := context.Background()
	user := s.registerUser(ctx)

	var me map[string]any
	status := s.request(ctx, http.MethodPatch, "/api/users/me", user.Token, map[string]any{"weight_kg": 77.5}, &me)
	s.Require().Equal(http.StatusOK, status)
	s.Equal(77.5, me["weight_kg"])
	s.Equal("intermediate", me["experience_level"])

	s.Equal(http.StatusBadRequest, s.request(ctx, http.MethodPatch, "/api/users/me", user.Token, map[string]any{"age": 7}, nil))
	s.Equal(http.StatusBadRequest, s.request(ctx, http.MethodPatch, "/api/users/me", user.Token, map[string]any{}, nil))

	var events []audit.Event
	s.Require().Equal(http.StatusOK, s.request(ctx, http.MethodGet, "/api/users/me/audit-events", user.Token, nil, &events))
	s.Require().NotEmpty(events)
	s.Equal(audit.EventTypeRegister, events[len(events)-1].Type)
}
