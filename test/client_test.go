//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/fitflow/internal/auth"

	"github.com/brianvoe/gofakeit/v6"
)

const testPassword = "correct-horse-battery"

type testUser struct {
	ID       int
	Username string
	Token    string
}

// request sends body as JSON when non nil, and decodes the response into out when non nil.
func (s *IntegrationTestSuite) request(
	ctx context.Context,
	method, path, token string,
	body any,
	out any,
) int {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	if out != nil && len(respBytes) > 0 {
		s.Require().NoError(json.Unmarshal(respBytes, out), "body: %s", respBytes)
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) registerUser(ctx context.Context) testUser {
	username := fmt.Sprintf("%s.%d@fitflow.test", gofakeit.LetterN(8), gofakeit.Number(1000, 999999))
	var resp auth.RegisterResponse
	status := s.request(ctx, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":         username,
		"password":         testPassword,
		"age":              gofakeit.Number(18, 60),
		"weight_kg":        80.5,
		"experience_level": "intermediate",
	}, &resp)
	s.Require().Equal(http.StatusCreated, status)
	s.Require().NotEmpty(resp.Token)

	return testUser{ID: resp.UserID, Username: username, Token: resp.Token}
}
