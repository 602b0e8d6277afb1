package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/2beens/fitflow/internal/apperr"
	"github.com/2beens/fitflow/internal/audit"
	"github.com/2beens/fitflow/internal/telemetry/metrics"
	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth_test

var ErrWrongCredentials = errors.New("invalid credentials")

const minPasswordLength = 8

type usersRepo interface {
	Add(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (*User, error)
	Delete(ctx context.Context, id int) error
}

type tokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// programSeeder gives a freshly registered user a starter program.
type programSeeder interface {
	CreateDefault(ctx context.Context, userID int) error
}

type auditLog interface {
	Record(ctx context.Context, event audit.Event) error
	ListByUser(ctx context.Context, userID, limit int) ([]audit.Event, error)
}

type Service struct {
	repo           usersRepo
	tokens         *TokenService
	revoker        tokenRevoker
	seeder         programSeeder
	audit          auditLog
	metricsManager *metrics.Manager
	// injectable for tests, bcrypt at production cost is slow
	HashPasswordFunc func(password string) (string, error)
}

func NewService(
	repo usersRepo,
	tokens *TokenService,
	revoker tokenRevoker,
	seeder programSeeder,
	auditLog auditLog,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:             repo,
		tokens:           tokens,
		revoker:          revoker,
		seeder:           seeder,
		audit:            auditLog,
		metricsManager:   metricsManager,
		HashPasswordFunc: pkg.HashPassword,
	}
}

func validateRegisterParams(params RegisterParams) error {
	if l := len(params.Username); l < 3 || l > 255 {
		return apperr.Validation("username", "Username must be between 3 and 255 characters")
	}
	if addr, err := mail.ParseAddress(params.Username); err != nil || addr.Address != params.Username {
		return apperr.Validation("username", "Username must be a valid email address")
	}
	if len(params.Password) < minPasswordLength {
		return apperr.Validation("password", "Password must be at least %d characters", minPasswordLength)
	}
	return validateProfile(params.Age, params.WeightKg, params.ExperienceLevel)
}

func validateProfile(age *int, weightKg *float64, level *ExperienceLevel) error {
	if age != nil && (*age < 13 || *age > 100) {
		return apperr.Validation("age", "Age must be between 13 and 100")
	}
	if weightKg != nil && (*weightKg < 30 || *weightKg > 300) {
		return apperr.Validation("weight_kg", "Weight must be between 30 and 300 kg")
	}
	if level != nil && !level.Valid() {
		return apperr.Validation("experience_level", "Experience level must be one of: beginner, intermediate, advanced")
	}
	return nil
}

// record keeps the audit trail. A failed write is logged and the request goes on.
func (s *Service) record(ctx context.Context, userID int, eventType audit.EventType, data map[string]string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, audit.NewEvent(ctx, userID, eventType, data)); err != nil {
		log.Errorf("record audit event %s for user %d: %s", eventType, userID, err)
	}
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (_ *User, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.register")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if err := validateRegisterParams(params); err != nil {
		return nil, "", err
	}

	passwordHash, err := s.HashPasswordFunc(params.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Add(ctx, &User{
		Username:        params.Username,
		PasswordHash:    passwordHash,
		Age:             params.Age,
		WeightKg:        params.WeightKg,
		ExperienceLevel: params.ExperienceLevel,
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, "", apperr.Conflict("Username already exists")
		}
		return nil, "", fmt.Errorf("add user: %w", err)
	}
	s.metricsManager.CounterRegistrations.Inc()

	if s.seeder != nil {
		// registration stands even without the starter program
		if err := s.seeder.CreateDefault(ctx, user.ID); err != nil {
			log.Errorf("create default program for user %d: %s", user.ID, err)
		}
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	s.record(ctx, user.ID, audit.EventTypeRegister, nil)

	return user, token, nil
}

func (s *Service) Login(ctx context.Context, creds Credentials) (_ string, _ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.metricsManager.CounterLogins.WithLabelValues("failed").Inc()
			return "", nil, ErrWrongCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(creds.Password, user.PasswordHash) {
		s.metricsManager.CounterLogins.WithLabelValues("failed").Inc()
		return "", nil, ErrWrongCredentials
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	s.metricsManager.CounterLogins.WithLabelValues("ok").Inc()
	s.record(ctx, user.ID, audit.EventTypeLogin, nil)

	return token, user, nil
}

func (s *Service) Logout(ctx context.Context, claims *Claims) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.logout")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.record(ctx, claims.UserID, audit.EventTypeLogout, nil)
	return nil
}

// Authenticate verifies the token signature and expiry, and that it was not logged out.
func (s *Service) Authenticate(ctx context.Context, token string) (_ *Claims, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.authenticate")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revoked: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) Me(ctx context.Context, userID int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.me")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the caller's account. Users can only delete themselves.
func (s *Service) DeleteAccount(ctx context.Context, callerID, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.delete_account")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if callerID != userID {
		return apperr.Forbidden("Cannot delete another user's account")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperr.NotFound("user", userID)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.record(ctx, userID, audit.EventTypeAccountDeletion, map[string]string{"reason": "user_initiated"})
	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int, update ProfileUpdate) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.update_profile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if update.Empty() {
		return nil, apperr.Validation("body", "No fields to update")
	}
	if err := validateProfile(update.Age, update.WeightKg, update.ExperienceLevel); err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.NotFound("user", userID)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// AuditEvents lists the caller's own audit trail, newest first.
func (s *Service) AuditEvents(ctx context.Context, userID, limit int) (_ []audit.Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.audit_events")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if limit < 0 || limit > audit.MaxListLimit {
		return nil, apperr.Validation("limit", "limit must be between 1 and %d", audit.MaxListLimit)
	}

	events, err := s.audit.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
