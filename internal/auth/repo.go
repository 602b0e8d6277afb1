package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitflow/internal/telemetry/tracing"
	"github.com/2beens/fitflow/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user *User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	added := *user
	err = r.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, age, weight_kg, experience_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`,
		user.Username,
		user.PasswordHash,
		user.Age,
		user.WeightKg,
		user.ExperienceLevel,
	).Scan(&added.ID, &added.CreatedAt, &added.UpdatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &added, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get_by_username")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.getOne(ctx, `WHERE username = $1`, username)
}

func (r *Repo) GetByID(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.getOne(ctx, `WHERE id = $1`, id)
}

const userColumns = `id, username, password_hash, age, weight_kg::float8, experience_level, created_at, updated_at`

func (r *Repo) getOne(ctx context.Context, where string, arg any) (*User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users `+where, arg))
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		u     User
		level *string
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash,
		&u.Age, &u.WeightKg, &level,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if level != nil {
		l := ExperienceLevel(*level)
		u.ExperienceLevel = &l
	}

	return &u, nil
}

// UpdateProfile sets the given profile fields, the others keep their values.
func (r *Repo) UpdateProfile(ctx context.Context, id int, update ProfileUpdate) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update_profile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET age = COALESCE($2, age),
			weight_kg = COALESCE($3, weight_kg),
			experience_level = COALESCE($4, experience_level),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, update.Age, update.WeightKg, update.ExperienceLevel,
	))
}

// Delete removes the user, every owned row goes with it (ON DELETE CASCADE).
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
