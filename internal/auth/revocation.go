package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "fitflow-revoked-token||"

// Revoker keeps the ids of logged out tokens in redis, each one until
// the token itself would have expired.
type Revoker struct {
	redisClient *redis.Client
	// injectable clock, for tests
	Now func() time.Time
}

func NewRevoker(redisClient *redis.Client) *Revoker {
	return &Revoker{
		redisClient: redisClient,
		Now:         time.Now,
	}
}

func (r *Revoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.Now())
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return r.redisClient.Set(ctx, revokedKeyPrefix+tokenID, expiresAt.Unix(), ttl).Err()
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.redisClient.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
