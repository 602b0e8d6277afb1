package testing

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/fitflow/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// GetDBPool connects to a real postgres and applies the schema, used by the integration tagged tests.
func GetDBPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	t.Logf("using postgres host: %s:%s", host, port)

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         port,
		DBName:         "fitflow",
		DBPassword:     os.Getenv("FITFLOW_DB_PASSWORD"),
		TracingEnabled: false,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, dbPool))

	t.Cleanup(dbPool.Close)
	return dbPool
}
