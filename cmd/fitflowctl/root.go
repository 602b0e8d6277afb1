package main

import (
	"context"
	"fmt"
	"os"

	"github.com/2beens/fitflow/internal/config"
	"github.com/2beens/fitflow/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagEnv        string
	flagConfigPath string
	flagEnvFile    string
)

var rootCmd = &cobra.Command{
	Use:   "fitflowctl",
	Short: "FitFlow operator tooling",
	Long: `fitflowctl runs maintenance tasks against a FitFlow database.

EXAMPLES:

  $ fitflowctl seed exercises --file assets/exercises.yaml
  $ fitflowctl landmarks
  $ fitflowctl audit --since 72h
  $ fitflowctl hash-password s3cret
  $ fitflowctl gen-secret --bytes 64`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// secrets are optional, the db password may come from the shell env
		_ = godotenv.Load(flagEnvFile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "envfile", ".env", "optional dotenv file with secrets")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(landmarksCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(genSecretCmd)
}

func openDBPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load(flagEnv, flagConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: os.Getenv("FITFLOW_DB_PASSWORD"),
		MaxConns:   2,
	})
	if err != nil {
		return nil, fmt.Errorf("db pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate db: %w", err)
		}
	}

	return pool, nil
}
