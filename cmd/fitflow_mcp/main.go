// Package main runs the FitFlow training MCP server over stdio, for local
// assistant clients that read a user's training data.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/2beens/fitflow/internal/config"
	"github.com/2beens/fitflow/internal/db"
	"github.com/2beens/fitflow/internal/telemetry/metrics"
	"github.com/2beens/fitflow/internal/training/analytics"
	trainingmcp "github.com/2beens/fitflow/internal/training/mcp"
	"github.com/2beens/fitflow/internal/training/programs"
	"github.com/2beens/fitflow/internal/training/recovery"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	envFile := flag.String("envfile", ".env", "optional dotenv file with secrets")
	flag.Parse()

	// stdout is the MCP transport, keep logs on stderr
	log.SetOutput(os.Stderr)

	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     os.Getenv("FITFLOW_DB_PASSWORD"),
		MaxConns:       4,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	// not scraped, the analyzer just needs somewhere to record
	metricsManager := metrics.NewManager("fitflow", "mcp", prometheus.NewRegistry())

	analyzer := analytics.NewAnalyzer(analytics.NewRepo(dbPool), programs.NewRepo(dbPool), metricsManager)
	recoveryService := recovery.NewService(recovery.NewRepo(dbPool), metricsManager)
	server := trainingmcp.NewServer(dbPool, analyzer, recoveryService)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
