package mcp

import (
	"github.com/2beens/fitflow/internal/training/analytics"
	"github.com/2beens/fitflow/internal/training/recovery"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the training tools: schema, consistency, volume trends,
// current week volume, program volume analysis, 1RM progression and today's recovery.
// Served over stdio by cmd/fitflow_mcp.
func NewServer(pool *pgxpool.Pool, analyzer *analytics.Analyzer, recoveryService *recovery.Service) *mcp.Server {
	svc := NewContextService(NewPoolSchemaRepo(pool), analyzer, recoveryService)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitflow-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_schema",
		Description: "Returns the DB schema of the training tables (exercises, programs, program_days, program_exercises, workouts, sets, recovery_assessments, body_weight): table names, columns, types, nullable, default.",
	}, h.GetTrainingSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_consistency",
		Description: "Returns adherence rate (completed/all workouts), average session duration in seconds and total workouts for a user. Arg: user_id.",
	}, h.GetConsistencyTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_volume_trends",
		Description: "Returns completed sets per ISO week and muscle group with MEV/MAV/MRV landmarks. Args: user_id; optional: weeks (1-52, default 8), muscle_group. Use to see how training volume evolved.",
	}, h.GetVolumeTrendsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_current_week_volume",
		Description: "Returns this week's completed vs planned sets per muscle group, with completion percentage, zone and warnings. Arg: user_id.",
	}, h.GetCurrentWeekVolumeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_program_volume_analysis",
		Description: "Returns the weekly sets the user's latest program plans per muscle group, classified against the volume landmarks. Arg: user_id.",
	}, h.GetProgramVolumeAnalysisTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_1rm_progression",
		Description: "Returns the best estimated 1RM per workout date for an exercise. Args: user_id, exercise_id, from_date, to_date (YYYY-MM-DD).",
	}, h.GetOneRMProgressionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_today_recovery",
		Description: "Returns the user's recovery assessment of today (UTC) with its total score and volume adjustment. Arg: user_id.",
	}, h.GetTodayRecoveryTool())

	return s
}
