package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetTrainingSchemaTool returns the MCP tool handler for get_training_schema.
func (h *Handler) GetTrainingSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// UserInput is the input of the tools reporting on a single user.
type UserInput struct {
	UserID int `json:"user_id" jsonschema:"ID of the user the report is for"`
}

// GetConsistencyTool returns the MCP tool handler for get_consistency.
func (h *Handler) GetConsistencyTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id"), nil, nil
		}
		c, err := h.service.Consistency(ctx, in.UserID)
		if err != nil {
			return errorResult("Error computing consistency: " + err.Error()), nil, nil
		}
		return jsonResult(c), nil, nil
	}
}

// VolumeTrendsInput is the input for get_volume_trends.
type VolumeTrendsInput struct {
	UserID      int    `json:"user_id" jsonschema:"ID of the user the report is for"`
	Weeks       int    `json:"weeks,omitempty" jsonschema:"Number of ISO weeks, current one included (1-52, default 8)"`
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Filter by muscle group (e.g. chest, quads)"`
}

// GetVolumeTrendsTool returns the MCP tool handler for get_volume_trends.
func (h *Handler) GetVolumeTrendsTool() func(context.Context, *mcp.CallToolRequest, VolumeTrendsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in VolumeTrendsInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id"), nil, nil
		}
		trends, err := h.service.VolumeTrends(ctx, in.UserID, in.Weeks, in.MuscleGroup)
		if err != nil {
			return errorResult("Error computing volume trends: " + err.Error()), nil, nil
		}
		return jsonResult(trends), nil, nil
	}
}

// GetCurrentWeekVolumeTool returns the MCP tool handler for get_current_week_volume.
func (h *Handler) GetCurrentWeekVolumeTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id"), nil, nil
		}
		week, err := h.service.CurrentWeekVolume(ctx, in.UserID)
		if err != nil {
			return errorResult("Error computing current week volume: " + err.Error()), nil, nil
		}
		return jsonResult(week), nil, nil
	}
}

// GetProgramVolumeAnalysisTool returns the MCP tool handler for get_program_volume_analysis.
func (h *Handler) GetProgramVolumeAnalysisTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id"), nil, nil
		}
		analysis, err := h.service.ProgramVolumeAnalysis(ctx, in.UserID)
		if err != nil {
			return errorResult("Error analyzing program volume: " + err.Error()), nil, nil
		}
		return jsonResult(analysis), nil, nil
	}
}

// OneRMProgressionInput is the input for get_1rm_progression.
type OneRMProgressionInput struct {
	UserID     int    `json:"user_id" jsonschema:"ID of the user the report is for"`
	ExerciseID int    `json:"exercise_id" jsonschema:"Library exercise id"`
	FromDate   string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate     string `json:"to_date" jsonschema:"End date (YYYY-MM-DD)"`
}

// GetOneRMProgressionTool returns the MCP tool handler for get_1rm_progression.
func (h *Handler) GetOneRMProgressionTool() func(context.Context, *mcp.CallToolRequest, OneRMProgressionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in OneRMProgressionInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id"), nil, nil
		}
		points, err := h.service.OneRMProgression(ctx, in.UserID, in.ExerciseID, in.FromDate, in.ToDate)
		if err != nil {
			return errorResult("Error computing 1RM progression: " + err.Error()), nil, nil
		}
		return jsonResult(points), nil, nil
	}
}

// GetTodayRecoveryTool returns the MCP tool handler for get_today_recovery.
func (h *Handler) GetTodayRecoveryTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id"), nil, nil
		}
		a, err := h.service.TodayRecovery(ctx, in.UserID)
		if err != nil {
			return errorResult("Error fetching today's recovery: " + err.Error()), nil, nil
		}
		return jsonResult(a), nil, nil
	}
}
