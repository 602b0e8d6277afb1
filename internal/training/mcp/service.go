package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/fitflow/internal/training/analytics"
	"github.com/2beens/fitflow/internal/training/recovery"
	"github.com/2beens/fitflow/internal/training/volume"
)

// reportsProvider computes the analytics reports (for dependency injection and testing).
type reportsProvider interface {
	Consistency(ctx context.Context, userID int) (*analytics.Consistency, error)
	VolumeTrends(ctx context.Context, userID, weeks int, muscleGroup string) (*analytics.VolumeTrends, error)
	CurrentWeek(ctx context.Context, userID int) (*volume.CurrentWeek, error)
	ProgramAnalysis(ctx context.Context, userID int) (*analytics.ProgramAnalysis, error)
	OneRMProgression(ctx context.Context, userID, exerciseID int, startDate, endDate string) ([]analytics.OneRMPoint, error)
}

// recoveryReader reads the recovery assessments.
type recoveryReader interface {
	Today() string
	ForDate(ctx context.Context, callerID, userID int, date string) (*recovery.Assessment, error)
}

// contextService is what the Handler needs, kept as an interface for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	Consistency(ctx context.Context, userID int) (*analytics.Consistency, error)
	VolumeTrends(ctx context.Context, userID, weeks int, muscleGroup string) (*analytics.VolumeTrends, error)
	CurrentWeekVolume(ctx context.Context, userID int) (*volume.CurrentWeek, error)
	ProgramVolumeAnalysis(ctx context.Context, userID int) (*analytics.ProgramAnalysis, error)
	OneRMProgression(ctx context.Context, userID, exerciseID int, startDate, endDate string) ([]analytics.OneRMPoint, error)
	TodayRecovery(ctx context.Context, userID int) (*recovery.Assessment, error)
}

// ContextService holds dependencies and implements the training context business logic.
type ContextService struct {
	schema   SchemaRepo
	reports  reportsProvider
	recovery recoveryReader
}

func NewContextService(schemaRepo SchemaRepo, reports reportsProvider, recovery recoveryReader) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		reports:  reports,
		recovery: recovery,
	}
}

// GetSchema returns the DB schema (table names, columns, types) of the training tables.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetTrainingColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatTrainingSchema(cols), nil
}

func formatTrainingSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# FitFlow DB Schema\n\nNo training tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# FitFlow DB Schema\n\n")
	b.WriteString("Tables: ")
	b.WriteString(strings.Join(trainingTables, ", "))
	b.WriteString(" (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) Consistency(ctx context.Context, userID int) (*analytics.Consistency, error) {
	return s.reports.Consistency(ctx, userID)
}

func (s *ContextService) VolumeTrends(ctx context.Context, userID, weeks int, muscleGroup string) (*analytics.VolumeTrends, error) {
	if weeks == 0 {
		weeks = analytics.DefaultTrendWeeks
	}
	return s.reports.VolumeTrends(ctx, userID, weeks, muscleGroup)
}

func (s *ContextService) CurrentWeekVolume(ctx context.Context, userID int) (*volume.CurrentWeek, error) {
	return s.reports.CurrentWeek(ctx, userID)
}

func (s *ContextService) ProgramVolumeAnalysis(ctx context.Context, userID int) (*analytics.ProgramAnalysis, error) {
	return s.reports.ProgramAnalysis(ctx, userID)
}

func (s *ContextService) OneRMProgression(ctx context.Context, userID, exerciseID int, startDate, endDate string) ([]analytics.OneRMPoint, error) {
	return s.reports.OneRMProgression(ctx, userID, exerciseID, startDate, endDate)
}

// TodayRecovery returns the user's recovery assessment of the current UTC day.
// The MCP client acts on behalf of the user, so it reads as that user.
func (s *ContextService) TodayRecovery(ctx context.Context, userID int) (*recovery.Assessment, error) {
	return s.recovery.ForDate(ctx, userID, userID, s.recovery.Today())
}
