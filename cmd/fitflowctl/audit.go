package main

import (
	"fmt"
	"io"
	"time"

	"github.com/2beens/fitflow/internal/audit"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	auditSince time.Duration
	auditLimit int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Print the account audit trail of all users, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if auditSince <= 0 {
			return fmt.Errorf("--since must be positive, got %s", auditSince)
		}

		ctx := cmd.Context()
		pool, err := openDBPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		to := time.Now().UTC()
		events, err := audit.NewRepo(pool).ListBetween(ctx, to.Add(-auditSince), to, auditLimit)
		if err != nil {
			return fmt.Errorf("list audit events: %w", err)
		}

		printAuditEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

func init() {
	auditCmd.Flags().DurationVar(&auditSince, "since", 24*time.Hour, "how far back to look")
	auditCmd.Flags().IntVar(&auditLimit, "limit", audit.DefaultListLimit, "maximum number of events")
}

func printAuditEvents(w io.Writer, events []audit.Event) {
	header := color.New(color.Bold)
	_, _ = header.Fprintf(w, "%-20s %-8s %-17s %-16s %s\n", "TIME (UTC)", "USER", "EVENT", "IP", "DETAILS")
	for _, e := range events {
		details := ""
		if reason, ok := e.Data["reason"]; ok {
			details = "reason=" + reason
		}
		_, _ = fmt.Fprintf(w, "%-20s %-8d %-17s %-16s %s\n",
			e.Timestamp.UTC().Format(time.DateTime), e.UserID, e.Type, e.IPAddress, details,
		)
	}
	if len(events) == 0 {
		_, _ = fmt.Fprintln(w, "no events")
	}
}
