package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/worklogd/worklogd/internal/clock"
	"github.com/worklogd/worklogd/internal/domain/report"
	"github.com/worklogd/worklogd/internal/domain/workday"
	"github.com/worklogd/worklogd/internal/export"
	"github.com/worklogd/worklogd/internal/sqlite"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a report for a work day or a date range",
		RunE:  runReport,
	}

	cmd.Flags().String("owner", "default", "Owner whose days to report on")
	cmd.Flags().String("day", "", "Work day ID (defaults to the current day)")
	cmd.Flags().String("from", "", "Range start, YYYY-MM-DD")
	cmd.Flags().String("to", "", "Range end (exclusive), YYYY-MM-DD")
	cmd.Flags().String("format", "json", "Output format: json, csv or jira")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	owner, _ := cmd.Flags().GetString("owner")
	dayID, _ := cmd.Flags().GetString("day")
	fromStr, _ := cmd.Flags().GetString("from")
	toStr, _ := cmd.Flags().GetString("to")
	format, _ := cmd.Flags().GetString("format")

	db, err := sqlite.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	dayRepo := sqlite.NewWorkDayRepository(db)
	trackingSvc := workday.NewService(dayRepo, clock.System{}, nil)
	reportSvc := report.NewService(trackingSvc, nil)

	ctx := cmd.Context()

	var rep *report.Report
	if fromStr != "" || toStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return fmt.Errorf("parsing --from: %w", err)
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return fmt.Errorf("parsing --to: %w", err)
		}
		rep, err = reportSvc.ForRange(ctx, owner, from, to)
		if err != nil {
			return err
		}
	} else {
		rep, err = reportSvc.ForDay(ctx, owner, dayID)
		if err != nil {
			return err
		}
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	adapter, err := export.NewRegistry().Get(format)
	if err != nil {
		return err
	}
	payload, err := adapter.Render(rep)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(payload)
	return err
}
