package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/model"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [task-id] [minutes]",
	Short: "Log time against a task",
	Long: `Append a time log to a task and update its logged-time total.

Examples:
  pilot log 64f1c0ffee0ddba11ad0beef 90
  pilot log 64f1c0ffee0ddba11ad0beef 30 --date 2026-08-24 --notes "code review"`,
	Args: cobra.ExactArgs(2),
	RunE: runLog,
}

var logListCmd = &cobra.Command{
	Use:     "list [task-id]",
	Aliases: []string{"ls"},
	Short:   "List the time logs of a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runLogList,
}

var (
	logDate  string
	logNotes string
)

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "Log date (YYYY-MM-DD, default today)")
	logCmd.Flags().StringVar(&logNotes, "notes", "", "Notes")

	logCmd.AddCommand(logListCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	taskID, err := db.ParseID(args[0])
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid minutes %q", args[1])
	}
	date, err := model.ParseDate(logDate)
	if err != nil {
		return err
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	_, err = database.AddTimeLog(ctx, db.NewTimeLog{
		TaskID:          taskID,
		DurationMinutes: minutes,
		LogDate:         date,
		Notes:           logNotes,
	})
	if err != nil {
		return fmt.Errorf("failed to log time: %w", err)
	}

	fmt.Printf("✓ Logged %s.\n", model.FormatMinutes(minutes))
	return nil
}

func runLogList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	taskID, err := db.ParseID(args[0])
	if err != nil {
		return err
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	logs, err := database.TimeLogsForTask(ctx, taskID, "")
	if err != nil {
		return fmt.Errorf("failed to list time logs: %w", err)
	}
	total, err := database.TotalForTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to total time logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Println("No time logged.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDURATION\tNOTES")
	for _, l := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			l.LogDate.Format(model.DateFormat),
			model.FormatMinutes(l.DurationMinutes), l.Notes)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("Total: %s\n", model.FormatMinutes(total))
	return nil
}
