package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fennwick/projectpilot/internal/db"
	"github.com/fennwick/projectpilot/internal/model"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, and delete projects from the command line.`,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a new project",
	Long: `Create a new project.

Examples:
  pilot project add "Website Relaunch"
  pilot project add "Q3 Audit" --status Active --start 2026-09-01 --end 2026-09-30`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectAdd,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project and all of its tasks and time logs",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var (
	projectDescription string
	projectStatus      string
	projectStart       string
	projectEnd         string
	projectSort        string
)

func init() {
	projectAddCmd.Flags().StringVarP(&projectDescription, "description", "D", "", "Project description")
	projectAddCmd.Flags().StringVarP(&projectStatus, "status", "s", "", "Project status (default Planning)")
	projectAddCmd.Flags().StringVar(&projectStart, "start", "", "Start date (YYYY-MM-DD)")
	projectAddCmd.Flags().StringVar(&projectEnd, "end", "", "End date (YYYY-MM-DD)")
	projectListCmd.Flags().StringVar(&projectSort, "sort", "name", "Sort field (name, status, start_date, end_date, created_at)")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	projects, err := database.Projects(ctx, projectSort)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSTART\tEND")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID.Hex(), p.Name, p.Status,
			model.FormatDate(p.StartDate), model.FormatDate(p.EndDate))
	}
	return w.Flush()
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	start, err := model.ParseDate(projectStart)
	if err != nil {
		return err
	}
	end, err := model.ParseDate(projectEnd)
	if err != nil {
		return err
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	id, err := database.AddProject(ctx, db.NewProject{
		Name:        args[0],
		Description: projectDescription,
		Status:      projectStatus,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", args[0], id.Hex())
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := db.ParseID(args[0])
	if err != nil {
		return err
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	deleted, err := database.DeleteProject(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		fmt.Println("Project not found.")
		return nil
	}
	fmt.Println("✓ Project and its tasks/time logs deleted.")
	return nil
}
