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

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long:  `Create, list, and delete tasks within a project.`,
}

var taskListCmd = &cobra.Command{
	Use:     "list [project-id]",
	Aliases: []string{"ls"},
	Short:   "List the tasks of a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [project-id] [name]",
	Short: "Create a task under a project",
	Long: `Create a task under a project.

Examples:
  pilot task add 64f1c0ffee0ddba11ad0beef "Design review"
  pilot task add 64f1c0ffee0ddba11ad0beef "Ship it" --priority Urgent --due 2026-09-15 --hours 3`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskAdd,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task and all of its time logs",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var (
	taskDescription string
	taskStatus      string
	taskPriority    string
	taskDue         string
	taskHours       float64
	taskSort        string
)

func init() {
	taskAddCmd.Flags().StringVarP(&taskDescription, "description", "D", "", "Task description")
	taskAddCmd.Flags().StringVarP(&taskStatus, "status", "s", "", "Task status (default \"To Do\")")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "Task priority (default Medium)")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD)")
	taskAddCmd.Flags().Float64Var(&taskHours, "hours", -1, "Estimated hours")
	taskListCmd.Flags().StringVar(&taskSort, "sort", "priority", "Sort field (name, status, priority, due_date, created_at)")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskDoneCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	projectID, err := db.ParseID(args[0])
	if err != nil {
		return err
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	tasks, err := database.TasksForProject(ctx, projectID, taskSort)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tPRIORITY\tDUE\tLOGGED")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID.Hex(), t.Name, t.Status, t.Priority,
			model.FormatDate(t.DueDate), model.FormatMinutes(t.TotalLoggedMinutes))
	}
	return w.Flush()
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	projectID, err := db.ParseID(args[0])
	if err != nil {
		return err
	}
	due, err := model.ParseDate(taskDue)
	if err != nil {
		return err
	}
	var hours *float64
	if cmd.Flags().Changed("hours") {
		hours = &taskHours
	}

	database, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	id, err := database.AddTask(ctx, db.NewTask{
		ProjectID:      projectID,
		Name:           args[1],
		Description:    taskDescription,
		Status:         taskStatus,
		Priority:       taskPriority,
		DueDate:        due,
		EstimatedHours: hours,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("✓ Created task: %s (id: %s)\n", args[1], id.Hex())
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
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

	deleted, err := database.DeleteTask(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		fmt.Println("Task not found.")
		return nil
	}
	fmt.Println("✓ Task and its time logs deleted.")
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
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

	status := model.TaskDone
	modified, err := database.UpdateTask(ctx, id, db.TaskUpdate{Status: &status})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if !modified {
		fmt.Println("Task not found.")
		return nil
	}
	fmt.Println("✓ Task marked done.")
	return nil
}
