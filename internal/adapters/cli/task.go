package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/go-mediator/internal/application/tasks/commands"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/queries"
	"github.com/andrescamacho/go-mediator/mediator"
)

// NewTaskCommand creates the task command with subcommands
func NewTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, complete, and inspect tasks",
		Long: `Manage tasks in the local database.

Every task operation is dispatched through the mediator pipeline, so it is
validated, rate limited, logged, measured, and audited on the way through.

Examples:
  mediator-demo task create --title "write release notes" --priority 3
  mediator-demo task complete --id 4f7c2d1a
  mediator-demo task get --id 4f7c2d1a
  mediator-demo task list`,
	}

	// Add subcommands
	cmd.AddCommand(newTaskCreateCommand())
	cmd.AddCommand(newTaskCompleteCommand())
	cmd.AddCommand(newTaskGetCommand())
	cmd.AddCommand(newTaskListCommand())

	return cmd
}

// newTaskCreateCommand creates the task create subcommand
func newTaskCreateCommand() *cobra.Command {
	var (
		title    string
		priority int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			response, err := mediator.Send[*commands.CreateTaskResponse](
				context.Background(), a.mediator, &commands.CreateTaskCommand{
					Title:    title,
					Priority: priority,
				})
			if err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}

			fmt.Printf("Created task %s\n", response.TaskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title (required)")
	cmd.Flags().IntVar(&priority, "priority", 0, "Task priority (0-9)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// newTaskCompleteCommand creates the task complete subcommand
func newTaskCompleteCommand() *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark a task as done",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			_, err = a.mediator.Send(context.Background(), &commands.CompleteTaskCommand{
				TaskID: taskID,
			})
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}

			fmt.Printf("Task %s marked as done\n", taskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "id", "", "Task ID (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// newTaskGetCommand creates the task get subcommand
func newTaskGetCommand() *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a single task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			task, err := mediator.Send[*queries.TaskDTO](
				context.Background(), a.mediator, &queries.GetTaskQuery{TaskID: taskID})
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			fmt.Printf("ID:       %s\n", task.ID)
			fmt.Printf("Title:    %s\n", task.Title)
			fmt.Printf("Priority: %d\n", task.Priority)
			fmt.Printf("Status:   %s\n", task.Status)
			fmt.Printf("Created:  %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "id", "", "Task ID (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// newTaskListCommand creates the task list subcommand
func newTaskListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			tasks, err := a.tasks.List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS")
			for _, task := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", task.ID, task.Title, task.Priority, task.Status)
			}
			return w.Flush()
		},
	}

	return cmd
}
