package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mediator-demo",
		Short: "Task manager demonstrating the mediator dispatch pipeline",
		Long: `mediator-demo is a small task manager built on the mediator library.

Every action runs through the full dispatch pipeline: validation, rate
limiting, logging, metrics, and audit recording. The logs command streams
the recorded dispatch history back out through a stream query.

Examples:
  mediator-demo task create --title "write release notes" --priority 3
  mediator-demo task complete --id <task-id>
  mediator-demo task get --id <task-id>
  mediator-demo task list
  mediator-demo logs --limit 20`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewTaskCommand())
	rootCmd.AddCommand(NewLogsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
