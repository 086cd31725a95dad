package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/go-mediator/internal/adapters/persistence"
	"github.com/andrescamacho/go-mediator/internal/application/tasks/queries"
	"github.com/andrescamacho/go-mediator/mediator"
)

// NewLogsCommand creates the logs command
func NewLogsCommand() *cobra.Command {
	var (
		limit    int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Stream the recorded dispatch history",
		Long: `Stream dispatch audit entries, newest first.

Entries are fetched page by page as the output is consumed, so large
histories never load into memory all at once.

Examples:
  mediator-demo logs
  mediator-demo logs --limit 20 --page-size 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath)
			if err != nil {
				return err
			}
			defer a.close()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tDISPATCH\tREQUEST\tKIND\tOUTCOME")

			count := 0
			for entry, err := range mediator.Stream[persistence.DispatchLogEntry](
				context.Background(), a.mediator, &queries.TaskActivityQuery{
					PageSize: pageSize,
					Limit:    limit,
				}) {
				if err != nil {
					return fmt.Errorf("failed to stream dispatch logs: %w", err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					entry.CreatedAt.Format("2006-01-02 15:04:05"),
					shortID(entry.DispatchID),
					entry.RequestName,
					entry.Kind,
					entry.Outcome,
				)
				count++
			}

			if err := w.Flush(); err != nil {
				return err
			}
			if count == 0 {
				fmt.Println("No dispatch history recorded yet")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of entries to show (0 for all)")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Entries fetched per database round-trip")

	return cmd
}

// shortID truncates a dispatch ID for table display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "-"
	}
	return id
}
