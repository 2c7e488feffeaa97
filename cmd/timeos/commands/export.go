package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"timeos/internal/report"
)

// NewExportCommand creates the export command, writing all recorded
// entries as CSV.
func NewExportCommand() *cobra.Command {
	var (
		out     string
		company string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export time entries to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, _, err := newApp()
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			entries, err := application.Admin.AllEntries(ctx)
			if err != nil {
				return fmt.Errorf("failed to load entries: %w", err)
			}
			if company != "" {
				entries = report.FilterByCompany(entries, company)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := report.WriteCSV(f, entries); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
			fmt.Printf("Exported %d entries to %s\n", len(entries), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "time_entries.csv", "Output file")
	cmd.Flags().StringVar(&company, "company", "", "Only entries billed to this company name")
	return cmd
}
