package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/hris-attendance-go/internal/app"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	holidaysCompany string
	holidaysFile    string
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "Manage company holiday calendars",
}

var holidaysImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a YAML holiday calendar into a company",
	Example: `  hrisctl holidays import --company acme --file holidays-2025.yaml

  # holidays-2025.yaml
  holidays:
    - date: 2025-01-26
      name: Republic Day`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(holidaysFile)
		if err != nil {
			return err
		}
		defer f.Close()

		calendar, err := loadCalendar(f)
		if err != nil {
			return fmt.Errorf("%s: %w", holidaysFile, err)
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			_, c, err := a.OperatorContext(ctx, holidaysCompany)
			if err != nil {
				return err
			}
			n, err := a.Services.Holiday.Import(ctx, c.ID, calendar)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d holidays into %s\n", n, c.Username)
			return nil
		})
	},
}

func init() {
	holidaysImportCmd.Flags().StringVar(&holidaysCompany, "company", "", "Company username")
	holidaysImportCmd.Flags().StringVarP(&holidaysFile, "file", "f", "", "Path to the YAML calendar")
	_ = holidaysImportCmd.MarkFlagRequired("company")
	_ = holidaysImportCmd.MarkFlagRequired("file")
	holidaysCmd.AddCommand(holidaysImportCmd)
}

// loadCalendar decodes and validates a YAML holiday calendar. Unknown keys are rejected.
func loadCalendar(r io.Reader) (holiday.Calendar, error) {
	var calendar holiday.Calendar
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&calendar); err != nil {
		if errors.Is(err, io.EOF) {
			return calendar, fmt.Errorf("calendar is empty")
		}
		return calendar, err
	}
	if err := calendar.Validate(); err != nil {
		return calendar, err
	}
	return calendar, nil
}
