// Command hrisctl runs operator tasks against the HRIS database: migrations,
// company bootstrap, holiday imports, payroll runs and background jobs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-attendance-go/internal/app"
	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "hrisctl",
	Short:         "Operator tooling for the HRIS attendance backend",
	Version:       app.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd, bootstrapCmd, holidaysCmd, classifyCmd, payrollCmd, cronCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "hrisctl:", err)
		os.Exit(1)
	}
}

// withApp loads configuration from the environment, wires the application and
// hands it to fn. The application is closed when fn returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	app.SetupLogger(cfg.App.LogLevel, cfg.App.Env)

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(cmd.Context(), a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
