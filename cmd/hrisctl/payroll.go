package main

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/app"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/spf13/cobra"
)

var (
	payrollCompany  string
	payrollYear     int
	payrollMonth    int
	payrollEmployee string
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Run payroll for a company",
}

var payrollGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate draft salary slips for a closed month",
	Example: `  hrisctl payroll generate --company acme             # previous month
  hrisctl payroll generate --company acme --year 2025 --month 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			ctx, _, err := a.OperatorContext(ctx, payrollCompany)
			if err != nil {
				return err
			}
			req := payrollRequest(time.Now().In(a.Config.Location()))
			result, err := a.Services.Payroll.Generate(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		})
	},
}

// payrollRequest defaults to the month before now when no period was given.
func payrollRequest(now time.Time) payroll.GenerateRequest {
	req := payroll.GenerateRequest{Year: payrollYear, Month: payrollMonth}
	if req.Year == 0 && req.Month == 0 {
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
		req.Year, req.Month = prev.Year(), int(prev.Month())
	}
	if payrollEmployee != "" {
		id := payrollEmployee
		req.EmployeeID = &id
	}
	return req
}

func init() {
	f := payrollGenerateCmd.Flags()
	f.StringVar(&payrollCompany, "company", "", "Company username")
	f.IntVar(&payrollYear, "year", 0, "Payroll year")
	f.IntVar(&payrollMonth, "month", 0, "Payroll month (1-12)")
	f.StringVar(&payrollEmployee, "employee", "", "Limit the run to one employee ID")
	_ = payrollGenerateCmd.MarkFlagRequired("company")
	payrollGenerateCmd.MarkFlagsRequiredTogether("year", "month")
	payrollCmd.AddCommand(payrollGenerateCmd)
}
