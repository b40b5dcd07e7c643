package main

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/app"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/company"
	"github.com/spf13/cobra"
)

var bootstrapReq company.BootstrapRequest

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Create a company and its owner account",
	Example: `  hrisctl bootstrap --company-name "Acme Ltd" --company-username acme \
    --timezone Asia/Kolkata --owner-email owner@acme.test --owner-password 's3cret-pass'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			created, err := a.Services.Company.Bootstrap(ctx, bootstrapReq)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		})
	},
}

func init() {
	f := bootstrapCmd.Flags()
	f.StringVar(&bootstrapReq.CompanyName, "company-name", "", "Company display name")
	f.StringVar(&bootstrapReq.CompanyUsername, "company-username", "", "Unique company username used at login")
	f.StringVar(&bootstrapReq.Timezone, "timezone", "", "IANA timezone of the company (defaults to the server timezone)")
	f.StringVar(&bootstrapReq.OwnerEmail, "owner-email", "", "Email of the owner account")
	f.StringVar(&bootstrapReq.OwnerPassword, "owner-password", "", "Password of the owner account")
	_ = bootstrapCmd.MarkFlagRequired("company-name")
	_ = bootstrapCmd.MarkFlagRequired("company-username")
	_ = bootstrapCmd.MarkFlagRequired("owner-email")
	_ = bootstrapCmd.MarkFlagRequired("owner-password")
}
