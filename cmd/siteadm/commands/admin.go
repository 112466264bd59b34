package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Spok95/geosites/internal/auth"
	"github.com/Spok95/geosites/internal/domain/users"
)

var (
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an ADMIN account",
	Long: `Create an ADMIN account. Registration through the API always yields
USER accounts, so the first administrator is bootstrapped here.

Example:
  siteadm create-admin --email admin@example.com --password 's3cret!'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if len(adminPassword) < 6 {
			return errors.New("password must be at least 6 characters")
		}
		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := users.NewService(users.NewRepo(pool), auth.NewBcrypt(), cliLogger())
		u, err := svc.Create(ctx, users.CreateInput{Email: adminEmail, Password: adminPassword, Role: users.RoleAdmin})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin created: id=%d email=%s\n", u.ID, u.Email)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Admin password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
