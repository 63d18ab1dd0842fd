package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"boutique_hotel/internal/adapters/auth"
	"boutique_hotel/internal/app"
	"boutique_hotel/internal/storage/sqlstore"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin rights",
	Long:  `Grant, revoke or list admin rights. This is the supported way to create the first admin.`,
}

var adminPromoteCmd = &cobra.Command{
	Use:   "promote [email]",
	Short: "Grant admin rights to an account",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runSetAdmin(cmd, args[0], true) },
}

var adminDemoteCmd = &cobra.Command{
	Use:   "demote [email]",
	Short: "Revoke admin rights from an account",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runSetAdmin(cmd, args[0], false) },
}

var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin accounts",
	Args:  cobra.NoArgs,
	RunE:  runAdminList,
}

func init() {
	adminCmd.AddCommand(adminPromoteCmd)
	adminCmd.AddCommand(adminDemoteCmd)
	adminCmd.AddCommand(adminListCmd)
	rootCmd.AddCommand(adminCmd)
}

func runSetAdmin(cmd *cobra.Command, email string, admin bool) error {
	ctx := context.Background()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	accounts := app.NewAccountService(sqlstore.New(db), auth.NewPasswords(), nil, false)
	a, err := accounts.SetAdminByEmail(ctx, email, admin)
	if err != nil {
		return fmt.Errorf("update %s: %w", email, err)
	}
	if admin {
		cmd.Printf("%s is now an admin.\n", a.Email)
	} else {
		cmd.Printf("%s is no longer an admin.\n", a.Email)
	}
	return nil
}

func runAdminList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	admins, err := app.NewAccountService(sqlstore.New(db), auth.NewPasswords(), nil, false).ListAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		cmd.Println("No admins.")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, a := range admins {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.ID, a.Name, a.Email)
	}
	return tw.Flush()
}
