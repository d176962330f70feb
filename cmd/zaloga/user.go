package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erazemk/zaloga/internal/auth"
	"github.com/erazemk/zaloga/internal/logger"
	"github.com/erazemk/zaloga/internal/service"
)

var (
	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE:  runUserList,
	}

	userDeleteCmd = &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user with their memberships and own items",
		Long: `Delete a user account. The user's inventory memberships and own items are
removed; inventories the user created are kept without a creator.`,
		Args: cobra.ExactArgs(1),
		RunE: runUserDelete,
	}
)

func init() {
	userCmd.AddCommand(userListCmd, userDeleteCmd)
}

// operatorService opens the database and returns a service for operator
// commands along with a cleanup function.
func operatorService() (*service.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	svc := service.New(database, auth.NewHasher(cfg.Auth.BcryptCost), cfg.Tenancy.Mode, log.Named("cli"))
	cleanup := func() {
		database.Close()
		_ = log.Sync()
	}
	return svc, cleanup, nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := operatorService()
	if err != nil {
		return err
	}
	defer cleanup()

	users, err := svc.ListUsers(cmd.Context())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tCREATED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Username, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := operatorService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.DeleteAccount(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted user %s\n", args[0])
	return nil
}
