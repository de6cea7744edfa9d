package main

import (
	"fmt"

	"tournament/database"
	"tournament/repository"
	"tournament/service"
	"tournament/validation"

	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database to the latest version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := database.Migrate(ctx, a.db, a.logger); err != nil {
				return fmt.Errorf("migration: %w", err)
			}
			version, err := database.Version(ctx, a.db)
			if err != nil {
				return err
			}
			a.logger.Info("database is up to date", "version", version)
			return nil
		},
	}

	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	adminUsername string
	adminPassword string

	adminCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := setup()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := database.Migrate(ctx, a.db, a.logger); err != nil {
				return fmt.Errorf("migration: %w", err)
			}

			auth := service.NewAuthService(repository.NewAdminRepository(a.db.Gorm), validation.New(), a.logger)
			admin, err := auth.CreateAdmin(ctx, adminUsername, adminPassword)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			cmd.Printf("Created admin %q\n", admin.Username)
			return nil
		},
	}
)

func init() {
	adminCreateCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "admin username")
	adminCreateCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "admin password (at least 8 characters)")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(adminCreateCmd)
}
