package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"client-portal-api/internal/auth"
	"client-portal-api/internal/database"
	"client-portal-api/internal/domain"
	"client-portal-api/internal/repository"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin account commands",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dashboard admin account",
		Long:  "Stores the password in the form auth.admin_password_mode expects: as given for plaintext, hashed for bcrypt.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(cmd, email, password, name)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email (required)")
	cmd.Flags().StringVar(&password, "password", "", "login password (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func runAdminCreate(cmd *cobra.Command, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errors.New("email and password must not be empty")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	stored, err := auth.HashPassword(cfg.Auth.AdminPasswordMode, password)
	if err != nil {
		return err
	}

	admin := &domain.AdminUser{Email: email, PasswordHash: stored, Name: name}
	if err := repository.NewAdminUserRepository(db).Create(cmd.Context(), admin); err != nil {
		return fmt.Errorf("create admin %s: %w", email, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s, password mode %s)\n", admin.Email, admin.ID, cfg.Auth.AdminPasswordMode)
	return nil
}
