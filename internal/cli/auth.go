package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and session commands",
	}

	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var document, name, school, gender string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"document": document,
				"name":     name,
				"school":   school,
				"gender":   gender,
			}
			var result Player

			if err := client.Post("/api/v1/auth/register", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&document, "document", "", "Identity document (required)")
	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&school, "school", "", "School (required)")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender (required)")
	_ = cmd.MarkFlagRequired("document")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("school")
	_ = cmd.MarkFlagRequired("gender")

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var document string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login with an identity document",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"document": document}
			var result AuthResult

			if err := client.Post("/api/v1/auth/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&document, "document", "", "Identity document (required)")
	_ = cmd.MarkFlagRequired("document")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the current session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Token == "" {
				return fmt.Errorf("no session token to revoke")
			}

			req := map[string]string{"token": cfg.Token}
			var result LogoutResult

			if err := client.Post("/api/v1/auth/logout", req, &result); err != nil {
				return err
			}

			// Drop the saved token regardless of how many sessions were deleted
			if err := cfg.SaveToken(""); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
