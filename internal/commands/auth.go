package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/api"
)

func newLoginCommand() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.RequireGuest(); err != nil {
				return err
			}

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if _, err := app.session.Login(cmd.Context(), app.gateway, username, password); err != nil {
				return err
			}
			app.guard.Promote()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email (required)")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			// Unconditional and idempotent: logging out twice is fine.
			app.session.Logout()
			app.guard.Demote()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newRegisterCommand() *cobra.Command {
	var draft api.RegistrationDraft

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.RequireGuest(); err != nil {
				return err
			}

			message, err := app.gateway.Register(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if message == "" {
				message = "Account created"
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			fmt.Fprintln(cmd.OutOrStdout(), "Log in with 'fintrack login'")
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Email, "email", "", "email address, used as the username (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&draft.Password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")
	cmd.Flags().StringVar(&draft.PasswordConfirm, "confirm", "", "password confirmation (required)")
	_ = cmd.MarkFlagRequired("confirm")
	cmd.Flags().StringVar(&draft.FirstName, "first-name", "", "first name (required)")
	_ = cmd.MarkFlagRequired("first-name")

	return cmd
}

func newSessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or refresh the current session",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether a session is active",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session: %s\n", app.guard.State())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			if _, err := app.session.Refresh(cmd.Context(), app.gateway); err != nil {
				app.guard.Demote()
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Access token refreshed")
			return nil
		},
	})

	return cmd
}
