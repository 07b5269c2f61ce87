package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/render"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or update the account profile",
	}

	cmd.AddCommand(newProfileShowCommand())
	cmd.AddCommand(newProfileUpdateCommand())
	cmd.AddCommand(newChangePasswordCommand())

	return cmd
}

func newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			profile, err := app.gateway.Profile(cmd.Context())
			if err != nil {
				return app.observe(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), render.ProfileBlock(profile))
			return nil
		},
	}
}

func newProfileUpdateCommand() *cobra.Command {
	var email string
	var firstName string
	var lastName string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			ctx := cmd.Context()

			// Fetch-then-merge so unspecified fields stay as they are.
			profile, err := app.gateway.Profile(ctx)
			if err != nil {
				return app.observe(err)
			}
			if cmd.Flags().Changed("email") {
				profile.Email = email
			}
			if cmd.Flags().Changed("first-name") {
				profile.FirstName = firstName
			}
			if cmd.Flags().Changed("last-name") {
				profile.LastName = lastName
			}

			updated, err := app.gateway.UpdateProfile(ctx, profile)
			if err != nil {
				return app.observe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			fmt.Fprint(cmd.OutOrStdout(), render.ProfileBlock(updated))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")

	return cmd
}

func newChangePasswordCommand() *cobra.Command {
	var oldPassword string
	var newPassword string
	var confirm string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.guard.Require(); err != nil {
				return err
			}
			if err := app.gateway.ChangePassword(cmd.Context(), oldPassword, newPassword, confirm); err != nil {
				return app.observe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed")
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "current password (required)")
	_ = cmd.MarkFlagRequired("old")
	cmd.Flags().StringVar(&newPassword, "new", "", "new password (required)")
	_ = cmd.MarkFlagRequired("new")
	cmd.Flags().StringVar(&confirm, "confirm", "", "new password confirmation (required)")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}
