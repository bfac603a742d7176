package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (a *App) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your account",
	}
	cmd.AddCommand(
		a.profileShowCmd(),
		a.profileUpdateCmd(),
		a.profilePictureCmd(),
		a.profileDeleteCmd(),
	)
	return cmd
}

func (a *App) profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			printUser(a.out, me)
			return nil
		},
	}
}

func (a *App) profileUpdateCmd() *cobra.Command {
	var username, picture string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change your username or picture URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("username") {
				username = me.Username
			}
			if !cmd.Flags().Changed("picture") {
				picture = me.ProfilePicture
			}
			if err := a.client.UpdateProfile(cmd.Context(), username, picture); err != nil {
				return err
			}
			a.notifier.Success("Profile updated")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "new username")
	cmd.Flags().StringVar(&picture, "picture", "", "new profile picture URL")
	return cmd
}

func (a *App) profilePictureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "picture <image-file>",
		Short: "Upload a profile picture and use it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			url, err := a.client.UploadProfilePicture(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			if err := a.client.UpdateProfile(cmd.Context(), me.Username, url); err != nil {
				return err
			}
			a.notifier.Success("Profile picture updated")
			fmt.Fprintln(a.out, url)
			return nil
		},
	}
}

func (a *App) profileDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete your account and sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("deleting the account cannot be undone, pass --yes to confirm")
			}
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.client.DeleteAccount(cmd.Context(), me.ID); err != nil {
				return err
			}
			a.notifier.Success("Account deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}
