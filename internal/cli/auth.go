package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yogarn/filkompedia-client/bookstore"
)

func (a *App) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in and store the session cookies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.passwordFlag(password)
			if err != nil {
				return err
			}
			if err := a.client.Login(cmd.Context(), args[0], pw); err != nil {
				return err
			}
			me, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			a.notifier.Success(fmt.Sprintf("Logged in as %s", me.Username))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			a.notifier.Success("Logged out")
			return nil
		},
	}
}

func (a *App) registerCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "register <username> <email>",
		Short: "Create an account and send its verification code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := a.passwordFlag(password)
			if err != nil {
				return err
			}
			req := bookstore.RegisterRequest{Username: args[0], Email: args[1], Password: pw}
			if err := a.client.Register(cmd.Context(), req); err != nil {
				return err
			}
			a.notifier.Success("Account created, check your email for the verification code")
			a.notifier.Info(fmt.Sprintf("Run `filkompedia verify-otp %s <code>`", args[1]))
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func (a *App) verifyOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-otp <email> <code>",
		Short: "Verify an account with the emailed code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.VerifyOTP(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.notifier.Success("Account verified, you can log in now")
			return nil
		},
	}
}

func (a *App) resendOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resend-otp <email>",
		Short: "Send a new verification code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.SendOTP(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.notifier.Success("Verification code sent")
			return nil
		},
	}
}
