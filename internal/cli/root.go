package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Command builds the command tree.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "filkompedia",
		Short: "FilkomPedia bookstore client",
		Long: `filkompedia talks to the FilkomPedia bookstore API. The session cookies
from "filkompedia login" are kept in a local database and renewed automatically
when the API reports that the session expired.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			return a.connect()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if stats, _ := cmd.Flags().GetBool("stats"); stats {
				return a.writeStats()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/filkompedia/config.yaml)")
	flags.String("api-url", "", "bookstore API base URL")
	flags.String("store", "", "cookie database path")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("stats", false, "print gateway request counters after the command")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.registerCmd(),
		a.verifyOTPCmd(),
		a.resendOTPCmd(),
		a.booksCmd(),
		a.cartCmd(),
		a.checkoutsCmd(),
		a.commentsCmd(),
		a.profileCmd(),
		a.adminCmd(),
	)
	return root
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return New().Run(context.Background(), os.Args[1:])
}
