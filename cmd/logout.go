package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the saved tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			_, authStore, err := newAuthStore(logger)
			if err != nil {
				return err
			}

			authStore.SignOut()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
