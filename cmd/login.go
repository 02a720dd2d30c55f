package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var (
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to Google Tasks",
		Long: `Sign in to Google Tasks with an OAuth authorization code.

The command prints an authorization URL. Open it in a browser, grant
access, and paste the resulting code back. Credentials can come from
flags, from GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET, or from a previous
login's saved settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			store, authStore, err := newAuthStore(logger)
			if err != nil {
				return err
			}

			cfg, err := store.Load()
			if err != nil {
				return err
			}
			if clientID != "" {
				cfg.ClientID = clientID
			}
			if clientSecret != "" {
				cfg.ClientSecret = clientSecret
			}
			if cfg.ClientID == "" || cfg.ClientSecret == "" {
				return fmt.Errorf("client credentials are required; pass --client-id and --client-secret or set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
			}
			if err := store.Save(cfg); err != nil {
				return err
			}
			authStore.SetCredentials(cfg.ClientID, cfg.ClientSecret)

			fmt.Fprintln(cmd.OutOrStdout(), "Open this URL in your browser and authorize access:")
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "  "+authStore.AuthCodeURL())
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), "Paste the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if _, err := authStore.Exchange(cmd.Context(), code); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed in. Tokens saved to "+store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Google OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Google OAuth client secret")

	return cmd
}
