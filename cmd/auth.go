package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mailwright/gmailmcp/internal/google"
	"github.com/mailwright/gmailmcp/internal/logging"
)

func newAuthCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to the Gmail account",
		Long: `Run the interactive OAuth2 authorization flow.

A browser window opens with the Google consent page; after approval the
local callback listener on port 3000 captures the authorization code,
exchanges it for a token, and stores the token for later runs. Running
auth again replaces any previously stored token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(debugMode)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			config, err := google.LoadKeys()
			if err != nil {
				return err
			}

			store := google.NewTokenStore()
			auth := google.NewAuthenticator(config, store, logger)

			if _, err := auth.Authenticate(ctx); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			fmt.Println("Authentication completed successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}
