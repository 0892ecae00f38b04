package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/mailwright/gmailmcp/internal/gmail"
	"github.com/mailwright/gmailmcp/internal/google"
	"github.com/mailwright/gmailmcp/internal/instrumentation"
	"github.com/mailwright/gmailmcp/internal/logging"
	"github.com/mailwright/gmailmcp/internal/server"
	"github.com/mailwright/gmailmcp/internal/tools/email_tools"
)

func newServeCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Gmail MCP server",
		Long: `Start the Model Context Protocol (MCP) server over stdio to provide
Gmail tools for AI assistants.

If no stored OAuth token exists, the interactive authorization flow runs
first: a browser window opens for consent and a local listener on port
3000 captures the redirect.

Configuration:
  GMAIL_OAUTH_PATH        Path to the OAuth client keys file
  GMAIL_CREDENTIALS_PATH  Path to the stored token file
  GMAIL_EXPORT_DIR        Directory for save_sent_emails documents
  GMAIL_SIGNATURE         Signature template, supports {name} and {email}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(debugMode)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}

func runServe(debugMode bool) error {
	logger := logging.Setup(debugMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	// Missing or malformed keys are fatal; there is nothing to serve
	// without an OAuth client.
	config, err := google.LoadKeys()
	if err != nil {
		return err
	}

	store := google.NewTokenStore()
	auth := google.NewAuthenticator(config, store, logger)

	token, err := auth.EnsureToken(ctx)
	if err != nil {
		provider.Metrics().RecordOAuthAuth(ctx, instrumentation.StatusError)
		return fmt.Errorf("authentication failed: %w", err)
	}
	provider.Metrics().RecordOAuthAuth(ctx, instrumentation.StatusSuccess)

	client, err := gmail.NewClient(ctx, auth.TokenSource(ctx, token), provider.Metrics())
	if err != nil {
		return fmt.Errorf("failed to create Gmail client: %w", err)
	}

	// A failed profile fetch only costs the signature.
	profile, err := client.FetchProfile(ctx)
	if err != nil {
		logger.Warn("profile fetch failed, sending without signature", logging.Err(err))
		profile = nil
	}

	sc := server.NewServerContext(client, profile, server.Options{
		SignatureTemplate: os.Getenv("GMAIL_SIGNATURE"),
		Logger:            logger,
	})
	if p := sc.Profile(); p != nil {
		sc.Logger().Info("authenticated", logging.UserHash(p.Email))
	}

	mcpSrv := mcpserver.NewMCPServer("gmailmcp", version,
		mcpserver.WithToolCapabilities(true),
	)

	dispatcher := email_tools.NewDispatcher(sc.GmailClient(), email_tools.Options{
		Signature: sc.Signature(),
		ExportDir: sc.ExportDir(),
		Logger:    sc.Logger(),
		Metrics:   provider.Metrics(),
	})
	dispatcher.Register(mcpSrv)

	logger.Info("starting MCP server over stdio")
	return runStdioServer(mcpSrv)
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	if err := <-serverDone; err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}
