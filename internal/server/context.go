package server

import (
	"log/slog"

	"github.com/mailwright/gmailmcp/internal/gmail"
)

// ServerContext carries the dependencies tool handlers need: the Gmail
// client, the user profile for signature rendering, and export settings.
// It is immutable after construction.
type ServerContext struct {
	client    *gmail.Client
	profile   *gmail.Profile
	signature string
	exportDir string
	logger    *slog.Logger
}

// Options configures a ServerContext.
type Options struct {
	// SignatureTemplate is the raw template with {name} and {email}
	// placeholders, usually read from GMAIL_SIGNATURE. Empty disables
	// signature appending.
	SignatureTemplate string
	// ExportDir overrides where save_sent_emails writes documents.
	ExportDir string
	Logger    *slog.Logger
}

// NewServerContext builds the context for a single authenticated account.
// The profile may be nil; signature rendering then yields nothing.
func NewServerContext(client *gmail.Client, profile *gmail.Profile, opts Options) *ServerContext {
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = gmail.ExportDir()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ServerContext{
		client:    client,
		profile:   profile,
		signature: gmail.RenderSignature(opts.SignatureTemplate, profile),
		exportDir: exportDir,
		logger:    logger,
	}
}

// GmailClient returns the authenticated Gmail client.
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.client
}

// Profile returns the cached user profile, or nil when the fetch at
// startup failed.
func (sc *ServerContext) Profile() *gmail.Profile {
	return sc.profile
}

// Signature returns the rendered signature, empty when no template or no
// profile is configured.
func (sc *ServerContext) Signature() string {
	return sc.signature
}

// ExportDir returns the directory save_sent_emails writes to.
func (sc *ServerContext) ExportDir() string {
	return sc.exportDir
}

// Logger returns the server's structured logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}
