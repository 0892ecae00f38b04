package email_tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailwright/gmailmcp/internal/gmail"
	"github.com/mailwright/gmailmcp/internal/instrumentation"
	"github.com/mailwright/gmailmcp/internal/logging"
)

// Default result caps for the listing tools.
const (
	defaultSearchResults = 10
	defaultExportResults = 50
)

type handlerFunc func(ctx context.Context, args map[string]any) (string, error)

// Dispatcher owns the tool catalog and routes validated calls to the mail
// service. Construct it once at startup; it is read-only afterwards.
type Dispatcher struct {
	svc       MailService
	signature string
	exportDir string
	logger    *slog.Logger
	metrics   *instrumentation.Metrics

	catalog  []mcp.Tool
	handlers map[string]handlerFunc
}

// Options configures a Dispatcher.
type Options struct {
	// Signature is the already-rendered signature appended to outgoing
	// bodies. Empty disables appending.
	Signature string
	// ExportDir is where save_sent_emails writes documents.
	ExportDir string
	Logger    *slog.Logger
	Metrics   *instrumentation.Metrics
}

// NewDispatcher builds the catalog and handler table for the six email
// tools.
func NewDispatcher(svc MailService, opts Options) *Dispatcher {
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = gmail.ExportDir()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		svc:       svc,
		signature: opts.Signature,
		exportDir: exportDir,
		logger:    logger,
		metrics:   opts.Metrics,
		handlers:  make(map[string]handlerFunc),
	}

	d.register(mcp.NewTool("send_email",
		mcp.WithDescription("Sends a new email"),
		mcp.WithArray("to",
			mcp.Required(),
			mcp.Description("List of recipient email addresses"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body content"),
		),
		mcp.WithArray("cc",
			mcp.Description("List of CC recipients"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("bcc",
			mcp.Description("List of BCC recipients"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), d.handleSendEmail)

	d.register(mcp.NewTool("read_email",
		mcp.WithDescription("Retrieves the content of a specific email"),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("ID of the email message to retrieve"),
		),
	), d.handleReadEmail)

	d.register(mcp.NewTool("search_emails",
		mcp.WithDescription("Searches for emails using Gmail search syntax"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Gmail search query (e.g., 'from:example@gmail.com')"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	), d.handleSearchEmails)

	d.register(mcp.NewTool("modify_email",
		mcp.WithDescription("Modifies email labels (move to different folders)"),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("ID of the email message to modify"),
		),
		mcp.WithArray("labelIds",
			mcp.Required(),
			mcp.Description("List of label IDs to apply"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), d.handleModifyEmail)

	d.register(mcp.NewTool("delete_email",
		mcp.WithDescription("Permanently deletes an email"),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("ID of the email message to delete"),
		),
	), d.handleDeleteEmail)

	d.register(mcp.NewTool("save_sent_emails",
		mcp.WithDescription("Saves sent emails as markdown documents"),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of sent emails to save (default: 50)"),
		),
		mcp.WithString("outputDir",
			mcp.Description("Directory to save the documents to (default: gmail-exports)"),
		),
	), d.handleSaveSentEmails)

	return d
}

func (d *Dispatcher) register(tool mcp.Tool, handler handlerFunc) {
	d.catalog = append(d.catalog, tool)
	d.handlers[tool.Name] = handler
}

// Tools returns the immutable tool catalog.
func (d *Dispatcher) Tools() []mcp.Tool {
	return d.catalog
}

// Call looks up the named tool, validates and executes it, and folds the
// outcome into a text result. Errors of every kind come back as an
// "Error: " prefixed result, never as a Go error, so the serving loop
// survives any single bad call.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	start := time.Now()
	logger := logging.WithTool(d.logger, name)

	handler, ok := d.handlers[name]
	if !ok {
		d.record(ctx, name, logging.StatusError, start)
		logger.Warn("unknown tool requested", logging.Status(logging.StatusError))
		return errorResult(fmt.Sprintf("Unknown tool: %s", name)), nil
	}

	text, err := handler(ctx, args)
	if err != nil {
		d.record(ctx, name, logging.StatusError, start)
		logger.Error("tool call failed",
			logging.Status(logging.StatusError),
			logging.Err(err))
		return errorResult(err.Error()), nil
	}

	d.record(ctx, name, logging.StatusSuccess, start)
	logger.Info("tool call completed", logging.Status(logging.StatusSuccess))
	return mcp.NewToolResultText(text), nil
}

// Register adds every catalog tool to the MCP server, routed through
// Call.
func (d *Dispatcher) Register(s *mcpserver.MCPServer) {
	for _, tool := range d.catalog {
		name := tool.Name
		s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return d.Call(ctx, name, request.GetArguments())
		})
	}
}

func (d *Dispatcher) record(ctx context.Context, tool, status string, start time.Time) {
	d.metrics.RecordToolInvocation(ctx, tool, status, time.Since(start))
}

func errorResult(msg string) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + msg)
}
