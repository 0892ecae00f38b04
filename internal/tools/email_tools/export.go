package email_tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/mailwright/gmailmcp/internal/gmail"
)

const sentQuery = "in:sent"

func (d *Dispatcher) handleSaveSentEmails(ctx context.Context, args map[string]any) (string, error) {
	maxResults, err := optionalNumber(args, "maxResults", defaultExportResults)
	if err != nil {
		return "", err
	}
	outputDir, err := optionalString(args, "outputDir")
	if err != nil {
		return "", err
	}
	if outputDir == "" {
		outputDir = d.exportDir
	}

	// The directory exists after this call even when nothing gets
	// exported.
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	msgs, err := d.svc.ListMessages(ctx, sentQuery, maxResults)
	if err != nil {
		return "", fmt.Errorf("failed to list sent emails: %w", err)
	}
	if len(msgs) == 0 {
		return "No sent messages found", nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, msg := range msgs {
		g.Go(func() error {
			full, err := d.svc.GetMessage(gctx, msg.Id)
			if err != nil {
				return fmt.Errorf("failed to fetch sent email %s: %w", msg.Id, err)
			}

			subject := gmail.HeaderValue(full, "Subject")
			doc := gmail.ExportDocument(
				subject,
				gmail.HeaderValue(full, "To"),
				gmail.HeaderValue(full, "Date"),
				gmail.ExtractPlainTextBody(full.Payload),
			)

			path := filepath.Join(outputDir, gmail.ExportFilename(full.InternalDate, subject))
			if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	return fmt.Sprintf("Saved %d sent emails to %s", len(msgs), outputDir), nil
}
