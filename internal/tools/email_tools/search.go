package email_tools

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mailwright/gmailmcp/internal/gmail"
)

// fetchConcurrency caps the parallel per-message fetches so a large
// maxResults does not trip the provider's rate limits.
const fetchConcurrency = 5

var searchHeaders = []string{"Subject", "From", "Date"}

func (d *Dispatcher) handleSearchEmails(ctx context.Context, args map[string]any) (string, error) {
	query, err := requiredString(args, "query")
	if err != nil {
		return "", err
	}
	maxResults, err := optionalNumber(args, "maxResults", defaultSearchResults)
	if err != nil {
		return "", err
	}

	msgs, err := d.svc.ListMessages(ctx, query, maxResults)
	if err != nil {
		return "", fmt.Errorf("failed to search emails: %w", err)
	}
	if len(msgs) == 0 {
		return "No messages found", nil
	}

	// Metadata fetches run concurrently; each worker writes into its own
	// slot so the output keeps the listing order.
	records := make([]string, len(msgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for i, msg := range msgs {
		g.Go(func() error {
			meta, err := d.svc.GetMessageMetadata(gctx, msg.Id, searchHeaders)
			if err != nil {
				return fmt.Errorf("failed to fetch message %s: %w", msg.Id, err)
			}
			records[i] = fmt.Sprintf("ID: %s\nSubject: %s\nFrom: %s\nDate: %s",
				msg.Id,
				gmail.HeaderValue(meta, "Subject"),
				gmail.HeaderValue(meta, "From"),
				gmail.HeaderValue(meta, "Date"),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	return fmt.Sprintf("Found %d messages:\n\n%s", len(msgs), strings.Join(records, "\n\n")), nil
}
