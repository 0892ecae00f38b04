package email_tools

import (
	"context"

	gmail_v1 "google.golang.org/api/gmail/v1"
)

// MailService is the slice of the Gmail client the dispatcher needs.
// *gmail.Client satisfies it; tests substitute a mock.
type MailService interface {
	// Send transmits a base64url-encoded raw message and returns the
	// provider-assigned message id.
	Send(ctx context.Context, raw string) (string, error)
	// GetMessage fetches the full message including the payload tree.
	GetMessage(ctx context.Context, messageID string) (*gmail_v1.Message, error)
	// GetMessageMetadata fetches only the named headers plus envelope
	// fields such as the internal date.
	GetMessageMetadata(ctx context.Context, messageID string, headers []string) (*gmail_v1.Message, error)
	// ListMessages returns message stubs (ids only) matching a Gmail
	// search query, capped at maxResults.
	ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmail_v1.Message, error)
	// ModifyMessage adds the given labels to a message.
	ModifyMessage(ctx context.Context, messageID string, addLabelIDs []string) error
	// DeleteMessage permanently deletes a message. There is no trash
	// step; the message is gone.
	DeleteMessage(ctx context.Context, messageID string) error
}
