package email_tools

import (
	"context"
	"fmt"

	"github.com/mailwright/gmailmcp/internal/gmail"
	"github.com/mailwright/gmailmcp/internal/logging"
)

func (d *Dispatcher) handleReadEmail(ctx context.Context, args map[string]any) (string, error) {
	messageID, err := requiredString(args, "messageId")
	if err != nil {
		return "", err
	}

	msg, err := d.svc.GetMessage(ctx, messageID)
	if err != nil {
		return "", fmt.Errorf("failed to read email %s: %w", messageID, err)
	}

	d.logger.Debug("email retrieved", logging.MessageID(messageID))

	body := gmail.ExtractPlainTextBody(msg.Payload)

	return fmt.Sprintf("Subject: %s\nFrom: %s\nTo: %s\nDate: %s\n\n%s",
		gmail.HeaderValue(msg, "Subject"),
		gmail.HeaderValue(msg, "From"),
		gmail.HeaderValue(msg, "To"),
		gmail.HeaderValue(msg, "Date"),
		body,
	), nil
}
