package email_tools

import (
	"context"
	"fmt"

	"github.com/mailwright/gmailmcp/internal/gmail"
)

func (d *Dispatcher) handleSendEmail(ctx context.Context, args map[string]any) (string, error) {
	to, err := stringList(args, "to", true)
	if err != nil {
		return "", err
	}
	subject, err := requiredString(args, "subject")
	if err != nil {
		return "", err
	}
	body, err := requiredString(args, "body")
	if err != nil {
		return "", err
	}
	cc, err := stringList(args, "cc", false)
	if err != nil {
		return "", err
	}
	bcc, err := stringList(args, "bcc", false)
	if err != nil {
		return "", err
	}

	raw := gmail.BuildRawMessage(&gmail.OutgoingMessage{
		To:      to,
		Cc:      cc,
		Bcc:     bcc,
		Subject: subject,
		Body:    body,
	}, d.signature)

	id, err := d.svc.Send(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return fmt.Sprintf("Email sent successfully with ID: %s", id), nil
}
