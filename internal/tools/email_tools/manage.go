package email_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mailwright/gmailmcp/internal/logging"
)

func (d *Dispatcher) handleModifyEmail(ctx context.Context, args map[string]any) (string, error) {
	messageID, err := requiredString(args, "messageId")
	if err != nil {
		return "", err
	}
	labelIDs, err := stringList(args, "labelIds", true)
	if err != nil {
		return "", err
	}

	if err := d.svc.ModifyMessage(ctx, messageID, labelIDs); err != nil {
		return "", fmt.Errorf("failed to modify email %s: %w", messageID, err)
	}
	d.logger.Debug("labels added", logging.MessageID(messageID))

	return fmt.Sprintf("Email %s modified successfully. Added labels: %s",
		messageID, strings.Join(labelIDs, ", ")), nil
}

func (d *Dispatcher) handleDeleteEmail(ctx context.Context, args map[string]any) (string, error) {
	messageID, err := requiredString(args, "messageId")
	if err != nil {
		return "", err
	}

	if err := d.svc.DeleteMessage(ctx, messageID); err != nil {
		return "", fmt.Errorf("failed to delete email %s: %w", messageID, err)
	}
	d.logger.Debug("email deleted", logging.MessageID(messageID))

	return fmt.Sprintf("Email %s deleted successfully", messageID), nil
}
