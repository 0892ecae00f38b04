package gmail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/mailwright/gmailmcp/internal/instrumentation"
)

// Profile holds the authenticated user's display name and primary email.
// It is fetched once after authentication and only used for the signature.
type Profile struct {
	Name  string
	Email string
}

// Client wraps the Gmail Users service and the People service with a live
// OAuth credential. Every provider call is recorded against the Gmail
// operation instruments.
type Client struct {
	svc       *gmail.UsersService
	peopleSvc *people.Service
	metrics   *instrumentation.Metrics
}

// NewClient creates a Gmail client backed by the given token source. The
// token source refreshes the access token transparently on expiry. metrics
// may be nil when instrumentation is disabled.
func NewClient(ctx context.Context, ts oauth2.TokenSource, metrics *instrumentation.Metrics) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, ts)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	peopleSvc, err := people.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &Client{
		svc:       svc.Users,
		peopleSvc: peopleSvc,
		metrics:   metrics,
	}, nil
}

// record counts a finished provider call and its duration.
func (c *Client) record(ctx context.Context, operation string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	c.metrics.RecordGmailOperation(ctx, operation, status, time.Since(start))
}

// Send submits a base64url-encoded raw message and returns the
// provider-assigned message ID.
func (c *Client) Send(ctx context.Context, raw string) (string, error) {
	start := time.Now()
	sent, err := c.svc.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	c.record(ctx, "send", start, err)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

// GetMessage retrieves a full Gmail message including its payload tree.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	start := time.Now()
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	c.record(ctx, "get_message", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// GetMessageMetadata retrieves only the named headers of a message.
func (c *Client) GetMessageMetadata(ctx context.Context, messageID string, headers []string) (*gmail.Message, error) {
	call := c.svc.Messages.Get("me", messageID).Format("metadata")
	if len(headers) > 0 {
		call = call.MetadataHeaders(headers...)
	}
	start := time.Now()
	msg, err := call.Context(ctx).Do()
	c.record(ctx, "get_metadata", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get message metadata %s: %w", messageID, err)
	}
	return msg, nil
}

// ListMessages lists message stubs (ID and thread ID only) matching the
// query, up to maxResults.
func (c *Client) ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmail.Message, error) {
	start := time.Now()
	res, err := c.svc.Messages.List("me").Q(query).MaxResults(maxResults).Context(ctx).Do()
	c.record(ctx, "list_messages", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return res.Messages, nil
}

// ModifyMessage adds the given labels to a message.
func (c *Client) ModifyMessage(ctx context.Context, messageID string, addLabelIDs []string) error {
	start := time.Now()
	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds: addLabelIDs,
	}).Context(ctx).Do()
	c.record(ctx, "modify_message", start, err)
	if err != nil {
		return fmt.Errorf("failed to modify message %s: %w", messageID, err)
	}
	return nil
}

// DeleteMessage permanently deletes a message. There is no trash step; the
// message is gone after this call succeeds.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	start := time.Now()
	err := c.svc.Messages.Delete("me", messageID).Context(ctx).Do()
	c.record(ctx, "delete_message", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

// FetchProfile retrieves the user's display name and primary email address.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	start := time.Now()
	person, err := c.peopleSvc.People.Get("people/me").
		PersonFields("names,emailAddresses").
		Context(ctx).Do()
	c.record(ctx, "fetch_profile", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}

	profile := &Profile{}
	if len(person.Names) > 0 {
		profile.Name = person.Names[0].DisplayName
	}
	if len(person.EmailAddresses) > 0 {
		profile.Email = person.EmailAddresses[0].Value
	}
	return profile, nil
}

// HeaderValue returns the value of the named header from a message payload,
// matching case-insensitively. Returns the empty string when absent.
func HeaderValue(msg *gmail.Message, name string) string {
	if msg == nil || msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}
