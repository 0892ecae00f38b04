package email_tools

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	gmail_v1 "google.golang.org/api/gmail/v1"
)

// mockService implements MailService with pluggable behavior and call
// counters.
type mockService struct {
	sendFunc   func(ctx context.Context, raw string) (string, error)
	getFunc    func(ctx context.Context, id string) (*gmail_v1.Message, error)
	metaFunc   func(ctx context.Context, id string, headers []string) (*gmail_v1.Message, error)
	listFunc   func(ctx context.Context, query string, maxResults int64) ([]*gmail_v1.Message, error)
	modifyFunc func(ctx context.Context, id string, labelIDs []string) error
	deleteFunc func(ctx context.Context, id string) error

	calls atomic.Int64
}

func (m *mockService) Send(ctx context.Context, raw string) (string, error) {
	m.calls.Add(1)
	if m.sendFunc == nil {
		return "msg-1", nil
	}
	return m.sendFunc(ctx, raw)
}

func (m *mockService) GetMessage(ctx context.Context, id string) (*gmail_v1.Message, error) {
	m.calls.Add(1)
	if m.getFunc == nil {
		return &gmail_v1.Message{Id: id}, nil
	}
	return m.getFunc(ctx, id)
}

func (m *mockService) GetMessageMetadata(ctx context.Context, id string, headers []string) (*gmail_v1.Message, error) {
	m.calls.Add(1)
	if m.metaFunc == nil {
		return &gmail_v1.Message{Id: id}, nil
	}
	return m.metaFunc(ctx, id, headers)
}

func (m *mockService) ListMessages(ctx context.Context, query string, maxResults int64) ([]*gmail_v1.Message, error) {
	m.calls.Add(1)
	if m.listFunc == nil {
		return nil, nil
	}
	return m.listFunc(ctx, query, maxResults)
}

func (m *mockService) ModifyMessage(ctx context.Context, id string, labelIDs []string) error {
	m.calls.Add(1)
	if m.modifyFunc == nil {
		return nil
	}
	return m.modifyFunc(ctx, id, labelIDs)
}

func (m *mockService) DeleteMessage(ctx context.Context, id string) error {
	m.calls.Add(1)
	if m.deleteFunc == nil {
		return nil
	}
	return m.deleteFunc(ctx, id)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func messageWithHeaders(id string, headers map[string]string) *gmail_v1.Message {
	var hs []*gmail_v1.MessagePartHeader
	for name, value := range headers {
		hs = append(hs, &gmail_v1.MessagePartHeader{Name: name, Value: value})
	}
	return &gmail_v1.Message{
		Id:      id,
		Payload: &gmail_v1.MessagePart{Headers: hs},
	}
}
