package email_tools

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	gmail_v1 "google.golang.org/api/gmail/v1"
)

func TestToolCatalog(t *testing.T) {
	d := NewDispatcher(&mockService{}, Options{})

	want := []string{
		"send_email",
		"read_email",
		"search_emails",
		"modify_email",
		"delete_email",
		"save_sent_emails",
	}

	tools := d.Tools()
	if len(tools) != len(want) {
		t.Fatalf("catalog has %d tools, want %d", len(tools), len(want))
	}
	for i, name := range want {
		if tools[i].Name != name {
			t.Errorf("tools[%d].Name = %q, want %q", i, tools[i].Name, name)
		}
		if tools[i].Description == "" {
			t.Errorf("tool %s has no description", name)
		}
	}
}

func TestCallUnknownTool(t *testing.T) {
	svc := &mockService{}
	d := NewDispatcher(svc, Options{})

	result, err := d.Call(context.Background(), "unknown_tool", map[string]any{})
	if err != nil {
		t.Fatalf("Call() must not return a Go error, got %v", err)
	}

	if got := resultText(t, result); got != "Error: Unknown tool: unknown_tool" {
		t.Errorf("text = %q, want %q", got, "Error: Unknown tool: unknown_tool")
	}
	if !result.IsError {
		t.Error("result must be flagged as error")
	}
	if svc.calls.Load() != 0 {
		t.Error("provider must not be called for an unknown tool")
	}
}

func TestCallValidationBeforeProvider(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		wantText string
	}{
		{
			name:     "send_email missing to and body",
			tool:     "send_email",
			args:     map[string]any{"subject": "x"},
			wantText: "Error: to is required",
		},
		{
			name:     "send_email wrong to type",
			tool:     "send_email",
			args:     map[string]any{"to": "a@example.com", "subject": "x", "body": "y"},
			wantText: "Error: to must be an array of strings",
		},
		{
			name:     "send_email empty to array",
			tool:     "send_email",
			args:     map[string]any{"to": []any{}, "subject": "x", "body": "y"},
			wantText: "Error: to is required",
		},
		{
			name:     "read_email missing messageId",
			tool:     "read_email",
			args:     map[string]any{},
			wantText: "Error: messageId is required",
		},
		{
			name:     "search_emails missing query",
			tool:     "search_emails",
			args:     map[string]any{},
			wantText: "Error: query is required",
		},
		{
			name:     "search_emails non-numeric maxResults",
			tool:     "search_emails",
			args:     map[string]any{"query": "is:unread", "maxResults": "ten"},
			wantText: "Error: maxResults must be a number",
		},
		{
			name:     "modify_email missing labels",
			tool:     "modify_email",
			args:     map[string]any{"messageId": "m1"},
			wantText: "Error: labelIds is required",
		},
		{
			name:     "delete_email missing messageId",
			tool:     "delete_email",
			args:     map[string]any{},
			wantText: "Error: messageId is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			d := NewDispatcher(svc, Options{})

			result, err := d.Call(context.Background(), tt.tool, tt.args)
			if err != nil {
				t.Fatalf("Call() error = %v", err)
			}
			if got := resultText(t, result); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if svc.calls.Load() != 0 {
				t.Error("provider must not be called when validation fails")
			}
		})
	}
}

func TestSendEmail(t *testing.T) {
	var sentRaw string
	svc := &mockService{
		sendFunc: func(_ context.Context, raw string) (string, error) {
			sentRaw = raw
			return "sent-42", nil
		},
	}
	d := NewDispatcher(svc, Options{Signature: "Best regards,\nAlice"})

	result, err := d.Call(context.Background(), "send_email", map[string]any{
		"to":      []any{"a@example.com"},
		"cc":      []any{"c@example.com"},
		"subject": "Hello",
		"body":    "Body text",
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if got := resultText(t, result); got != "Email sent successfully with ID: sent-42" {
		t.Errorf("text = %q", got)
	}

	decoded, err := base64.RawURLEncoding.DecodeString(sentRaw)
	if err != nil {
		t.Fatalf("sent raw is not unpadded base64url: %v", err)
	}
	for _, want := range []string{
		"From: me\r\n",
		"To: a@example.com\r\n",
		"Cc: c@example.com\r\n",
		"Subject: Hello\r\n",
		"Best regards,\nAlice",
	} {
		if !strings.Contains(string(decoded), want) {
			t.Errorf("raw message missing %q: %q", want, decoded)
		}
	}
}

func TestSendEmailProviderFailure(t *testing.T) {
	svc := &mockService{
		sendFunc: func(context.Context, string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	d := NewDispatcher(svc, Options{})

	result, err := d.Call(context.Background(), "send_email", map[string]any{
		"to":      []any{"a@example.com"},
		"subject": "Hello",
		"body":    "Body",
	})
	if err != nil {
		t.Fatalf("Call() must swallow provider errors, got %v", err)
	}

	got := resultText(t, result)
	if !strings.HasPrefix(got, "Error: failed to send email") {
		t.Errorf("text = %q", got)
	}
	if !strings.Contains(got, "quota exceeded") {
		t.Errorf("underlying cause missing from %q", got)
	}
}

func TestReadEmail(t *testing.T) {
	msg := messageWithHeaders("m1", map[string]string{
		"Subject": "Status update",
		"From":    "a@example.com",
		"To":      "b@example.com",
		"Date":    "Mon, 31 Aug 2026 10:00:00 +0000",
	})
	msg.Payload.MimeType = "text/plain"
	msg.Payload.Body = &gmail_v1.MessagePartBody{
		Data: base64.URLEncoding.EncodeToString([]byte("The body.")),
	}

	svc := &mockService{
		getFunc: func(_ context.Context, id string) (*gmail_v1.Message, error) {
			if id != "m1" {
				t.Errorf("GetMessage id = %q, want m1", id)
			}
			return msg, nil
		},
	}
	d := NewDispatcher(svc, Options{})

	result, err := d.Call(context.Background(), "read_email", map[string]any{"messageId": "m1"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	got := resultText(t, result)
	want := "Subject: Status update\nFrom: a@example.com\nTo: b@example.com\nDate: Mon, 31 Aug 2026 10:00:00 +0000\n\nThe body."
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestModifyEmail(t *testing.T) {
	var gotID string
	var gotLabels []string
	svc := &mockService{
		modifyFunc: func(_ context.Context, id string, labels []string) error {
			gotID, gotLabels = id, labels
			return nil
		},
	}
	d := NewDispatcher(svc, Options{})

	result, err := d.Call(context.Background(), "modify_email", map[string]any{
		"messageId": "m7",
		"labelIds":  []any{"INBOX", "IMPORTANT"},
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if gotID != "m7" || len(gotLabels) != 2 {
		t.Errorf("ModifyMessage(%q, %v)", gotID, gotLabels)
	}
	if got := resultText(t, result); got != "Email m7 modified successfully. Added labels: INBOX, IMPORTANT" {
		t.Errorf("text = %q", got)
	}
}

func TestDeleteEmail(t *testing.T) {
	var gotID string
	svc := &mockService{
		deleteFunc: func(_ context.Context, id string) error {
			gotID = id
			return nil
		},
	}
	d := NewDispatcher(svc, Options{})

	result, err := d.Call(context.Background(), "delete_email", map[string]any{"messageId": "m9"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if gotID != "m9" {
		t.Errorf("DeleteMessage id = %q", gotID)
	}
	if got := resultText(t, result); got != "Email m9 deleted successfully" {
		t.Errorf("text = %q", got)
	}
}
