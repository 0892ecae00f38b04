package email_tools

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	gmail_v1 "google.golang.org/api/gmail/v1"
)

func TestSaveSentEmailsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	svc := &mockService{
		listFunc: func(_ context.Context, query string, maxResults int64) ([]*gmail_v1.Message, error) {
			if query != "in:sent" {
				t.Errorf("query = %q, want in:sent", query)
			}
			if maxResults != 50 {
				t.Errorf("maxResults = %d, want default 50", maxResults)
			}
			return nil, nil
		},
	}
	d := NewDispatcher(svc, Options{ExportDir: dir})

	result, err := d.Call(context.Background(), "save_sent_emails", map[string]any{})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if got := resultText(t, result); got != "No sent messages found" {
		t.Errorf("text = %q", got)
	}

	// The directory exists even though nothing was written.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("output directory missing: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files, found %d", len(entries))
	}
}

func TestSaveSentEmailsWritesDocuments(t *testing.T) {
	dir := t.TempDir()

	sent := messageWithHeaders("s1", map[string]string{
		"Subject": "Project kickoff!",
		"To":      "team@example.com",
		"Date":    "Mon, 31 Aug 2026 10:00:00 +0000",
	})
	sent.InternalDate = 1725100000000
	sent.Payload.MimeType = "text/plain"
	sent.Payload.Body = &gmail_v1.MessagePartBody{
		Data: base64.URLEncoding.EncodeToString([]byte("Kickoff notes.")),
	}

	svc := &mockService{
		listFunc: func(context.Context, string, int64) ([]*gmail_v1.Message, error) {
			return []*gmail_v1.Message{{Id: "s1"}}, nil
		},
		getFunc: func(_ context.Context, id string) (*gmail_v1.Message, error) {
			return sent, nil
		},
	}
	d := NewDispatcher(svc, Options{})

	result, err := d.Call(context.Background(), "save_sent_emails", map[string]any{
		"outputDir": dir,
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	if got, want := resultText(t, result), "Saved 1 sent emails to "+dir; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}

	path := filepath.Join(dir, "1725100000000-Project-kickoff.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected export file: %v", err)
	}

	want := "Subject: Project kickoff!\nTo: team@example.com\nDate: Mon, 31 Aug 2026 10:00:00 +0000\n\nKickoff notes."
	if string(data) != want {
		t.Errorf("document = %q, want %q", data, want)
	}
}

func TestSaveSentEmailsCustomMax(t *testing.T) {
	svc := &mockService{
		listFunc: func(_ context.Context, _ string, maxResults int64) ([]*gmail_v1.Message, error) {
			if maxResults != 5 {
				t.Errorf("maxResults = %d, want 5", maxResults)
			}
			return nil, nil
		},
	}
	d := NewDispatcher(svc, Options{ExportDir: t.TempDir()})

	if _, err := d.Call(context.Background(), "save_sent_emails", map[string]any{
		"maxResults": float64(5),
	}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
}
