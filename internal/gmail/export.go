package gmail

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// DefaultExportDirName is where sent-email exports land when no override is
// configured.
const DefaultExportDirName = "gmail-exports"

const maxExportSubjectLen = 50

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// ExportDir returns the sent-email export directory, honoring the
// GMAIL_EXPORT_DIR environment override.
func ExportDir() string {
	if dir := os.Getenv("GMAIL_EXPORT_DIR"); dir != "" {
		return dir
	}
	return DefaultExportDirName
}

// ExportDocument renders one sent message as a text document: a small
// front-matter block followed by the body.
func ExportDocument(subject, to, date, body string) string {
	return fmt.Sprintf("Subject: %s\nTo: %s\nDate: %s\n\n%s", subject, to, date, body)
}

// ExportFilename derives a filename from the message's internal date (a
// Unix millisecond timestamp) and its subject. Runs of non-alphanumeric
// characters in the subject collapse to a single separator and the result
// is capped at 50 characters.
func ExportFilename(internalDate int64, subject string) string {
	sanitized := sanitizeSubject(subject)
	if sanitized == "" {
		sanitized = "no-subject"
	}
	return fmt.Sprintf("%d-%s.md", internalDate, sanitized)
}

func sanitizeSubject(subject string) string {
	s := nonAlphanumeric.ReplaceAllString(subject, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxExportSubjectLen {
		s = s[:maxExportSubjectLen]
		s = strings.TrimRight(s, "-")
	}
	return s
}
