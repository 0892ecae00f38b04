package gmail

import (
	"encoding/base64"
	"mime"
	"regexp"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// signaturePlaceholder matches the literal "Best regards, [Your name]" tail
// clients often leave at the end of a drafted body, in any whitespace
// variant. It is stripped before the real signature is appended.
var signaturePlaceholder = regexp.MustCompile(`\s*Best regards,\s*\[Your name\]\s*$`)

// OutgoingMessage is a structured send request before raw-message assembly.
type OutgoingMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
}

// ExtractPlainTextBody walks a message payload and concatenates the decoded
// content of every text/plain leaf, newline-joined, in depth-first
// left-to-right order. Non-text leaves are skipped. The walk uses an
// explicit stack so arbitrarily deep payload trees cannot exhaust the
// goroutine stack.
func ExtractPlainTextBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	var texts []string
	stack := []*gmail.MessagePart{payload}
	for len(stack) > 0 {
		part := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if part == nil {
			continue
		}

		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			if decoded, err := decodeBodyData(part.Body.Data); err == nil {
				texts = append(texts, decoded)
			}
		}

		// Push children in reverse so they pop in presented order.
		for i := len(part.Parts) - 1; i >= 0; i-- {
			stack = append(stack, part.Parts[i])
		}
	}

	return strings.Join(texts, "\n")
}

// decodeBodyData decodes Gmail body data, which is base64url encoded with
// or without padding depending on the producing path.
func decodeBodyData(data string) (string, error) {
	if decoded, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(decoded), nil
	}
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// RenderSignature substitutes {name} and {email} in the signature template
// from the user profile. An empty template or absent profile yields no
// signature.
func RenderSignature(template string, profile *Profile) string {
	if template == "" || profile == nil {
		return ""
	}
	sig := strings.ReplaceAll(template, "{name}", profile.Name)
	sig = strings.ReplaceAll(sig, "{email}", profile.Email)
	return sig
}

// BuildRawMessage assembles an RFC 2822 message from a send request and an
// already-rendered signature, returning it base64url encoded without
// padding, as the Gmail API's raw message field expects.
func BuildRawMessage(msg *OutgoingMessage, signature string) string {
	body := signaturePlaceholder.ReplaceAllString(msg.Body, "")
	if signature != "" {
		body = body + "\n\n" + signature
	}

	headers := []struct {
		name  string
		value string
	}{
		{"From", "me"},
		{"To", strings.Join(msg.To, ", ")},
		{"Cc", strings.Join(msg.Cc, ", ")},
		{"Bcc", strings.Join(msg.Bcc, ", ")},
		{"Subject", encodeRFC2047(msg.Subject)},
		{"Content-Type", `text/plain; charset="UTF-8"`},
		{"MIME-Version", "1.0"},
	}

	var lines []string
	for _, h := range headers {
		if h.value == "" {
			continue
		}
		lines = append(lines, h.name+": "+h.value)
	}
	lines = append(lines, "", body)

	raw := strings.Join(lines, "\r\n")
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// encodeRFC2047 encodes a header value according to RFC 2047 when it
// contains non-ASCII characters (umlauts, CJK, ...), and returns it
// unchanged otherwise.
func encodeRFC2047(s string) string {
	needsEncoding := false
	for _, r := range s {
		if r > 127 {
			needsEncoding = true
			break
		}
	}
	if !needsEncoding {
		return s
	}
	return mime.BEncoding.Encode("UTF-8", s)
}
