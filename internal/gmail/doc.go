// Package gmail provides a client for interacting with the Gmail API.
//
// The Client wraps the Gmail Users service for message operations (send,
// get, list, modify, delete) and the People service for a one-time profile
// fetch used to compose the email signature.
//
// The package also contains the message codec: extraction of the plain-text
// body from a message's (possibly deeply nested) multi-part payload, and
// construction of the base64url-encoded raw RFC 2822 message the API expects
// for sending. Sent messages can be rendered into export documents with a
// small front-matter block.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := gmail.NewClient(ctx, tokenSource, metrics)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw := gmail.BuildRawMessage(&gmail.OutgoingMessage{
//	    To:      []string{"recipient@example.com"},
//	    Subject: "Hello",
//	    Body:    "This is a test email",
//	}, "")
//	msgID, err := client.Send(ctx, raw)
package gmail
