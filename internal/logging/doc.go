// Package logging provides structured logging utilities for the gmailmcp server.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package. Log output is
// written to stderr because stdout is reserved for the MCP stdio transport.
//
// # Security Considerations
//
//   - User emails are hashed to prevent PII leakage while allowing correlation
//   - Tokens are never logged directly
package logging
