// Package google provides OAuth2 authentication and token management for the Gmail API.
//
// Authentication uses the authorization-code grant for installed applications:
// a consent URL is presented to the operator, a short-lived local HTTP listener
// captures the redirect, and the authorization code is exchanged for a token set
// that is persisted to disk and reused (with automatic refresh) on subsequent runs.
//
// OAuth client keys are loaded from a gcp-oauth.keys.json bundle in either the
// "installed" or "web" application shape. The keys file and the persisted
// credentials live in ~/.gmail-mcp by default; GMAIL_OAUTH_PATH and
// GMAIL_CREDENTIALS_PATH override the individual paths.
package google
