// Package server provides the shared context for the Gmail MCP server.
//
// ServerContext holds the authenticated Gmail client, the cached user
// profile used for signature rendering, and the configured export
// directory. Tool handlers receive it once at registration time and read
// from it for every call; the stdio transport serves a single account, so
// the context is immutable after construction.
package server
