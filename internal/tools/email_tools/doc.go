// Package email_tools declares the MCP tool catalog for the Gmail server
// and dispatches tool calls to the Gmail client.
//
// The Dispatcher owns the six tools (send_email, read_email,
// search_emails, modify_email, delete_email, save_sent_emails). Every
// call goes through the same path: look the name up in the catalog,
// validate the arguments against the declared schema, run the operation,
// and fold the outcome into a text result. Failures of any kind come back
// as a text result prefixed with "Error: " rather than a transport fault,
// so one bad call never takes down the serving loop.
//
// The Gmail client is consumed through the MailService interface, which
// keeps the dispatcher testable against a mock service.
package email_tools
