package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gmailmcp application
var rootCmd = &cobra.Command{
	Use:   "gmailmcp",
	Short: "Gmail MCP server for AI assistants",
	Long: `gmailmcp exposes a Gmail account as MCP (Model Context Protocol) tools
over stdio: sending, reading, searching, labeling, deleting, and
exporting emails.

Authentication uses the OAuth2 authorization-code flow; run "gmailmcp
auth" once to authorize, after that the stored token is reused.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	rootCmd.SetVersionTemplate(`{{printf "gmailmcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
