package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gmailmcp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gmailmcp version %s\n", version)
		},
	}
}
