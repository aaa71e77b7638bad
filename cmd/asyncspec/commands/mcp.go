package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/asyncspec/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Mcp starts a Model Context Protocol server on stdin/stdout exposing the
generate and inspect tools. Cache and limit settings are read from
ASYNCSPEC_MCP_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
