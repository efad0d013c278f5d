package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quaero-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the indexed documents to MCP clients:
  - a "retrieve" tool running hybrid retrieval over the index
  - an "ask" tool answering questions grounded in the documents
  - a "quaero://documents" resource listing what is indexed

By default the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead, e.g. for the MCP Inspector web UI or
remote access.

Examples:
  # Stdio mode (default)
  quaero mcp serve

  # HTTP mode
  quaero mcp serve --port 8080

MCP client configuration:
  {
    "mcpServers": {
      "quaero": {
        "command": "/path/to/quaero",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Retrieval: retrievalService,
		Answer:    answerService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
