package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/textprep/internal/adapters/driving/mcp"
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

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve over HTTP instead.

Tools:
  normalise_text     normalise raw text
  process_document   run a document through the full pipeline
  get_noise_profile  read a business's learnt noise words

Resources:
  textprep://profiles/{businessId}

Examples:
  # Stdio mode (default)
  textprep mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  textprep mcp serve --port 8081`,
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
		Pipeline: pipelineService,
		Profile:  profileService,
	}

	server, err := mcp.NewServer(ports, mcp.WithNormaliseOptions(normaliseDefaults()))
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(commandContext(cmd), addr)
	}

	return server.Run(commandContext(cmd))
}
