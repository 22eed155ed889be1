package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagerag/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Exposes the pipeline to MCP clients: a query tool that answers
questions from the store and an ingest tool that refreshes it. Serves
over stdio by default, or HTTP with --http.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ingest, ingestCleanup, err := buildIngest(cfg)
	if err != nil {
		return err
	}
	defer ingestCleanup()

	query, queryCleanup, err := buildQuery(cfg)
	if err != nil {
		return err
	}
	defer queryCleanup()

	server, err := mcp.NewServer(&mcp.Ports{
		Ingest: ingest,
		Query:  query,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if mcpHTTPAddr != "" {
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
