package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/pagerag/internal/core/ports/driving"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the question to answer from the ingested documents"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of chunks to retrieve as context (default 5)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct{}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Existing int `json:"existing"`
	Added    int `json:"added"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Answer a question from the ingested PDF documents",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Ingest new PDF documents from the data directory into the store",
	}, s.handleIngest)
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	answer, err := s.ports.Query.Query(ctx, input.Query, driving.QueryOptions{TopK: input.TopK})
	if err != nil {
		return nil, QueryOutput{}, err
	}

	return nil, QueryOutput{
		Response: answer.Response,
		Sources:  answer.Sources,
	}, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	stats, err := s.ports.Ingest.Ingest(ctx)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		Existing: stats.Existing,
		Added:    stats.Added,
	}, nil
}
