package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tracehq/traceindex/index"
	"github.com/tracehq/traceindex/search"
)

// SearchArgs defines the input parameters for the trace_search tool.
type SearchArgs struct {
	Query      string `json:"query" jsonschema:"Fuzzy query matched against entry names. Characters must appear in order but need not be contiguous"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default from settings)"`
}

// SearchHandler holds the dependencies for the search tool.
type SearchHandler struct {
	Store      *index.Store
	MaxResults int // default cap when the caller does not supply one
	Logger     *slog.Logger
}

// Handle processes a trace_search request. An empty query is a valid
// request with an empty result, not an error.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = h.MaxResults
	}

	results := search.Search(h.Store, args.Query, maxResults)

	h.Logger.Info("trace_search",
		"query", args.Query,
		"results", len(results),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatSearchResults(results)}},
	}, nil, nil
}
