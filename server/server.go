package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tracehq/traceindex/tools"
)

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	searchHandler *tools.SearchHandler,
	statusHandler *tools.StatusHandler,
	reindexHandler *tools.ReindexHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "traceindex",
			Version: "0.3.0",
		},
		&mcp.ServerOptions{
			Instructions: `This server maintains a live in-memory index of the user's files, directories, and installed applications, searchable by fuzzy name matching. The index is bulk-built at startup and kept current by a filesystem watcher, so results reflect the current state of the disk without rescanning on every call.

- Use trace_search to find files, folders, or applications by approximate name ("mrs" finds "main.rs")
- Use trace_status to inspect index size and health
- Use trace_reindex to force a full rebuild after bulk filesystem changes`,
		},
	)

	// Register trace_search tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "trace_search",
		Description: `Fuzzy-search indexed files, directories, and applications by name.

Query characters must appear in the entry name in order but need not be contiguous; contiguous runs and word-boundary matches rank higher. Results are sorted by score, best first.`,
	}, searchHandler.Handle)

	// Register trace_status tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "trace_status",
		Description: "Show index status: entry counts by kind, watched roots, memory usage, and uptime.",
	}, statusHandler.Handle)

	// Register trace_reindex tool
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "trace_reindex",
		Description: "Force a full rebuild of the index. Rediscovers applications and rescans all roots from scratch.",
	}, reindexHandler.Handle)

	return mcpServer
}
