package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tracehq/traceindex/index"
)

// StatusArgs defines the input parameters for the trace_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Store     *index.Store
	StartTime time.Time
	Roots     []string
	Logger    *slog.Logger
}

// Handle processes a trace_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	total := h.Store.Len()
	counts := h.Store.CountByKind()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("trace_status",
		"entries", total,
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== traceindex Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Roots: %s\n", strings.Join(h.Roots, ", ")))
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	builder.WriteString(fmt.Sprintf("Indexed entries: %d\n", total))
	builder.WriteString(fmt.Sprintf("  Files:        %d\n", counts[index.KindFile]))
	builder.WriteString(fmt.Sprintf("  Directories:  %d\n", counts[index.KindDirectory]))
	builder.WriteString(fmt.Sprintf("  Applications: %d\n", counts[index.KindApp]))
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		formatByteSize(int64(memStats.Alloc)),
		formatByteSize(int64(memStats.HeapAlloc)),
	))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
	}, nil, nil
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	remainderSeconds := totalSeconds % 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, remainderSeconds)
	}
	hours := totalMinutes / 60
	remainderMinutes := totalMinutes % 60
	return fmt.Sprintf("%dh%dm", hours, remainderMinutes)
}
