package tools

import (
	"fmt"
	"strings"

	"github.com/tracehq/traceindex/search"
)

// FormatSearchResults formats ranked search results as human-readable
// text, one line per hit: name, kind, score, and the full path.
func FormatSearchResults(results []search.Result) string {
	if len(results) == 0 {
		return "No matches found."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d matches:\n\n", len(results)))

	for _, result := range results {
		builder.WriteString(fmt.Sprintf("  %-30s  [%s, score %d]  %s\n",
			result.Name,
			result.Kind,
			result.Score,
			result.Path,
		))
	}

	return builder.String()
}

// formatByteSize converts bytes to a human-readable string.
func formatByteSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
