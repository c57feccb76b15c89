// Package search ranks index entries against a query string using
// subsequence fuzzy matching over entry names.
package search

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"github.com/tracehq/traceindex/index"
)

// MinScore is the minimum fuzzy score an entry must reach to appear in
// results. Matches below it are noise (a bare subsequence hit with no
// run or boundary bonuses).
const MinScore = 10

// Result is one ranked search hit.
type Result struct {
	Name           string     `json:"name"`
	Path           string     `json:"path"`
	Kind           index.Kind `json:"kind"`
	Score          int        `json:"score"`
	MatchedIndexes []int      `json:"matchedIndexes"` // positions in Name, ascending, for highlighting
}

// entrySource adapts a snapshot to fuzzy.Source. Matching runs over the
// display name, not the full path.
type entrySource []index.Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// Search takes one snapshot of the store and returns entries whose name
// fuzzy-matches the query, best first, truncated to maxResults. The
// scoring rewards contiguous runs and matches at word boundaries;
// entries with no subsequence match or a score below MinScore are
// excluded. Ties keep their snapshot order. An empty query returns nil
// without touching the store.
func Search(store *index.Store, query string, maxResults int) []Result {
	if query == "" {
		return nil
	}

	snapshot := store.Snapshot()
	source := entrySource(snapshot)
	matches := fuzzy.FindFrom(query, source)

	// FindFrom orders equal scores arbitrarily; sort on (score, snapshot
	// index) so ties keep their snapshot order.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	results := make([]Result, 0, len(matches))
	for _, match := range matches {
		if match.Score < MinScore {
			continue
		}
		entry := snapshot[match.Index]
		results = append(results, Result{
			Name:           entry.Name,
			Path:           entry.Path,
			Kind:           entry.Kind,
			Score:          match.Score,
			MatchedIndexes: match.MatchedIndexes,
		})
	}

	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
