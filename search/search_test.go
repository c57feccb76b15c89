package search

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/tracehq/traceindex/index"
)

func newTestStore(names ...string) *index.Store {
	s := index.NewStore()
	for _, name := range names {
		s.Upsert(index.Entry{
			Name:     name,
			Path:     "/home/u/" + name,
			Kind:     index.KindFile,
			Size:     100,
			Modified: time.Now(),
		})
	}
	return s
}

func Test_Search_EmptyQueryReturnsNothing(t *testing.T) {
	s := newTestStore("main.rs", "Cargo.toml")

	if got := Search(s, "", 10); len(got) != 0 {
		t.Errorf("expected empty result for empty query, got %d results", len(got))
	}
}

func Test_Search_RankingOrder(t *testing.T) {
	s := newTestStore("main.rs", "Cargo.toml")

	results := Search(s, "mrs", 10)
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	if results[0].Name != "main.rs" {
		t.Errorf("expected main.rs, got %s", results[0].Name)
	}
	if results[0].Score <= 0 {
		t.Errorf("expected positive score, got %d", results[0].Score)
	}
}

func Test_Search_ThresholdFiltering(t *testing.T) {
	s := newTestStore("Cargo.toml")

	// "oml" is a valid subsequence of "Cargo.toml" but earns only an
	// adjacency bonus against a full leading-character penalty, landing
	// below MinScore.
	results := Search(s, "oml", 10)
	for _, r := range results {
		if r.Name == "Cargo.toml" {
			t.Errorf("sub-threshold match leaked into results (score %d)", r.Score)
		}
	}
}

func Test_Search_NoSubsequenceNoMatch(t *testing.T) {
	s := newTestStore("notes.txt")

	if got := Search(s, "zzz", 10); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func Test_Search_Truncation(t *testing.T) {
	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("report-%02d.txt", i)
	}
	s := newTestStore(names...)

	results := Search(s, "report", 5)
	if len(results) != 5 {
		t.Errorf("expected 5 results after truncation, got %d", len(results))
	}
}

func Test_Search_MatchedIndexesAscending(t *testing.T) {
	s := newTestStore("main.rs")

	results := Search(s, "mrs", 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	indexes := results[0].MatchedIndexes
	if len(indexes) != 3 {
		t.Fatalf("expected 3 matched positions, got %d", len(indexes))
	}
	if !sort.IntsAreSorted(indexes) {
		t.Errorf("expected ascending matched indexes, got %v", indexes)
	}
	for _, i := range indexes {
		if i < 0 || i >= len("main.rs") {
			t.Errorf("matched index %d out of range for name", i)
		}
	}
}

func Test_Search_ScoresSortedDescending(t *testing.T) {
	s := newTestStore("config.yaml", "conf", "my-config-backup.yaml", "docs")

	results := Search(s, "conf", 10)
	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score: %d before %d", results[i-1].Score, results[i].Score)
		}
	}
}

func Test_Search_EqualScoresKeepSnapshotOrder(t *testing.T) {
	// Identical names score identically; snapshot order is sorted by
	// path, so aa before bb.
	s := index.NewStore()
	s.Upsert(index.Entry{Name: "notes.txt", Path: "/home/u/aa/notes.txt", Kind: index.KindFile})
	s.Upsert(index.Entry{Name: "notes.txt", Path: "/home/u/bb/notes.txt", Kind: index.KindFile})

	results := Search(s, "notes", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Path != "/home/u/aa/notes.txt" || results[1].Path != "/home/u/bb/notes.txt" {
		t.Errorf("equal-score results lost snapshot order: %s, %s", results[0].Path, results[1].Path)
	}
}

func Test_Search_ManyEqualScoresKeepSnapshotOrder(t *testing.T) {
	s := index.NewStore()
	dirs := []string{"/a", "/b", "/c", "/d", "/e", "/f"}
	for _, dir := range dirs {
		s.Upsert(index.Entry{Name: "notes.txt", Path: dir + "/notes.txt", Kind: index.KindFile})
	}

	results := Search(s, "notes", 0)
	if len(results) != len(dirs) {
		t.Fatalf("expected %d results, got %d", len(dirs), len(results))
	}
	for i, dir := range dirs {
		if want := dir + "/notes.txt"; results[i].Path != want {
			t.Errorf("result %d: expected %s, got %s", i, want, results[i].Path)
		}
	}
}
