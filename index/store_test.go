package index

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestEntry(path string, kind Kind) Entry {
	return Entry{
		Name:     path[len(path)-1:],
		Path:     path,
		Kind:     kind,
		Size:     1024,
		Modified: time.Now(),
	}
}

func Test_Store_UpsertAndSnapshot(t *testing.T) {
	s := NewStore()
	s.Upsert(newTestEntry("/home/u/a.txt", KindFile))
	s.Upsert(newTestEntry("/home/u/b.txt", KindFile))

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap))
	}
	if snap[0].Path != "/home/u/a.txt" || snap[1].Path != "/home/u/b.txt" {
		t.Errorf("expected sorted path order, got %q, %q", snap[0].Path, snap[1].Path)
	}
}

func Test_Store_UpsertReplacesByPath(t *testing.T) {
	s := NewStore()
	e := newTestEntry("/home/u/a.txt", KindFile)
	s.Upsert(e)

	e.Size = 4096
	s.Upsert(e)

	if s.Len() != 1 {
		t.Fatalf("expected 1 entry after duplicate upsert, got %d", s.Len())
	}
	if got := s.Snapshot()[0].Size; got != 4096 {
		t.Errorf("expected entry from second upsert (size 4096), got %d", got)
	}
}

func Test_Store_RemoveRoundTrip(t *testing.T) {
	s := NewStore()
	s.Upsert(newTestEntry("/home/u/a.txt", KindFile))
	s.Remove("/home/u/a.txt")

	if s.Len() != 0 {
		t.Errorf("expected empty store after remove, got %d entries", s.Len())
	}
}

func Test_Store_RemoveNonexistentIsNoop(t *testing.T) {
	s := NewStore()
	s.Upsert(newTestEntry("/home/u/a.txt", KindFile))
	s.Remove("/home/u/missing.txt")

	if s.Len() != 1 {
		t.Errorf("expected store unchanged, got %d entries", s.Len())
	}
}

func Test_Store_ReplaceAllDiscardsPriorState(t *testing.T) {
	s := NewStore()
	s.Upsert(newTestEntry("/old/a", KindFile))
	s.Upsert(newTestEntry("/old/b", KindDirectory))

	s.ReplaceAll([]Entry{
		newTestEntry("/new/x", KindFile),
		newTestEntry("/new/y", KindFile),
	})

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap))
	}
	for _, e := range snap {
		if e.Path == "/old/a" || e.Path == "/old/b" {
			t.Errorf("entry %q survived ReplaceAll", e.Path)
		}
	}
}

func Test_Store_ExtendKeepsExistingEntries(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]Entry{newTestEntry("/apps/editor.desktop", KindApp)})
	s.Extend([]Entry{
		newTestEntry("/home/u/a.txt", KindFile),
		newTestEntry("/home/u/docs", KindDirectory),
	})

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries after extend, got %d", s.Len())
	}

	counts := s.CountByKind()
	if counts[KindApp] != 1 || counts[KindFile] != 1 || counts[KindDirectory] != 1 {
		t.Errorf("unexpected kind counts: %v", counts)
	}
}

func Test_Store_PathUniquenessUnderMixedWrites(t *testing.T) {
	s := NewStore()

	s.ReplaceAll([]Entry{
		newTestEntry("/p/1", KindFile),
		newTestEntry("/p/1", KindDirectory), // duplicate in bulk input
		newTestEntry("/p/2", KindFile),
	})
	s.Upsert(newTestEntry("/p/2", KindFile))
	s.Extend([]Entry{newTestEntry("/p/2", KindFile), newTestEntry("/p/3", KindFile)})

	seen := make(map[string]bool)
	for _, e := range s.Snapshot() {
		if seen[e.Path] {
			t.Fatalf("duplicate path %q in snapshot", e.Path)
		}
		seen[e.Path] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 unique paths, got %d", len(seen))
	}
}

func Test_Store_ConcurrentReadersAndWriters(t *testing.T) {
	s := NewStore()
	for i := 0; i < 100; i++ {
		s.Upsert(newTestEntry(fmt.Sprintf("/seed/%03d", i), KindFile))
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				path := fmt.Sprintf("/w%d/%03d", w, i)
				s.Upsert(newTestEntry(path, KindFile))
				if i%3 == 0 {
					s.Remove(path)
				}
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snap := s.Snapshot()
				seen := make(map[string]bool, len(snap))
				for _, e := range snap {
					if seen[e.Path] {
						t.Errorf("duplicate path %q observed in snapshot", e.Path)
						return
					}
					seen[e.Path] = true
				}
			}
		}()
	}
	wg.Wait()
}

func Test_Kind_String(t *testing.T) {
	cases := map[Kind]string{
		KindFile:      "File",
		KindDirectory: "Directory",
		KindApp:       "App",
		Kind(99):      "Unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
