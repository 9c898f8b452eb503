package compare

import (
	"context"
	"testing"
	"time"

	"github.com/twinpane/twinpane/pkg/models"
)

// drain collects every entry from a comparison stream.
func drain(ch <-chan *models.ComparisonEntry) map[string]*models.ComparisonEntry {
	entries := make(map[string]*models.ComparisonEntry)
	for e := range ch {
		entries[e.RelativePath] = e
	}
	return entries
}

func TestDirectoryComparatorScenario(t *testing.T) {
	// left: a.txt (10 bytes, t=100), b.txt (5 bytes, t=50)
	// right: b.txt (5 bytes, t=200), c.txt (3 bytes)
	h := NewTestHelper(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	h.CreateLeft("a.txt", []byte("aaaaaaaaaa"))
	h.SetModTime(true, "a.txt", base.Add(100*time.Second))
	h.CreateLeft("b.txt", []byte("bbbbb"))
	h.SetModTime(true, "b.txt", base.Add(50*time.Second))
	h.CreateRight("b.txt", []byte("bbbbb"))
	h.SetModTime(false, "b.txt", base.Add(200*time.Second))
	h.CreateRight("c.txt", []byte("ccc"))

	files := NewFileComparator(Policy{BySize: true, ByDate: true})
	d := NewDirectoryComparator(h.left, h.right, files, Options{Recurse: true, CaseSensitive: true, ShowIdentical: true})

	entries := drain(d.Run(context.Background()))

	if e := entries["a.txt"]; e == nil || e.Status != models.StatusLeftOnly {
		t.Errorf("a.txt = %+v, want left_only", e)
	}
	if e := entries["c.txt"]; e == nil || e.Status != models.StatusRightOnly {
		t.Errorf("c.txt = %+v, want right_only", e)
	}
	if e := entries["b.txt"]; e == nil || e.Status != models.StatusDifferent {
		t.Errorf("b.txt = %+v, want different (dates beyond tolerance)", e)
	}

	counts, status := d.Summary()
	if status != models.RunCompleted {
		t.Errorf("status = %s, want completed", status)
	}
	if counts.LeftOnly != 1 || counts.RightOnly != 1 || counts.Different != 1 || counts.Identical != 0 {
		t.Errorf("counts = %+v, want 1/1/1/0", counts)
	}
}

func TestDirectoryComparatorSelfCompare(t *testing.T) {
	// A directory compared to itself yields only Identical entries
	h := NewTestHelper(t)
	h.CreateLeft("one.txt", []byte("first"))
	h.CreateLeft("sub/two.txt", []byte("second"))

	files := NewFileComparator(Policy{BySize: true, ByContent: true})
	d := NewDirectoryComparator(h.left, h.left, files, Options{Recurse: true, CaseSensitive: true, ShowIdentical: true})

	entries := drain(d.Run(context.Background()))

	counts, status := d.Summary()
	if status != models.RunCompleted {
		t.Errorf("status = %s, want completed", status)
	}
	if counts.LeftOnly != 0 || counts.RightOnly != 0 || counts.Different != 0 || counts.Errors != 0 {
		t.Errorf("counts = %+v, want only identical entries", counts)
	}
	// one.txt, sub, sub/two.txt
	if counts.Identical != 3 {
		t.Errorf("Identical = %d, want 3", counts.Identical)
	}
	for path, e := range entries {
		if e.Status != models.StatusIdentical {
			t.Errorf("%s = %s, want identical", path, e.Status)
		}
	}
}

func TestDirectoryComparatorSuppressIdentical(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateLeft("same.txt", []byte("same"))
	h.CreateRight("same.txt", []byte("same"))
	h.CreateLeft("extra.txt", []byte("extra"))

	files := NewFileComparator(Policy{BySize: true, ByContent: true})
	d := NewDirectoryComparator(h.left, h.right, files, Options{Recurse: true, CaseSensitive: true, ShowIdentical: false})

	entries := drain(d.Run(context.Background()))

	if _, ok := entries["same.txt"]; ok {
		t.Error("identical entry should be suppressed from the stream")
	}
	if _, ok := entries["extra.txt"]; !ok {
		t.Error("left-only entry should still be emitted")
	}

	// Suppressed entries are still counted
	counts, _ := d.Summary()
	if counts.Identical != 1 {
		t.Errorf("Identical = %d, want 1 (counted even when suppressed)", counts.Identical)
	}
}

func TestDirectoryComparatorOneSidedSubtree(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateLeft("only/deep/file1.txt", []byte("one"))
	h.CreateLeft("only/file2.txt", []byte("two"))

	files := NewFileComparator(DefaultPolicy())
	d := NewDirectoryComparator(h.left, h.right, files, Options{Recurse: true, CaseSensitive: true, ShowIdentical: true})

	entries := drain(d.Run(context.Background()))

	// The directory and every descendant appear as LeftOnly
	for _, path := range []string{"only", "only/deep", "only/deep/file1.txt", "only/file2.txt"} {
		e := entries[path]
		if e == nil {
			t.Errorf("missing entry for %s", path)
			continue
		}
		if e.Status != models.StatusLeftOnly {
			t.Errorf("%s = %s, want left_only", path, e.Status)
		}
		if e.Left == nil || e.Right != nil {
			t.Errorf("%s should carry left metadata only", path)
		}
	}
}

func TestDirectoryComparatorNoRecurse(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateLeft("top.txt", []byte("top"))
	h.CreateRight("top.txt", []byte("top"))
	h.CreateLeft("sub/nested.txt", []byte("nested"))

	files := NewFileComparator(Policy{BySize: true, ByContent: true})
	d := NewDirectoryComparator(h.left, h.right, files, Options{Recurse: false, CaseSensitive: true, ShowIdentical: true})

	entries := drain(d.Run(context.Background()))

	if _, ok := entries["top.txt"]; !ok {
		t.Error("top-level file should be compared")
	}
	if _, ok := entries["sub"]; ok {
		t.Error("directories should not be visited without recursion")
	}
	if _, ok := entries["sub/nested.txt"]; ok {
		t.Error("nested file should not be visited without recursion")
	}
}

func TestDirectoryComparatorCaseInsensitive(t *testing.T) {
	h := NewTestHelper(t)
	h.CreateLeft("README.txt", []byte("docs"))
	h.CreateRight("readme.txt", []byte("docs"))

	files := NewFileComparator(Policy{BySize: true, ByContent: true})

	t.Run("Insensitive", func(t *testing.T) {
		d := NewDirectoryComparator(h.left, h.right, files, Options{CaseSensitive: false, ShowIdentical: true})
		entries := drain(d.Run(context.Background()))

		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1 (names joined case-insensitively)", len(entries))
		}
		for _, e := range entries {
			if e.Status != models.StatusIdentical {
				t.Errorf("Status = %s, want identical", e.Status)
			}
		}
	})

	t.Run("Sensitive", func(t *testing.T) {
		d := NewDirectoryComparator(h.left, h.right, files, Options{CaseSensitive: true, ShowIdentical: true})
		entries := drain(d.Run(context.Background()))

		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2 (names differ by case)", len(entries))
		}
		if e := entries["README.txt"]; e == nil || e.Status != models.StatusLeftOnly {
			t.Errorf("README.txt = %+v, want left_only", e)
		}
		if e := entries["readme.txt"]; e == nil || e.Status != models.StatusRightOnly {
			t.Errorf("readme.txt = %+v, want right_only", e)
		}
	})
}

func TestDirectoryComparatorCancellation(t *testing.T) {
	h := NewTestHelper(t)
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt"} {
		h.CreateLeft(name, []byte("content"))
	}

	files := NewFileComparator(DefaultPolicy())
	d := NewDirectoryComparator(h.left, h.right, files, Options{Recurse: true, CaseSensitive: true, ShowIdentical: true})

	ctx, cancel := context.WithCancel(context.Background())

	ch := d.Run(ctx)
	// Take one entry, then cancel mid-stream
	first, ok := <-ch
	if !ok {
		t.Fatal("expected at least one entry before cancelling")
	}
	cancel()
	rest := drain(ch)

	_, status := d.Summary()
	if status != models.RunCancelled {
		t.Errorf("status = %s, want cancelled", status)
	}

	// Partial results stay: the first entry was delivered and counted
	if first == nil {
		t.Error("first entry should be preserved")
	}
	counts, _ := d.Summary()
	if counts.Total() < 1+len(rest) {
		t.Errorf("counts.Total() = %d, want at least %d", counts.Total(), 1+len(rest))
	}
}
