package compare

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/storage"
)

// Options controls a directory comparison run
type Options struct {
	// Recurse descends into subdirectories
	Recurse bool

	// CaseSensitive matches names exactly; when false, names are
	// joined on their lower-cased form
	CaseSensitive bool

	// ShowIdentical emits Identical entries; when false they are
	// counted but suppressed from the stream
	ShowIdentical bool
}

// DirectoryComparator recursively compares two directory trees,
// classifying every entry as LeftOnly, RightOnly, Identical, Different
// or Error. Entries are produced as a lazy stream so a long scan stays
// responsive and cancellable mid-walk.
type DirectoryComparator struct {
	left    storage.Backend
	right   storage.Backend
	files   *FileComparator
	options Options

	mu     sync.Mutex
	counts models.CompareCounts
	status models.RunStatus
}

// NewDirectoryComparator creates a comparator over two rooted backends.
func NewDirectoryComparator(left, right storage.Backend, files *FileComparator, options Options) *DirectoryComparator {
	return &DirectoryComparator{
		left:    left,
		right:   right,
		files:   files,
		options: options,
		status:  models.RunCompleted,
	}
}

// Run starts the comparison and returns a channel of entries. The
// channel is closed when the walk finishes or the context is cancelled;
// everything emitted before cancellation is preserved. Counts and the
// terminal status are available from Summary after the channel closes.
func (d *DirectoryComparator) Run(ctx context.Context) <-chan *models.ComparisonEntry {
	out := make(chan *models.ComparisonEntry)

	go func() {
		defer close(out)
		if err := d.compareLevel(ctx, "", out); err != nil {
			d.mu.Lock()
			if ctx.Err() != nil {
				d.status = models.RunCancelled
			} else {
				d.status = models.RunFailed
			}
			d.mu.Unlock()
		}
	}()

	return out
}

// Summary returns the running counts and the terminal status. Counts
// are running totals updated as entries are emitted, so calling this
// mid-run yields the progress so far.
func (d *DirectoryComparator) Summary() (models.CompareCounts, models.RunStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts, d.status
}

// key returns the join key for a name under the case policy.
func (d *DirectoryComparator) key(name string) string {
	if d.options.CaseSensitive {
		return name
	}
	return strings.ToLower(name)
}

// emit sends one entry downstream and bumps the running counters.
// Identical entries are counted even when suppressed.
func (d *DirectoryComparator) emit(ctx context.Context, out chan<- *models.ComparisonEntry, entry *models.ComparisonEntry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	d.mu.Lock()
	switch entry.Status {
	case models.StatusLeftOnly:
		d.counts.LeftOnly++
	case models.StatusRightOnly:
		d.counts.RightOnly++
	case models.StatusIdentical:
		d.counts.Identical++
	case models.StatusDifferent:
		d.counts.Different++
	case models.StatusError:
		d.counts.Errors++
	}
	d.mu.Unlock()

	if entry.Status == models.StatusIdentical && !d.options.ShowIdentical {
		return nil
	}

	select {
	case out <- entry:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// level holds one directory's entries partitioned by kind and keyed by
// the case policy.
type level struct {
	files map[string]*models.FileMeta
	dirs  map[string]*models.FileMeta
	order []string
}

// listLevel lists one directory of a backend. A listing failure is a
// silent skip: the level simply comes back empty.
func (d *DirectoryComparator) listLevel(ctx context.Context, backend storage.Backend, dir string) *level {
	lv := &level{
		files: make(map[string]*models.FileMeta),
		dirs:  make(map[string]*models.FileMeta),
	}

	entries, err := backend.List(ctx, dir)
	if err != nil {
		return lv
	}

	for _, meta := range entries {
		name := meta.RelativePath
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		k := d.key(name)
		if meta.IsDir {
			lv.dirs[k] = meta
		} else {
			lv.files[k] = meta
		}
		lv.order = append(lv.order, k)
	}

	return lv
}

// compareLevel runs the per-directory algorithm: partition the name
// sets, emit one-sided entries, compare names present on both sides,
// then recurse into subdirectories.
func (d *DirectoryComparator) compareLevel(ctx context.Context, dir string, out chan<- *models.ComparisonEntry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	leftLevel := d.listLevel(ctx, d.left, dir)
	rightLevel := d.listLevel(ctx, d.right, dir)

	// Files first, then directories, each in sorted key order
	for _, k := range sortedKeys(leftLevel.files, rightLevel.files) {
		leftMeta := leftLevel.files[k]
		rightMeta := rightLevel.files[k]

		switch {
		case rightMeta == nil:
			if err := d.emit(ctx, out, &models.ComparisonEntry{
				RelativePath: leftMeta.RelativePath,
				Left:         leftMeta,
				Status:       models.StatusLeftOnly,
			}); err != nil {
				return err
			}

		case leftMeta == nil:
			if err := d.emit(ctx, out, &models.ComparisonEntry{
				RelativePath: rightMeta.RelativePath,
				Right:        rightMeta,
				Status:       models.StatusRightOnly,
			}); err != nil {
				return err
			}

		default:
			outcome, err := d.files.CompareMeta(ctx, d.left, d.right, leftMeta, rightMeta)
			if err != nil {
				return err
			}
			if err := d.emit(ctx, out, &models.ComparisonEntry{
				RelativePath: leftMeta.RelativePath,
				Left:         leftMeta,
				Right:        rightMeta,
				Status:       outcome.Status,
				Message:      outcome.Reason,
			}); err != nil {
				return err
			}
		}
	}

	if !d.options.Recurse {
		return nil
	}

	for _, k := range sortedKeys(leftLevel.dirs, rightLevel.dirs) {
		leftMeta := leftLevel.dirs[k]
		rightMeta := rightLevel.dirs[k]

		switch {
		case rightMeta == nil:
			if err := d.emitOneSided(ctx, out, d.left, leftMeta, models.StatusLeftOnly); err != nil {
				return err
			}

		case leftMeta == nil:
			if err := d.emitOneSided(ctx, out, d.right, rightMeta, models.StatusRightOnly); err != nil {
				return err
			}

		default:
			if err := d.emit(ctx, out, &models.ComparisonEntry{
				RelativePath: leftMeta.RelativePath,
				Left:         leftMeta,
				Right:        rightMeta,
				Status:       models.StatusIdentical,
				Message:      "directory present on both sides",
			}); err != nil {
				return err
			}
			if err := d.compareLevel(ctx, leftMeta.RelativePath, out); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitOneSided emits a directory that exists on only one side together
// with its whole subtree. No cross-comparison is needed since the other
// side has nothing.
func (d *DirectoryComparator) emitOneSided(ctx context.Context, out chan<- *models.ComparisonEntry, backend storage.Backend, meta *models.FileMeta, status models.ComparisonStatus) error {
	entry := &models.ComparisonEntry{RelativePath: meta.RelativePath, Status: status}
	if status == models.StatusLeftOnly {
		entry.Left = meta
	} else {
		entry.Right = meta
	}
	if err := d.emit(ctx, out, entry); err != nil {
		return err
	}

	descendants, err := backend.Walk(ctx, meta.RelativePath)
	if err != nil {
		return err
	}

	for _, desc := range descendants {
		child := &models.ComparisonEntry{RelativePath: desc.RelativePath, Status: status}
		if status == models.StatusLeftOnly {
			child.Left = desc
		} else {
			child.Right = desc
		}
		if err := d.emit(ctx, out, child); err != nil {
			return err
		}
	}

	return nil
}

// sortedKeys returns the union of both maps' keys in sorted order.
func sortedKeys(left, right map[string]*models.FileMeta) []string {
	seen := make(map[string]bool, len(left)+len(right))
	keys := make([]string, 0, len(left)+len(right))
	for k := range left {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range right {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
