package syncer

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/storage"
)

// ScanOptions control how a tree is collected before planning.
type ScanOptions struct {
	// Recurse walks the whole tree instead of the top level only
	Recurse bool

	// Include keeps only files matching at least one pattern.
	// Empty means every file.
	Include []string

	// Exclude drops any entry matching one of the patterns
	Exclude []string
}

// scanTree collects one backend's entries keyed by relative path.
func scanTree(ctx context.Context, backend storage.Backend, options ScanOptions) (map[string]*models.FileMeta, error) {
	var entries []*models.FileMeta
	var err error

	if options.Recurse {
		entries, err = backend.Walk(ctx, "")
	} else {
		entries, err = backend.List(ctx, "")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", backend.Root(), err)
	}

	tree := make(map[string]*models.FileMeta, len(entries))
	for _, entry := range entries {
		if !matchesPatterns(entry, options.Include, options.Exclude) {
			continue
		}
		tree[entry.RelativePath] = entry
	}
	return tree, nil
}

// matchesPatterns applies exclude patterns first, then include
// patterns. Directories are never dropped by include patterns so the
// files beneath them stay reachable.
func matchesPatterns(entry *models.FileMeta, include, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, err := doublestar.Match(pattern, entry.RelativePath); err == nil && ok {
			return false
		}
	}

	if len(include) == 0 || entry.IsDir {
		return true
	}
	for _, pattern := range include {
		if ok, err := doublestar.Match(pattern, entry.RelativePath); err == nil && ok {
			return true
		}
	}
	return false
}
