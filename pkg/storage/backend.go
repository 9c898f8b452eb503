package storage

import (
	"context"
	"io"

	"github.com/twinpane/twinpane/pkg/models"
)

// Backend defines the interface for tree access during comparison and
// synchronization. The only shipped implementation is the local
// filesystem; network shares would implement the same interface.
type Backend interface {
	// Root returns the absolute root path of the backend
	Root() string

	// List returns the immediate entries of one directory, relative to
	// the root. Entries that cannot be inspected are skipped silently.
	List(ctx context.Context, dir string) ([]*models.FileMeta, error)

	// Walk returns every file and directory under dir recursively.
	// Unreadable subtrees are skipped silently rather than aborting
	// the walk.
	Walk(ctx context.Context, dir string) ([]*models.FileMeta, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Write creates or overwrites a file with the given content.
	// If meta is provided, the modification time is preserved.
	Write(ctx context.Context, path string, reader io.Reader, size int64, meta *models.FileMeta) error

	// Delete removes a file, or a directory and its contents
	Delete(ctx context.Context, path string) error

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*models.FileMeta, error)

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Close releases any resources held by the backend
	Close() error
}
