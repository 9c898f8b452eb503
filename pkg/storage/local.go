package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/twinpane/twinpane/pkg/models"
)

// Local is a filesystem-based storage backend rooted at one directory
type Local struct {
	rootPath string
}

// NewLocal creates a new local filesystem backend. The root must exist
// and be a directory; this is validated up front so engines never start
// against a missing path.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// Root returns the absolute root path.
func (l *Local) Root() string {
	return l.rootPath
}

// meta converts an os.FileInfo into a FileMeta snapshot.
func (l *Local) meta(fullPath string, info os.FileInfo) *models.FileMeta {
	relPath, err := filepath.Rel(l.rootPath, fullPath)
	if err != nil || relPath == "." {
		relPath = ""
	}

	return &models.FileMeta{
		RelativePath: filepath.ToSlash(relPath),
		AbsolutePath: fullPath,
		Size:         info.Size(),
		ModTime:      info.ModTime().UTC(),
		IsDir:        info.IsDir(),
	}
}

// List returns the immediate entries of one directory. Entries whose
// metadata cannot be read are skipped silently.
func (l *Local) List(ctx context.Context, dir string) ([]*models.FileMeta, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullDir := filepath.Join(l.rootPath, filepath.FromSlash(dir))

	dirEntries, err := os.ReadDir(fullDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	entries := make([]*models.FileMeta, 0, len(dirEntries))
	for _, d := range dirEntries {
		info, err := d.Info()
		if err != nil {
			continue
		}
		entries = append(entries, l.meta(filepath.Join(fullDir, d.Name()), info))
	}

	return entries, nil
}

// Walk returns every file and directory under dir recursively. The root
// directory itself is not included. Unreadable subtrees are skipped.
func (l *Local) Walk(ctx context.Context, dir string) ([]*models.FileMeta, error) {
	fullDir := filepath.Join(l.rootPath, filepath.FromSlash(dir))
	var entries []*models.FileMeta

	err := filepath.WalkDir(fullDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Inaccessible entry: skip the subtree, keep walking
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p == fullDir {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		entries = append(entries, l.meta(p, info))
		return nil
	})

	if err != nil {
		return entries, err
	}

	return entries, nil
}

// Read opens a file for reading.
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(path))

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Write creates or overwrites a file, creating parent directories as
// needed. The modification time from meta is preserved when provided.
func (l *Local) Write(ctx context.Context, path string, reader io.Reader, size int64, meta *models.FileMeta) error {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if written != size {
		return fmt.Errorf("incomplete write: expected %d bytes, wrote %d", size, written)
	}

	if meta != nil && !meta.ModTime.IsZero() {
		if err := os.Chtimes(fullPath, meta.ModTime, meta.ModTime); err != nil {
			return fmt.Errorf("failed to set modification time: %w", err)
		}
	}

	return nil
}

// Delete removes a file, or a directory and its contents.
func (l *Local) Delete(ctx context.Context, path string) error {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(path))

	if err := os.RemoveAll(fullPath); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	return nil
}

// Exists checks if a file or directory exists.
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(path))

	_, err := os.Stat(fullPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns file metadata.
func (l *Local) Stat(ctx context.Context, path string) (*models.FileMeta, error) {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(path))

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return l.meta(fullPath, info), nil
}

// MkdirAll creates a directory and all necessary parents.
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	fullPath := filepath.Join(l.rootPath, filepath.FromSlash(path))

	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

// Close releases resources (no-op for local filesystem).
func (l *Local) Close() error {
	return nil
}
