package digest

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/twinpane/twinpane/pkg/models"
)

// DefaultBlockSize is the streaming read size per algorithm.
const DefaultBlockSize = 80 * 1024

// ReaderWrapper optionally wraps each file stream, e.g. for rate
// limiting.
type ReaderWrapper func(io.ReadCloser) io.ReadCloser

// Engine computes one or more digests over file content. Every
// requested algorithm streams the file through its own independent
// read-only handle; the per-algorithm tasks are joined before the
// DigestResult is assembled, and no state is shared across files or
// algorithms.
type Engine struct {
	blockSize     int
	uppercase     bool
	readerWrapper ReaderWrapper
	progress      func(percent int, path string)
}

// Option configures an Engine
type Option func(*Engine)

// WithBlockSize overrides the streaming read size.
func WithBlockSize(size int) Option {
	return func(e *Engine) {
		if size >= 1024 {
			e.blockSize = size
		}
	}
}

// WithUppercase renders every hex digest in upper case.
func WithUppercase(uppercase bool) Option {
	return func(e *Engine) {
		e.uppercase = uppercase
	}
}

// WithReaderWrapper wraps each per-algorithm stream.
func WithReaderWrapper(wrapper ReaderWrapper) Option {
	return func(e *Engine) {
		e.readerWrapper = wrapper
	}
}

// WithProgress sets a callback invoked with (percentage, current path)
// as a batch advances.
func WithProgress(callback func(percent int, path string)) Option {
	return func(e *Engine) {
		e.progress = callback
	}
}

// NewEngine creates a digest engine.
func NewEngine(options ...Option) *Engine {
	e := &Engine{blockSize: DefaultBlockSize}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// newHasher returns a fresh hash state for one algorithm. CRC-32 uses
// the reflected 0xEDB88320 table seeded and finalized the standard way.
func newHasher(algo models.Algorithm) (hash.Hash, error) {
	switch algo {
	case models.AlgoMD5:
		return md5.New(), nil
	case models.AlgoSHA1:
		return sha1.New(), nil
	case models.AlgoSHA256:
		return sha256.New(), nil
	case models.AlgoSHA512:
		return sha512.New(), nil
	case models.AlgoCRC32:
		return crc32.New(crc32.MakeTable(crc32.IEEE)), nil
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", algo)
	}
}

// Compute streams one file once per requested algorithm and returns a
// DigestResult carrying one hex string per algorithm. An unreadable
// file yields a result with Err set and no sums.
func (e *Engine) Compute(ctx context.Context, path string, algos []models.Algorithm) *models.DigestResult {
	result := &models.DigestResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		result.Err = fmt.Errorf("failed to stat file: %w", err)
		return result
	}
	result.Size = info.Size()

	if len(algos) == 0 {
		result.Sums = map[models.Algorithm]string{}
		return result
	}

	sums := make(map[models.Algorithm]string, len(algos))
	var sumsMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, algo := range algos {
		algo := algo
		g.Go(func() error {
			sum, err := e.hashFile(gctx, path, algo)
			if err != nil {
				return err
			}
			sumsMu.Lock()
			sums[algo] = sum
			sumsMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		result.Err = err
		return result
	}

	result.Sums = sums
	return result
}

// hashFile streams the full file content through one algorithm over an
// independent handle.
func (e *Engine) hashFile(ctx context.Context, path string, algo models.Algorithm) (string, error) {
	hasher, err := newHasher(algo)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}

	var reader io.ReadCloser = file
	if e.readerWrapper != nil {
		reader = e.readerWrapper(reader)
	}
	defer reader.Close()

	buf := make([]byte, e.blockSize)
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	sum := fmt.Sprintf("%x", hasher.Sum(nil))
	if e.uppercase {
		sum = strings.ToUpper(sum)
	}
	return sum, nil
}

// ComputeBatch digests every path in order. A failed file gets its Err
// set and the batch moves on; only cancellation stops it early, and
// results computed before the signal are preserved.
func (e *Engine) ComputeBatch(ctx context.Context, paths []string, algos []models.Algorithm) ([]*models.DigestResult, models.RunStatus) {
	results := make([]*models.DigestResult, 0, len(paths))

	for n, path := range paths {
		select {
		case <-ctx.Done():
			return results, models.RunCancelled
		default:
		}

		result := e.Compute(ctx, path, algos)
		if result.Err != nil && ctx.Err() != nil {
			return results, models.RunCancelled
		}
		results = append(results, result)

		if e.progress != nil {
			e.progress((n+1)*100/len(paths), path)
		}
	}

	for _, r := range results {
		if r.Err != nil {
			return results, models.RunPartial
		}
	}
	return results, models.RunCompleted
}
