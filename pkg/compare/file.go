package compare

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/storage"
)

// DefaultDateTolerance absorbs filesystem timestamp granularity
// differences (FAT stores mtimes with 2-second resolution).
const DefaultDateTolerance = 2 * time.Second

// DefaultChunkSize is the read size for lock-step content comparison.
const DefaultChunkSize = 4 * 1024

// Policy selects which equivalence checks the FileComparator runs.
// Disabled checks are skipped entirely, never treated as a match.
type Policy struct {
	// BySize compares file sizes
	BySize bool

	// ByDate compares modification times within DateTolerance
	ByDate bool

	// ByContent streams both files and compares bytes in lock-step
	ByContent bool

	// DateTolerance is the maximum modification time difference still
	// considered equal. Zero means DefaultDateTolerance.
	DateTolerance time.Duration

	// ChunkSize is the content comparison read size. Zero means
	// DefaultChunkSize.
	ChunkSize int
}

// DefaultPolicy compares by size and date only, the cheap checks.
func DefaultPolicy() Policy {
	return Policy{BySize: true, ByDate: true, DateTolerance: DefaultDateTolerance}
}

// Outcome is the per-file comparison verdict
type Outcome struct {
	// Status is Identical, Different or Error
	Status models.ComparisonStatus

	// Reason explains the verdict, or carries the error message when
	// Status is StatusError
	Reason string
}

// FileComparator decides per-file equivalence under a Policy
type FileComparator struct {
	policy     Policy
	bufferPool *sync.Pool
}

// NewFileComparator creates a comparator for the given policy.
func NewFileComparator(policy Policy) *FileComparator {
	if policy.DateTolerance <= 0 {
		policy.DateTolerance = DefaultDateTolerance
	}
	if policy.ChunkSize < 1024 {
		policy.ChunkSize = DefaultChunkSize
	}
	chunkSize := policy.ChunkSize
	return &FileComparator{
		policy: policy,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, chunkSize)
				return &buf
			},
		},
	}
}

// Policy returns the comparator's policy.
func (c *FileComparator) Policy() Policy {
	return c.policy
}

// Compare evaluates the enabled checks in order: size, date, content.
// I/O failures are converted into an Error outcome so a directory walk
// can surface them per entry instead of aborting. The returned error is
// non-nil only for context cancellation.
func (c *FileComparator) Compare(ctx context.Context, left, right storage.Backend, leftPath, rightPath string) (*Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	leftMeta, err := left.Stat(ctx, leftPath)
	if err != nil {
		return &Outcome{Status: models.StatusError, Reason: fmt.Sprintf("failed to stat left file: %v", err)}, nil
	}

	rightMeta, err := right.Stat(ctx, rightPath)
	if err != nil {
		return &Outcome{Status: models.StatusError, Reason: fmt.Sprintf("failed to stat right file: %v", err)}, nil
	}

	return c.CompareMeta(ctx, left, right, leftMeta, rightMeta)
}

// CompareMeta runs the policy checks against already-scanned metadata,
// avoiding redundant stat calls during a directory walk.
func (c *FileComparator) CompareMeta(ctx context.Context, left, right storage.Backend, leftMeta, rightMeta *models.FileMeta) (*Outcome, error) {
	if c.policy.BySize && leftMeta.Size != rightMeta.Size {
		return &Outcome{
			Status: models.StatusDifferent,
			Reason: fmt.Sprintf("sizes differ (left: %d, right: %d)", leftMeta.Size, rightMeta.Size),
		}, nil
	}

	if c.policy.ByDate {
		delta := leftMeta.ModTime.Sub(rightMeta.ModTime)
		if delta < 0 {
			delta = -delta
		}
		if delta > c.policy.DateTolerance {
			return &Outcome{
				Status: models.StatusDifferent,
				Reason: fmt.Sprintf("modification times differ (left: %s, right: %s)",
					leftMeta.ModTime.Format(time.RFC3339), rightMeta.ModTime.Format(time.RFC3339)),
			}, nil
		}
	}

	if c.policy.ByContent {
		return c.compareContent(ctx, left, right, leftMeta, rightMeta)
	}

	return &Outcome{Status: models.StatusIdentical, Reason: "enabled checks match"}, nil
}

// compareContent streams both files with matched chunk sizes in
// lock-step. Sequential on purpose: an early mismatch short-circuits
// the rest of both reads.
func (c *FileComparator) compareContent(ctx context.Context, left, right storage.Backend, leftMeta, rightMeta *models.FileMeta) (*Outcome, error) {
	leftReader, err := left.Read(ctx, leftMeta.RelativePath)
	if err != nil {
		return &Outcome{Status: models.StatusError, Reason: fmt.Sprintf("failed to open left file: %v", err)}, nil
	}
	defer leftReader.Close()

	rightReader, err := right.Read(ctx, rightMeta.RelativePath)
	if err != nil {
		return &Outcome{Status: models.StatusError, Reason: fmt.Sprintf("failed to open right file: %v", err)}, nil
	}
	defer rightReader.Close()

	leftBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(leftBufPtr)
	leftBuf := *leftBufPtr

	rightBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(rightBufPtr)
	rightBuf := *rightBufPtr

	var offset int64

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		leftN, leftErr := io.ReadFull(leftReader, leftBuf)
		rightN, rightErr := io.ReadFull(rightReader, rightBuf)

		if leftErr == io.ErrUnexpectedEOF {
			leftErr = nil
		}
		if rightErr == io.ErrUnexpectedEOF {
			rightErr = nil
		}

		if leftErr != nil && leftErr != io.EOF {
			return &Outcome{Status: models.StatusError, Reason: fmt.Sprintf("failed to read left file: %v", leftErr)}, nil
		}
		if rightErr != nil && rightErr != io.EOF {
			return &Outcome{Status: models.StatusError, Reason: fmt.Sprintf("failed to read right file: %v", rightErr)}, nil
		}

		if leftN != rightN {
			return &Outcome{
				Status: models.StatusDifferent,
				Reason: fmt.Sprintf("content lengths diverge at offset %d", offset),
			}, nil
		}

		if leftN > 0 && !bytes.Equal(leftBuf[:leftN], rightBuf[:rightN]) {
			return &Outcome{
				Status: models.StatusDifferent,
				Reason: fmt.Sprintf("content differs within %d bytes of offset %d", leftN, offset),
			}, nil
		}

		offset += int64(leftN)

		if leftErr == io.EOF && rightErr == io.EOF {
			break
		}
		if leftErr == io.EOF || rightErr == io.EOF {
			return &Outcome{
				Status: models.StatusDifferent,
				Reason: fmt.Sprintf("one side ended at offset %d", offset),
			}, nil
		}
	}

	return &Outcome{
		Status: models.StatusIdentical,
		Reason: fmt.Sprintf("content matches (%d bytes)", offset),
	}, nil
}
