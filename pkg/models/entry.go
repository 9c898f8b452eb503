package models

import (
	"time"
)

// FileMeta is an immutable snapshot of one file or directory, taken at
// scan time. Refreshing means re-scanning, never mutating.
type FileMeta struct {
	// RelativePath is the path relative to the comparison/sync root,
	// always with forward slashes
	RelativePath string

	// AbsolutePath is the full path on the filesystem
	AbsolutePath string

	// Size in bytes (0 for directories)
	Size int64

	// ModTime is the last modification time in UTC
	ModTime time.Time

	// IsDir indicates if this is a directory
	IsDir bool
}

// ComparisonStatus classifies one row of a directory comparison
type ComparisonStatus string

const (
	// StatusLeftOnly indicates the entry exists only under the left root
	StatusLeftOnly ComparisonStatus = "left_only"
	// StatusRightOnly indicates the entry exists only under the right root
	StatusRightOnly ComparisonStatus = "right_only"
	// StatusIdentical indicates both sides are equivalent under the policy
	StatusIdentical ComparisonStatus = "identical"
	// StatusDifferent indicates the sides differ under the policy
	StatusDifferent ComparisonStatus = "different"
	// StatusError indicates the per-file comparison failed
	StatusError ComparisonStatus = "error"
)

// ComparisonEntry is one row of a directory comparison. Entries are
// created once per run and replaced wholesale on re-run.
type ComparisonEntry struct {
	// RelativePath joins the two trees
	RelativePath string

	// Left is the metadata on the left side, nil if absent
	Left *FileMeta

	// Right is the metadata on the right side, nil if absent
	Right *FileMeta

	// Status classifies the entry
	Status ComparisonStatus

	// Message carries the error text when Status is StatusError,
	// otherwise the comparison reason
	Message string

	// Selected is UI-driven and scopes bulk operations
	Selected bool
}

// CompareCounts holds the running totals of a comparison, updated as
// entries are emitted rather than recomputed from the final list.
type CompareCounts struct {
	LeftOnly  int
	RightOnly int
	Different int
	Identical int
	Errors    int
}

// Total returns the number of entries counted so far.
func (c CompareCounts) Total() int {
	return c.LeftOnly + c.RightOnly + c.Different + c.Identical + c.Errors
}
