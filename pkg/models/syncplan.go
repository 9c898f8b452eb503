package models

import (
	"time"
)

// SyncDirection defines which side is authoritative
type SyncDirection string

const (
	// DirectionLeftToRight makes the left tree authoritative
	DirectionLeftToRight SyncDirection = "left-to-right"
	// DirectionRightToLeft makes the right tree authoritative
	DirectionRightToLeft SyncDirection = "right-to-left"
	// DirectionBidirectional propagates the newer side either way
	DirectionBidirectional SyncDirection = "bidirectional"
)

// SyncAction is the planned operation for one relative path
type SyncAction string

const (
	// ActionNone means the entry needs no work
	ActionNone SyncAction = "none"
	// ActionCopyLeft copies the right side to the left
	ActionCopyLeft SyncAction = "copy-left"
	// ActionCopyRight copies the left side to the right
	ActionCopyRight SyncAction = "copy-right"
	// ActionUpdateLeft overwrites the left side with the right
	ActionUpdateLeft SyncAction = "update-left"
	// ActionUpdateRight overwrites the right side with the left
	ActionUpdateRight SyncAction = "update-right"
	// ActionDeleteLeft removes the left side
	ActionDeleteLeft SyncAction = "delete-left"
	// ActionDeleteRight removes the right side
	ActionDeleteRight SyncAction = "delete-right"
)

// ItemStatus tracks the execution state of one SyncItem
type ItemStatus string

const (
	// ItemPending means the item has not been executed yet
	ItemPending ItemStatus = "pending"
	// ItemDone means the action completed successfully
	ItemDone ItemStatus = "done"
	// ItemError means the action failed; Error carries the message
	ItemError ItemStatus = "error"
	// ItemSkipped means the item was deselected or had no action
	ItemSkipped ItemStatus = "skipped"
)

// SyncItem is one planned entry of a synchronization. Its Action is
// fully determined by the planner before any execution begins.
type SyncItem struct {
	// RelativePath joins the two trees
	RelativePath string

	// Left is the metadata on the left side, nil if absent
	Left *FileMeta

	// Right is the metadata on the right side, nil if absent
	Right *FileMeta

	// IsDir indicates a directory entry (reduced action table)
	IsDir bool

	// Action is the planned operation
	Action SyncAction

	// Selected scopes execution to a user-chosen subset
	Selected bool

	// Status is the execution state
	Status ItemStatus

	// Error is the failure message when Status is ItemError
	Error string
}

// TransferSize returns the number of bytes the planned action will move.
func (i *SyncItem) TransferSize() int64 {
	if i.IsDir {
		return 0
	}
	switch i.Action {
	case ActionCopyRight, ActionUpdateRight:
		if i.Left != nil {
			return i.Left.Size
		}
	case ActionCopyLeft, ActionUpdateLeft:
		if i.Right != nil {
			return i.Right.Size
		}
	}
	return 0
}

// SyncCounts aggregates a plan for display
type SyncCounts struct {
	ToCopy   int
	ToUpdate int
	ToDelete int

	// TotalBytes is the sum of TransferSize over all planned items
	TotalBytes int64
}

// SyncPlan is the ordered outcome of one planning pass
type SyncPlan struct {
	// ID identifies the operation
	ID string

	// Direction the plan was computed for
	Direction SyncDirection

	// Items in relative-path order
	Items []*SyncItem

	// Counts are computed once at planning time
	Counts SyncCounts

	// CreatedAt is when the plan was computed
	CreatedAt time.Time
}

// RunStatus is the terminal state of a long-running engine pass
type RunStatus string

const (
	// RunCompleted means the pass visited everything
	RunCompleted RunStatus = "completed"
	// RunCancelled means the pass stopped on a cancellation signal;
	// entries emitted before the signal are preserved
	RunCancelled RunStatus = "cancelled"
	// RunPartial means the pass finished but some items failed
	RunPartial RunStatus = "partial"
	// RunFailed means the pass could not do any useful work
	RunFailed RunStatus = "failed"
)

// ExitCode maps a run status to a process exit code.
func (s RunStatus) ExitCode() int {
	switch s {
	case RunCompleted:
		return 0
	case RunPartial:
		return 1
	case RunFailed:
		return 2
	case RunCancelled:
		return 3
	default:
		return 2
	}
}
