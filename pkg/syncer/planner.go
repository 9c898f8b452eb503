package syncer

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twinpane/twinpane/pkg/models"
	"github.com/twinpane/twinpane/pkg/storage"
)

// PlannerOptions configure one planning pass.
type PlannerOptions struct {
	// Direction selects which side is authoritative
	Direction models.SyncDirection

	// DeleteExtraneous removes entries absent from the authoritative
	// side. Ignored for bidirectional runs, which never delete.
	DeleteExtraneous bool

	// CompareBySize also schedules an update when sizes differ even
	// though the authoritative side is not newer
	CompareBySize bool

	// CaseSensitive controls how relative paths are joined
	CaseSensitive bool

	// Scan controls recursion and filename patterns
	Scan ScanOptions
}

// Planner derives a SyncPlan from two trees without touching either.
// Every decision is made here; the executor only carries actions out.
type Planner struct {
	left    storage.Backend
	right   storage.Backend
	options PlannerOptions
}

// NewPlanner creates a planner over two backends.
func NewPlanner(left, right storage.Backend, options PlannerOptions) *Planner {
	return &Planner{left: left, right: right, options: options}
}

// key folds a relative path for joining unless comparison is
// case-sensitive.
func (p *Planner) key(relativePath string) string {
	if p.options.CaseSensitive {
		return relativePath
	}
	return strings.ToLower(relativePath)
}

// pairing holds both sides of one joined relative path
type pairing struct {
	left  *models.FileMeta
	right *models.FileMeta
}

// Plan scans both trees and produces the full ordered action list.
// Planning a tree against itself, or re-planning right after a
// successful run, yields a plan where every action is ActionNone.
func (p *Planner) Plan(ctx context.Context) (*models.SyncPlan, error) {
	leftTree, err := scanTree(ctx, p.left, p.options.Scan)
	if err != nil {
		return nil, err
	}
	rightTree, err := scanTree(ctx, p.right, p.options.Scan)
	if err != nil {
		return nil, err
	}

	pairs := make(map[string]*pairing, len(leftTree)+len(rightTree))
	for _, meta := range leftTree {
		pairs[p.key(meta.RelativePath)] = &pairing{left: meta}
	}
	for _, meta := range rightTree {
		if pair, ok := pairs[p.key(meta.RelativePath)]; ok {
			pair.right = meta
		} else {
			pairs[p.key(meta.RelativePath)] = &pairing{right: meta}
		}
	}

	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	plan := &models.SyncPlan{
		ID:        uuid.New().String(),
		Direction: p.options.Direction,
		CreatedAt: time.Now().UTC(),
	}

	for _, key := range keys {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		pair := pairs[key]
		item := &models.SyncItem{
			Left:     pair.left,
			Right:    pair.right,
			Selected: true,
			Status:   models.ItemPending,
		}
		if pair.left != nil {
			item.RelativePath = pair.left.RelativePath
			item.IsDir = pair.left.IsDir
		} else {
			item.RelativePath = pair.right.RelativePath
			item.IsDir = pair.right.IsDir
		}

		if item.IsDir {
			item.Action = p.planDirectory(pair)
		} else {
			item.Action = p.planFile(pair)
		}

		plan.Items = append(plan.Items, item)
		p.count(&plan.Counts, item)
	}

	return plan, nil
}

// planFile decides the action for one file pairing. Timestamps compare
// strictly, so equal times on both sides mean no work in every
// direction.
func (p *Planner) planFile(pair *pairing) models.SyncAction {
	switch p.options.Direction {
	case models.DirectionLeftToRight:
		switch {
		case pair.right == nil:
			return models.ActionCopyRight
		case pair.left == nil:
			if p.options.DeleteExtraneous {
				return models.ActionDeleteRight
			}
			return models.ActionNone
		case pair.left.ModTime.After(pair.right.ModTime):
			return models.ActionUpdateRight
		case p.options.CompareBySize && pair.left.Size != pair.right.Size:
			return models.ActionUpdateRight
		default:
			return models.ActionNone
		}

	case models.DirectionRightToLeft:
		switch {
		case pair.left == nil:
			return models.ActionCopyLeft
		case pair.right == nil:
			if p.options.DeleteExtraneous {
				return models.ActionDeleteLeft
			}
			return models.ActionNone
		case pair.right.ModTime.After(pair.left.ModTime):
			return models.ActionUpdateLeft
		case p.options.CompareBySize && pair.left.Size != pair.right.Size:
			return models.ActionUpdateLeft
		default:
			return models.ActionNone
		}

	case models.DirectionBidirectional:
		switch {
		case pair.right == nil:
			return models.ActionCopyRight
		case pair.left == nil:
			return models.ActionCopyLeft
		case pair.left.ModTime.After(pair.right.ModTime):
			return models.ActionUpdateRight
		case pair.right.ModTime.After(pair.left.ModTime):
			return models.ActionUpdateLeft
		default:
			return models.ActionNone
		}
	}

	return models.ActionNone
}

// planDirectory decides the action for one directory pairing.
// Directories carry no content, so the table reduces to create,
// delete, or nothing.
func (p *Planner) planDirectory(pair *pairing) models.SyncAction {
	switch p.options.Direction {
	case models.DirectionLeftToRight:
		switch {
		case pair.right == nil:
			return models.ActionCopyRight
		case pair.left == nil:
			if p.options.DeleteExtraneous {
				return models.ActionDeleteRight
			}
			return models.ActionNone
		default:
			return models.ActionNone
		}

	case models.DirectionRightToLeft:
		switch {
		case pair.left == nil:
			return models.ActionCopyLeft
		case pair.right == nil:
			if p.options.DeleteExtraneous {
				return models.ActionDeleteLeft
			}
			return models.ActionNone
		default:
			return models.ActionNone
		}

	case models.DirectionBidirectional:
		switch {
		case pair.right == nil:
			return models.ActionCopyRight
		case pair.left == nil:
			return models.ActionCopyLeft
		default:
			return models.ActionNone
		}
	}

	return models.ActionNone
}

// count folds one planned item into the plan totals.
func (p *Planner) count(counts *models.SyncCounts, item *models.SyncItem) {
	switch item.Action {
	case models.ActionCopyLeft, models.ActionCopyRight:
		counts.ToCopy++
	case models.ActionUpdateLeft, models.ActionUpdateRight:
		counts.ToUpdate++
	case models.ActionDeleteLeft, models.ActionDeleteRight:
		counts.ToDelete++
	}
	counts.TotalBytes += item.TransferSize()
}
