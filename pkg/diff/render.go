package diff

import (
	"github.com/twinpane/twinpane/pkg/models"
)

// SideBySide holds the two rendered panes of a text diff. Both slices
// always have equal length; placeholder rows keep them vertically
// aligned.
type SideBySide struct {
	Left  []models.DiffLine
	Right []models.DiffLine
}

// Render expands a segment list into parallel panes. Deleted lines get
// a blank placeholder on the right, Added lines one on the left, and a
// Modified block pads the shorter side to the longer side's length.
func Render(left, right []string, segments []models.DiffSegment) *SideBySide {
	view := &SideBySide{}
	i, j := 0, 0

	pushLeft := func(kind models.DiffKind) {
		view.Left = append(view.Left, models.DiffLine{Number: i + 1, Text: left[i], Kind: kind})
		i++
	}
	pushRight := func(kind models.DiffKind) {
		view.Right = append(view.Right, models.DiffLine{Number: j + 1, Text: right[j], Kind: kind})
		j++
	}
	padLeft := func(kind models.DiffKind) {
		view.Left = append(view.Left, models.DiffLine{Kind: kind, Placeholder: true})
	}
	padRight := func(kind models.DiffKind) {
		view.Right = append(view.Right, models.DiffLine{Kind: kind, Placeholder: true})
	}

	for _, seg := range segments {
		switch seg.Kind {
		case models.DiffEqual:
			for n := 0; n < seg.LeftCount; n++ {
				pushLeft(models.DiffEqual)
				pushRight(models.DiffEqual)
			}

		case models.DiffDeleted:
			for n := 0; n < seg.LeftCount; n++ {
				pushLeft(models.DiffDeleted)
				padRight(models.DiffDeleted)
			}

		case models.DiffAdded:
			for n := 0; n < seg.RightCount; n++ {
				padLeft(models.DiffAdded)
				pushRight(models.DiffAdded)
			}

		case models.DiffModified:
			rows := seg.LeftCount
			if seg.RightCount > rows {
				rows = seg.RightCount
			}
			for n := 0; n < rows; n++ {
				if n < seg.LeftCount {
					pushLeft(models.DiffModified)
				} else {
					padLeft(models.DiffModified)
				}
				if n < seg.RightCount {
					pushRight(models.DiffModified)
				} else {
					padRight(models.DiffModified)
				}
			}
		}
	}

	return view
}
