package models

import (
	"testing"
	"time"
)

func TestComparisonStatus(t *testing.T) {
	tests := []struct {
		status   ComparisonStatus
		expected string
	}{
		{StatusLeftOnly, "left_only"},
		{StatusRightOnly, "right_only"},
		{StatusIdentical, "identical"},
		{StatusDifferent, "different"},
		{StatusError, "error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if string(tt.status) != tt.expected {
				t.Errorf("ComparisonStatus = %s, want %s", string(tt.status), tt.expected)
			}
		})
	}
}

func TestCompareCountsTotal(t *testing.T) {
	counts := CompareCounts{
		LeftOnly:  2,
		RightOnly: 3,
		Different: 1,
		Identical: 5,
		Errors:    1,
	}

	if counts.Total() != 12 {
		t.Errorf("Total() = %d, want 12", counts.Total())
	}
}

func TestSyncAction(t *testing.T) {
	tests := []struct {
		action   SyncAction
		expected string
	}{
		{ActionNone, "none"},
		{ActionCopyLeft, "copy-left"},
		{ActionCopyRight, "copy-right"},
		{ActionUpdateLeft, "update-left"},
		{ActionUpdateRight, "update-right"},
		{ActionDeleteLeft, "delete-left"},
		{ActionDeleteRight, "delete-right"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if string(tt.action) != tt.expected {
				t.Errorf("SyncAction = %s, want %s", string(tt.action), tt.expected)
			}
		})
	}
}

func TestSyncItemTransferSize(t *testing.T) {
	left := &FileMeta{RelativePath: "a.txt", Size: 1024, ModTime: time.Now()}
	right := &FileMeta{RelativePath: "a.txt", Size: 2048, ModTime: time.Now()}

	t.Run("CopyRightUsesLeftSize", func(t *testing.T) {
		item := &SyncItem{RelativePath: "a.txt", Left: left, Action: ActionCopyRight}
		if item.TransferSize() != 1024 {
			t.Errorf("TransferSize() = %d, want 1024", item.TransferSize())
		}
	})

	t.Run("UpdateLeftUsesRightSize", func(t *testing.T) {
		item := &SyncItem{RelativePath: "a.txt", Left: left, Right: right, Action: ActionUpdateLeft}
		if item.TransferSize() != 2048 {
			t.Errorf("TransferSize() = %d, want 2048", item.TransferSize())
		}
	})

	t.Run("DeleteMovesNothing", func(t *testing.T) {
		item := &SyncItem{RelativePath: "a.txt", Left: left, Action: ActionDeleteLeft}
		if item.TransferSize() != 0 {
			t.Errorf("TransferSize() = %d, want 0", item.TransferSize())
		}
	})

	t.Run("DirectoryMovesNothing", func(t *testing.T) {
		item := &SyncItem{RelativePath: "sub", Left: left, IsDir: true, Action: ActionCopyRight}
		if item.TransferSize() != 0 {
			t.Errorf("TransferSize() = %d, want 0", item.TransferSize())
		}
	})
}

func TestDiffSegmentInvariant(t *testing.T) {
	// A Modified segment carries independent run lengths per side
	seg := DiffSegment{Kind: DiffModified, LeftCount: 3, RightCount: 5}

	if seg.LeftCount == seg.RightCount {
		t.Error("test segment should have asymmetric counts")
	}
	if seg.Kind != DiffModified {
		t.Errorf("Kind = %s, want modified", seg.Kind)
	}
}

func TestDiffStatsIdentical(t *testing.T) {
	t.Run("Zero", func(t *testing.T) {
		if !(DiffStats{}).Identical() {
			t.Error("zero stats should be identical")
		}
	})

	t.Run("NonZero", func(t *testing.T) {
		if (DiffStats{AddedLines: 1}).Identical() {
			t.Error("stats with additions should not be identical")
		}
	})
}

func TestRunStatusExitCode(t *testing.T) {
	tests := []struct {
		status RunStatus
		code   int
	}{
		{RunCompleted, 0},
		{RunPartial, 1},
		{RunFailed, 2},
		{RunCancelled, 3},
		{RunStatus("unknown"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.ExitCode() != tt.code {
				t.Errorf("ExitCode() = %d, want %d", tt.status.ExitCode(), tt.code)
			}
		})
	}
}

func TestDigestResultSum(t *testing.T) {
	r := &DigestResult{
		Path: "/tmp/file.bin",
		Size: 10,
		Sums: map[Algorithm]string{AlgoMD5: "abc123"},
	}

	if r.Sum(AlgoMD5) != "abc123" {
		t.Errorf("Sum(md5) = %s, want abc123", r.Sum(AlgoMD5))
	}
	if r.Sum(AlgoSHA1) != "" {
		t.Errorf("Sum(sha1) = %s, want empty", r.Sum(AlgoSHA1))
	}

	empty := &DigestResult{Path: "/tmp/other.bin"}
	if empty.Sum(AlgoMD5) != "" {
		t.Error("Sum on nil map should return empty string")
	}
}
