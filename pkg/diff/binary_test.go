package diff

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestBinaryDiffEmptyStreams(t *testing.T) {
	engine := NewBinaryDiffEngine()

	rows, err := engine.Compare(context.Background(), strings.NewReader(""), strings.NewReader(""))
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0 for two empty streams", len(rows))
	}
}

func TestBinaryDiffIdentical(t *testing.T) {
	engine := NewBinaryDiffEngine()
	content := []byte("0123456789ABCDEF0123456789ABCDEF") // exactly two chunks

	rows, err := engine.Compare(context.Background(), bytes.NewReader(content), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for n, row := range rows {
		if row.Differs {
			t.Errorf("row %d flagged different for identical content", n)
		}
		if row.Offset != int64(n*ChunkSize) {
			t.Errorf("row %d offset = %d, want %d", n, row.Offset, n*ChunkSize)
		}
		if row.Left != row.Right {
			t.Errorf("row %d panes differ: %q vs %q", n, row.Left, row.Right)
		}
	}
}

func TestBinaryDiffMismatch(t *testing.T) {
	engine := NewBinaryDiffEngine()
	left := []byte("0123456789ABCDEFsecond-chunk-x16")
	right := []byte("0123456789ABCDEFsecond-CHUNK-x16")

	rows, err := engine.Compare(context.Background(), bytes.NewReader(left), bytes.NewReader(right))
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Differs {
		t.Error("first chunk should match")
	}
	if !rows[1].Differs {
		t.Error("second chunk should be flagged different")
	}
}

func TestBinaryDiffLengthMismatch(t *testing.T) {
	engine := NewBinaryDiffEngine()
	left := []byte("0123456789ABCDEF0123")
	right := []byte("0123456789ABCDEF")

	rows, err := engine.Compare(context.Background(), bytes.NewReader(left), bytes.NewReader(right))
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !rows[1].Differs {
		t.Error("short row should be flagged different")
	}
	if rows[1].Right != "" {
		t.Errorf("exhausted right pane = %q, want empty", rows[1].Right)
	}
}

func TestFormatHexRow(t *testing.T) {
	t.Run("FullChunk", func(t *testing.T) {
		chunk := []byte("ABCDEFGHIJKLMNOP")
		row := FormatHexRow(0x10, chunk)

		if !strings.HasPrefix(row, "00000010  ") {
			t.Errorf("row should start with the 8-digit offset: %q", row)
		}
		// Extra space between the two 8-byte groups
		if !strings.Contains(row, "48  49") {
			t.Errorf("row should separate the hex groups with an extra space: %q", row)
		}
		if !strings.HasSuffix(row, "ABCDEFGHIJKLMNOP") {
			t.Errorf("row should end with the ASCII gutter: %q", row)
		}
	})

	t.Run("NonPrintableBytes", func(t *testing.T) {
		row := FormatHexRow(0, []byte{0x00, 0x41, 0x1F, 0x7F})
		if !strings.HasSuffix(row, ".A..") {
			t.Errorf("non-printable bytes should render as dots: %q", row)
		}
	})

	t.Run("ShortChunkPadsHexColumns", func(t *testing.T) {
		full := FormatHexRow(0, []byte("ABCDEFGHIJKLMNOP"))
		short := FormatHexRow(0, []byte("AB"))

		// Hex area keeps its width so gutters line up across rows
		fullGutter := strings.LastIndex(full, " ABCDEFGHIJKLMNOP")
		shortGutter := strings.LastIndex(short, " AB")
		if fullGutter != shortGutter {
			t.Errorf("gutter columns differ: full=%d short=%d", fullGutter, shortGutter)
		}
	})
}
