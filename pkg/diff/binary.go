package diff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

// ChunkSize is the number of bytes per rendered row.
const ChunkSize = 16

// BinaryRow is one pair of aligned hex rows. A side's text is empty
// once its stream is exhausted.
type BinaryRow struct {
	// Offset of the row's first byte
	Offset int64

	// Left is the rendered left chunk
	Left string

	// Right is the rendered right chunk
	Right string

	// Differs is set when chunk lengths differ or any byte differs
	Differs bool
}

// BinaryDiffEngine aligns two byte streams in fixed-size chunks,
// rendering each as an annotated hex line.
type BinaryDiffEngine struct{}

// NewBinaryDiffEngine creates a binary diff engine.
func NewBinaryDiffEngine() *BinaryDiffEngine {
	return &BinaryDiffEngine{}
}

// Compare reads both streams in lock-step until both are exhausted.
// Two empty streams produce zero rows.
func (e *BinaryDiffEngine) Compare(ctx context.Context, left, right io.Reader) ([]BinaryRow, error) {
	var rows []BinaryRow
	leftBuf := make([]byte, ChunkSize)
	rightBuf := make([]byte, ChunkSize)
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		leftN, leftErr := io.ReadFull(left, leftBuf)
		if leftErr == io.ErrUnexpectedEOF {
			leftErr = io.EOF
		}
		rightN, rightErr := io.ReadFull(right, rightBuf)
		if rightErr == io.ErrUnexpectedEOF {
			rightErr = io.EOF
		}

		if leftErr != nil && leftErr != io.EOF {
			return rows, fmt.Errorf("failed to read left stream: %w", leftErr)
		}
		if rightErr != nil && rightErr != io.EOF {
			return rows, fmt.Errorf("failed to read right stream: %w", rightErr)
		}

		if leftN == 0 && rightN == 0 {
			break
		}

		row := BinaryRow{
			Offset:  offset,
			Differs: leftN != rightN || !bytes.Equal(leftBuf[:leftN], rightBuf[:rightN]),
		}
		if leftN > 0 {
			row.Left = FormatHexRow(offset, leftBuf[:leftN])
		}
		if rightN > 0 {
			row.Right = FormatHexRow(offset, rightBuf[:rightN])
		}
		rows = append(rows, row)

		offset += ChunkSize

		if leftN < ChunkSize && rightN < ChunkSize {
			break
		}
	}

	return rows, nil
}

// FormatHexRow renders one chunk as offset, two 8-byte hex groups
// separated by an extra space, and an ASCII gutter where printable
// bytes (0x20-0x7E) appear literally and everything else as a dot.
func FormatHexRow(offset int64, chunk []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%08X  ", offset)

	for i := 0; i < ChunkSize; i++ {
		if i == ChunkSize/2 {
			b.WriteByte(' ')
		}
		if i < len(chunk) {
			fmt.Fprintf(&b, "%02X ", chunk[i])
		} else {
			b.WriteString("   ")
		}
	}

	b.WriteByte(' ')
	for _, c := range chunk {
		if c >= 0x20 && c <= 0x7E {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}

	return b.String()
}
