package digest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/twinpane/twinpane/pkg/models"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	return path
}

func TestComputeEmptyFile(t *testing.T) {
	// Well-known digests of the empty input
	path := writeTempFile(t, "empty.bin", nil)
	engine := NewEngine()

	result := engine.Compute(context.Background(), path, models.Algorithms())
	if result.Err != nil {
		t.Fatalf("Compute() error = %v", result.Err)
	}

	tests := []struct {
		algo models.Algorithm
		want string
	}{
		{models.AlgoCRC32, "00000000"},
		{models.AlgoMD5, "d41d8cd98f00b204e9800998ecf8427e"},
		{models.AlgoSHA1, "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{models.AlgoSHA256, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{models.AlgoSHA512, "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			if got := result.Sum(tt.algo); got != tt.want {
				t.Errorf("Sum(%s) = %s, want %s", tt.algo, got, tt.want)
			}
		})
	}
}

func TestComputeKnownVectors(t *testing.T) {
	path := writeTempFile(t, "abc.txt", []byte("abc"))
	engine := NewEngine()

	result := engine.Compute(context.Background(), path, models.Algorithms())
	if result.Err != nil {
		t.Fatalf("Compute() error = %v", result.Err)
	}
	if result.Size != 3 {
		t.Errorf("Size = %d, want 3", result.Size)
	}

	tests := []struct {
		algo models.Algorithm
		want string
	}{
		{models.AlgoCRC32, "352441c2"},
		{models.AlgoMD5, "900150983cd24fb0d6963f7d28e17f72"},
		{models.AlgoSHA1, "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{models.AlgoSHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			if got := result.Sum(tt.algo); got != tt.want {
				t.Errorf("Sum(%s) = %s, want %s", tt.algo, got, tt.want)
			}
		})
	}
}

func TestComputeUppercase(t *testing.T) {
	path := writeTempFile(t, "abc.txt", []byte("abc"))
	engine := NewEngine(WithUppercase(true))

	result := engine.Compute(context.Background(), path, []models.Algorithm{models.AlgoMD5})
	if result.Err != nil {
		t.Fatalf("Compute() error = %v", result.Err)
	}
	if got := result.Sum(models.AlgoMD5); got != "900150983CD24FB0D6963F7D28E17F72" {
		t.Errorf("Sum(md5) = %s, want upper-case hex", got)
	}
}

func TestComputeOnlyRequestedAlgorithms(t *testing.T) {
	path := writeTempFile(t, "abc.txt", []byte("abc"))
	engine := NewEngine()

	result := engine.Compute(context.Background(), path, []models.Algorithm{models.AlgoSHA256})
	if result.Err != nil {
		t.Fatalf("Compute() error = %v", result.Err)
	}
	if len(result.Sums) != 1 {
		t.Errorf("got %d sums, want exactly 1", len(result.Sums))
	}
	if result.Sum(models.AlgoMD5) != "" {
		t.Error("md5 was not requested and should be absent")
	}
}

func TestComputeMissingFile(t *testing.T) {
	engine := NewEngine()

	result := engine.Compute(context.Background(), filepath.Join(t.TempDir(), "missing.bin"), []models.Algorithm{models.AlgoMD5})
	if result.Err == nil {
		t.Fatal("Compute() should set Err for a missing file")
	}
	if len(result.Sums) != 0 {
		t.Errorf("got %d sums, want none on error", len(result.Sums))
	}
}

func TestComputeLargeFileSpansBlocks(t *testing.T) {
	// Larger than one 80 KiB block so the streaming loop iterates
	content := make([]byte, 200*1024)
	for i := range content {
		content[i] = byte(i % 255)
	}
	path := writeTempFile(t, "large.bin", content)
	engine := NewEngine()

	full := engine.Compute(context.Background(), path, []models.Algorithm{models.AlgoSHA256})
	if full.Err != nil {
		t.Fatalf("Compute() error = %v", full.Err)
	}

	small := NewEngine(WithBlockSize(4096)).Compute(context.Background(), path, []models.Algorithm{models.AlgoSHA256})
	if small.Err != nil {
		t.Fatalf("Compute() error = %v", small.Err)
	}

	if full.Sum(models.AlgoSHA256) != small.Sum(models.AlgoSHA256) {
		t.Error("digest must not depend on the block size")
	}
}

func TestComputeBatch(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "one.txt")
	good2 := filepath.Join(dir, "two.txt")
	missing := filepath.Join(dir, "missing.txt")

	if err := os.WriteFile(good1, []byte("one"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := os.WriteFile(good2, []byte("two"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	t.Run("ContinuesPastErrors", func(t *testing.T) {
		var seen []int
		engine := NewEngine(WithProgress(func(percent int, path string) {
			seen = append(seen, percent)
		}))

		results, status := engine.ComputeBatch(context.Background(), []string{good1, missing, good2}, []models.Algorithm{models.AlgoMD5})

		if len(results) != 3 {
			t.Fatalf("got %d results, want 3", len(results))
		}
		if results[0].Err != nil || results[2].Err != nil {
			t.Error("readable files should succeed around the failed one")
		}
		if results[1].Err == nil {
			t.Error("missing file should carry an error")
		}
		if status != models.RunPartial {
			t.Errorf("status = %s, want partial", status)
		}
		if len(seen) != 3 || seen[2] != 100 {
			t.Errorf("progress percents = %v, want three ending at 100", seen)
		}
	})

	t.Run("AllGood", func(t *testing.T) {
		engine := NewEngine()
		results, status := engine.ComputeBatch(context.Background(), []string{good1, good2}, []models.Algorithm{models.AlgoCRC32})

		if status != models.RunCompleted {
			t.Errorf("status = %s, want completed", status)
		}
		if len(results) != 2 {
			t.Errorf("got %d results, want 2", len(results))
		}
	})

	t.Run("CancelledKeepsPartialResults", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewEngine()
		results, status := engine.ComputeBatch(ctx, []string{good1, good2}, []models.Algorithm{models.AlgoMD5})

		if status != models.RunCancelled {
			t.Errorf("status = %s, want cancelled", status)
		}
		if len(results) != 0 {
			t.Errorf("got %d results, want 0 for an immediately cancelled batch", len(results))
		}
	})
}

func TestVerify(t *testing.T) {
	path := writeTempFile(t, "abc.txt", []byte("abc"))
	engine := NewEngine()
	result := engine.Compute(context.Background(), path, models.Algorithms())
	results := []*models.DigestResult{result}

	t.Run("ExactMatch", func(t *testing.T) {
		m := Verify("900150983cd24fb0d6963f7d28e17f72", results)
		if m == nil {
			t.Fatal("Verify() should find the md5 digest")
		}
		if m.Algorithm != models.AlgoMD5 {
			t.Errorf("Algorithm = %s, want md5", m.Algorithm)
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		m := Verify("900150983CD24FB0D6963F7D28E17F72", results)
		if m == nil {
			t.Error("Verify() should match case-insensitively")
		}
	})

	t.Run("SeparatorsStripped", func(t *testing.T) {
		m := Verify("  3524-41c2\n", results)
		if m == nil {
			t.Fatal("Verify() should strip whitespace and dashes")
		}
		if m.Algorithm != models.AlgoCRC32 {
			t.Errorf("Algorithm = %s, want crc32", m.Algorithm)
		}
	})

	t.Run("NoMatch", func(t *testing.T) {
		if m := Verify("deadbeef", results); m != nil {
			t.Errorf("Verify() = %+v, want nil for no match", m)
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		if m := Verify("  - ", results); m != nil {
			t.Error("Verify() should reject an input that normalizes to empty")
		}
	})
}
