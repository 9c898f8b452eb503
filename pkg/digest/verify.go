package digest

import (
	"strings"

	"github.com/twinpane/twinpane/pkg/models"
)

// Match identifies which computed digest, if any, a user-supplied
// string corresponds to.
type Match struct {
	// Result is the file whose digest matched
	Result *models.DigestResult

	// Algorithm is the matching algorithm
	Algorithm models.Algorithm
}

// normalizeInput strips whitespace and dashes, the separators checksum
// tools commonly insert into printed digests.
func normalizeInput(input string) string {
	var b strings.Builder
	for _, r := range input {
		switch {
		case r == '-' || r == ' ' || r == '\t' || r == '\r' || r == '\n':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Verify reports the first result and algorithm whose hex digest
// equals the input, compared case-insensitively after normalization.
// A nil return means no match.
func Verify(input string, results []*models.DigestResult) *Match {
	needle := strings.ToLower(normalizeInput(input))
	if needle == "" {
		return nil
	}

	for _, result := range results {
		if result.Err != nil {
			continue
		}
		for _, algo := range models.Algorithms() {
			sum, ok := result.Sums[algo]
			if !ok {
				continue
			}
			if strings.ToLower(sum) == needle {
				return &Match{Result: result, Algorithm: algo}
			}
		}
	}

	return nil
}
