package models

// Algorithm identifies a digest algorithm
type Algorithm string

const (
	// AlgoMD5 is the MD5 message digest
	AlgoMD5 Algorithm = "md5"
	// AlgoSHA1 is the SHA-1 secure hash
	AlgoSHA1 Algorithm = "sha1"
	// AlgoSHA256 is the SHA-256 secure hash
	AlgoSHA256 Algorithm = "sha256"
	// AlgoSHA512 is the SHA-512 secure hash
	AlgoSHA512 Algorithm = "sha512"
	// AlgoCRC32 is the reflected-polynomial CRC-32 checksum
	AlgoCRC32 Algorithm = "crc32"
)

// Algorithms lists every supported algorithm in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgoCRC32, AlgoMD5, AlgoSHA1, AlgoSHA256, AlgoSHA512}
}

// DigestResult holds every requested digest of one file. All requested
// algorithms are computed from independent reads of the same file and
// attached here once all of them finish.
type DigestResult struct {
	// Path is the absolute path of the file
	Path string

	// Size in bytes at the time of hashing
	Size int64

	// Sums maps each requested algorithm to its hex string. Empty when
	// Err is set.
	Sums map[Algorithm]string

	// Err is set when the file could not be opened or read
	Err error
}

// Sum returns the hex digest for one algorithm, or "" if not requested.
func (r *DigestResult) Sum(algo Algorithm) string {
	if r.Sums == nil {
		return ""
	}
	return r.Sums[algo]
}
