package ratelimit

import (
	"context"
	"io"
	"sync"
	"time"
)

// minBucketSize keeps small limits from stalling transfers entirely.
const minBucketSize = 64 * 1024

// Limiter is a token bucket shared by every reader of one operation,
// so the configured rate bounds the aggregate transfer speed.
type Limiter struct {
	bytesPerSecond int64

	mu         sync.Mutex
	tokens     int64
	bucketSize int64
	lastRefill time.Time
}

// NewLimiter creates a limiter for the given bytes-per-second rate.
// A non-positive rate returns nil, which readers treat as unlimited.
func NewLimiter(bytesPerSecond int64) *Limiter {
	if bytesPerSecond <= 0 {
		return nil
	}

	bucketSize := bytesPerSecond
	if bucketSize < minBucketSize {
		bucketSize = minBucketSize
	}

	return &Limiter{
		bytesPerSecond: bytesPerSecond,
		tokens:         bucketSize,
		bucketSize:     bucketSize,
		lastRefill:     time.Now(),
	}
}

// refill adds tokens for the elapsed time. Caller holds the lock.
func (l *Limiter) refill() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefill)

	added := int64(elapsed.Seconds() * float64(l.bytesPerSecond))
	if added > 0 {
		l.tokens += added
		if l.tokens > l.bucketSize {
			l.tokens = l.bucketSize
		}
		l.lastRefill = now
	}
}

// wait blocks until the requested number of tokens is available or the
// context is cancelled.
func (l *Limiter) wait(ctx context.Context, needed int64) error {
	for {
		l.mu.Lock()
		l.refill()
		if l.tokens >= needed {
			l.tokens -= needed
			l.mu.Unlock()
			return nil
		}
		deficit := needed - l.tokens
		l.mu.Unlock()

		delay := time.Duration(float64(deficit) / float64(l.bytesPerSecond) * float64(time.Second))
		if delay < time.Millisecond {
			delay = time.Millisecond
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// reader applies a Limiter to an io.Reader
type reader struct {
	inner   io.Reader
	limiter *Limiter
	ctx     context.Context
}

// NewReader wraps r so reads draw from the limiter's token bucket.
// A nil limiter returns r unchanged.
func NewReader(ctx context.Context, r io.Reader, limiter *Limiter) io.Reader {
	if limiter == nil {
		return r
	}
	return &reader{inner: r, limiter: limiter, ctx: ctx}
}

func (r *reader) Read(p []byte) (int, error) {
	want := int64(len(p))
	if want > r.limiter.bucketSize {
		want = r.limiter.bucketSize
	}
	if want == 0 {
		return r.inner.Read(p)
	}

	if err := r.limiter.wait(r.ctx, want); err != nil {
		return 0, err
	}

	n, err := r.inner.Read(p[:want])

	// Return unused tokens for short reads
	if int64(n) < want {
		r.limiter.mu.Lock()
		r.limiter.tokens += want - int64(n)
		if r.limiter.tokens > r.limiter.bucketSize {
			r.limiter.tokens = r.limiter.bucketSize
		}
		r.limiter.mu.Unlock()
	}

	return n, err
}

// readCloser pairs the limited reader with the underlying closer
type readCloser struct {
	reader
	closer io.Closer
}

// NewReadCloser wraps rc with rate limiting. A nil limiter returns rc
// unchanged.
func NewReadCloser(ctx context.Context, rc io.ReadCloser, limiter *Limiter) io.ReadCloser {
	if limiter == nil {
		return rc
	}
	return &readCloser{
		reader: reader{inner: rc, limiter: limiter, ctx: ctx},
		closer: rc,
	}
}

func (r *readCloser) Close() error {
	return r.closer.Close()
}
