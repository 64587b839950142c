package unsigned

import (
	"sync/atomic"
	"time"
)

// NonceSource produces the nonce attached to every prepared action. The
// venue requires nonces to be strictly increasing per signer and close to
// the current wall clock, so implementations must be safe for concurrent
// use.
type NonceSource interface {
	Next() uint64
}

// timestampNonceSource issues millisecond timestamps, bumped one past the
// previous draw whenever the clock has not advanced.
type timestampNonceSource struct {
	last atomic.Uint64
	now  func() time.Time
}

// NewTimestampNonceSource returns the default wall-clock NonceSource.
func NewTimestampNonceSource() NonceSource {
	return &timestampNonceSource{now: time.Now}
}

func (s *timestampNonceSource) Next() uint64 {
	for {
		next := uint64(s.now().UnixMilli())
		last := s.last.Load()
		if next <= last {
			next = last + 1
		}
		if s.last.CompareAndSwap(last, next) {
			return next
		}
	}
}
