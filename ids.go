package fluxcrystal

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// nonceEntropy is a monotonic entropy source shared across all nonce
// generation, guarded by entropyMu since ulid.MonotonicReader is not
// safe for concurrent use.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewNonce returns a new lexicographically sortable identifier suitable
// for use as a CreateMessageParams.Nonce, letting a client deduplicate
// its own echoed MessageCreateEvent against the message it just sent.
func NewNonce() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}
