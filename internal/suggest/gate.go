package suggest

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBusy is returned when an operation of the same kind is already in flight.
var ErrBusy = errors.New("an ai request of this kind is already in flight")

// Kind identifies one class of collaborator-backed operation.
type Kind string

const (
	KindExpiry    Kind = "expiry"
	KindDiscovery Kind = "discovery"
	KindImport    Kind = "import"
)

// Gate is an explicit per-operation-kind lock around collaborator calls. A
// second concurrent call of the same kind is rejected deterministically with
// ErrBusy; calls of different kinds may run concurrently.
type Gate struct {
	mu   sync.Mutex
	busy map[Kind]bool
}

// NewGate creates an idle Gate.
func NewGate() *Gate {
	return &Gate{busy: make(map[Kind]bool)}
}

// TryAcquire marks the kind busy, or returns ErrBusy if it already is.
func (g *Gate) TryAcquire(kind Kind) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.busy[kind] {
		return fmt.Errorf("%w: %s", ErrBusy, kind)
	}
	g.busy[kind] = true
	return nil
}

// Release marks the kind idle again. Callers must release on every path,
// including failures.
func (g *Gate) Release(kind Kind) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy[kind] = false
}
