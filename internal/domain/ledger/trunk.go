package ledger

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Trunk is the resource store a unit carries
type Trunk interface {
	// CanCarry reports whether the trunk holds anything at all
	CanCarry() bool
	Get(kind shared.ResourceKind) int
	Add(kind shared.ResourceKind, n int) error
	// Remove takes up to n units and returns how many were taken
	Remove(kind shared.ResourceKind, n int) int
	// Set overwrites the amount held of one kind
	Set(kind shared.ResourceKind, n int) error
	Snapshot() shared.Quantities
}

// CargoTrunk holds resources for cargo units. A kind stays listed once it has been
// held, even after it drains to zero.
type CargoTrunk struct {
	mu       sync.Mutex
	contents shared.Quantities
}

func NewCargoTrunk(initial shared.Quantities) *CargoTrunk {
	t := &CargoTrunk{contents: shared.Quantities{}}
	for kind, n := range initial {
		if n >= 0 {
			t.contents[kind] = n
		}
	}
	return t
}

func (t *CargoTrunk) CanCarry() bool { return true }

func (t *CargoTrunk) Get(kind shared.ResourceKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.contents[kind]
}

func (t *CargoTrunk) Add(kind shared.ResourceKind, n int) error {
	if n < 0 {
		return shared.NewInvalidRequestError("cannot add a negative amount to a trunk")
	}
	if n == 0 {
		return nil
	}
	t.mu.Lock()
	t.contents[kind] += n
	t.mu.Unlock()
	return nil
}

func (t *CargoTrunk) Remove(kind shared.ResourceKind, n int) int {
	if n <= 0 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	have, ok := t.contents[kind]
	if !ok {
		return 0
	}
	if n > have {
		n = have
	}
	t.contents[kind] = have - n
	return n
}

func (t *CargoTrunk) Set(kind shared.ResourceKind, n int) error {
	if n < 0 {
		return shared.NewInvalidRequestError(fmt.Sprintf("negative quantity %d for %s", n, kind))
	}
	t.mu.Lock()
	t.contents[kind] = n
	t.mu.Unlock()
	return nil
}

func (t *CargoTrunk) Snapshot() shared.Quantities {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.contents.Clone()
}

// NoneTrunk is carried by every unit that cannot hold resources. It discards whatever
// it is given and always reports zero.
type NoneTrunk struct{}

func (NoneTrunk) CanCarry() bool                      { return false }
func (NoneTrunk) Get(shared.ResourceKind) int         { return 0 }
func (NoneTrunk) Add(shared.ResourceKind, int) error  { return nil }
func (NoneTrunk) Remove(shared.ResourceKind, int) int { return 0 }
func (NoneTrunk) Set(shared.ResourceKind, int) error  { return nil }
func (NoneTrunk) Snapshot() shared.Quantities         { return shared.Quantities{} }
