package ledger

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// StarterQuantities is the ledger every newly registered player starts with
func StarterQuantities() shared.Quantities {
	return shared.Quantities{
		shared.Carbon:    20,
		shared.Iron:      10,
		shared.Oxygen:    50,
		shared.Water:     50,
		shared.Aluminium: 0,
		shared.Titanium:  0,
		shared.Gold:      0,
	}
}

// ZeroQuantities has the starter keys, all at zero (players arriving from another shard)
func ZeroQuantities() shared.Quantities {
	q := StarterQuantities()
	for k := range q {
		q[k] = 0
	}
	return q
}

// Ledger is a player's resource balance. Quantities never go below zero.
type Ledger struct {
	mu         sync.Mutex
	quantities shared.Quantities
}

// New creates a ledger with a copy of the initial quantities
func New(initial shared.Quantities) *Ledger {
	if initial == nil {
		initial = shared.Quantities{}
	}
	return &Ledger{quantities: initial.Clone()}
}

// Get returns the balance of one kind; missing kinds read as zero
func (l *Ledger) Get(kind shared.ResourceKind) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quantities[kind]
}

// Add credits n units; negative amounts are ignored
func (l *Ledger) Add(kind shared.ResourceKind, n int) {
	if n <= 0 {
		return
	}
	l.mu.Lock()
	l.quantities[kind] += n
	l.mu.Unlock()
}

// Remove debits up to n units, clamping at zero, and returns what was actually removed
func (l *Ledger) Remove(kind shared.ResourceKind, n int) int {
	if n <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	have := l.quantities[kind]
	if n > have {
		n = have
	}
	l.quantities[kind] = have - n
	return n
}

// Set overwrites a balance
func (l *Ledger) Set(kind shared.ResourceKind, n int) error {
	if n < 0 {
		return shared.NewInvalidRequestError(fmt.Sprintf("negative quantity %d for %s", n, kind))
	}
	l.mu.Lock()
	l.quantities[kind] = n
	l.mu.Unlock()
	return nil
}

// SetAll overwrites every balance listed in q, leaving others untouched. Nothing is
// written if any amount is negative.
func (l *Ledger) SetAll(q shared.Quantities) error {
	for kind, n := range q {
		if n < 0 {
			return shared.NewInvalidRequestError(fmt.Sprintf("negative quantity %d for %s", n, kind))
		}
	}
	l.mu.Lock()
	for kind, n := range q {
		l.quantities[kind] = n
	}
	l.mu.Unlock()
	return nil
}

// TryDebit removes all of costs or nothing at all
func (l *Ledger) TryDebit(costs shared.Quantities) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, kind := range shared.AllResourceKinds {
		need, ok := costs[kind]
		if !ok || need <= 0 {
			continue
		}
		if have := l.quantities[kind]; have < need {
			return shared.NewInsufficientResourcesError(kind, need, have)
		}
	}
	for kind, need := range costs {
		if need > 0 {
			l.quantities[kind] -= need
		}
	}
	return nil
}

// Snapshot returns a copy of every balance
func (l *Ledger) Snapshot() shared.Quantities {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.quantities.Clone()
}
