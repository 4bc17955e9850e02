package persistence

import (
	"context"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// InMemoryPlayerRepository is the authoritative player registry of a running shard.
// Live aggregates hold timers and locks, so they are kept in memory; the database
// only receives snapshots.
type InMemoryPlayerRepository struct {
	mu      sync.RWMutex
	players map[string]*player.Player
	order   []string
}

// NewInMemoryPlayerRepository creates an empty registry
func NewInMemoryPlayerRepository() *InMemoryPlayerRepository {
	return &InMemoryPlayerRepository{players: make(map[string]*player.Player)}
}

// FindByID retrieves a player by ID
func (r *InMemoryPlayerRepository) FindByID(ctx context.Context, playerID string) (*player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[playerID]
	if !ok {
		return nil, shared.NewNotFoundError("player", playerID)
	}
	return p, nil
}

// Add registers a player; an existing id is rejected
func (r *InMemoryPlayerRepository) Add(ctx context.Context, p *player.Player) error {
	id := p.PlayerID().String()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.players[id]; exists {
		return shared.NewInvalidRequestError("player " + id + " already exists")
	}
	r.players[id] = p
	r.order = append(r.order, id)
	return nil
}

// List returns every player in registration order
func (r *InMemoryPlayerRepository) List(ctx context.Context) ([]*player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*player.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out, nil
}

// Count returns the number of registered players
func (r *InMemoryPlayerRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
