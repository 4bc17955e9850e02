package galaxy

import (
	"errors"
	"sync"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// ErrNoResourceLeft is returned when a mining attempt finds nothing of the requested category
var ErrNoResourceLeft = errors.New("no resource left in category")

// Structure is a building standing on a planet
type Structure interface {
	ID() string
	TypeName() string
	IsBuilt() bool
}

// Planet is a named body inside a system with a resource deposit and the buildings
// constructed on it. Deposit and building list are guarded by the planet's own lock.
type Planet struct {
	name   string
	size   int
	system *System

	mu        sync.Mutex
	deposit   shared.Quantities
	buildings []Structure
}

// NewPlanet creates a planet; it is attached to a system by NewSystem
func NewPlanet(name string, size int, deposit shared.Quantities) *Planet {
	if deposit == nil {
		deposit = shared.Quantities{}
	}
	return &Planet{name: name, size: size, deposit: deposit.Clone()}
}

func (p *Planet) Name() string    { return p.name }
func (p *Planet) Size() int       { return p.size }
func (p *Planet) System() *System { return p.system }

// Deposit returns a copy of the remaining resources
func (p *Planet) Deposit() shared.Quantities {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.deposit.Clone()
}

// RemoveOneUnitOfMostPresentResource decrements by one the kind of the given category
// with the largest remaining quantity. Ties go to the rarer kind. The choice and the
// decrement happen under the same lock.
func (p *Planet) RemoveOneUnitOfMostPresentResource(category shared.ResourceCategory) (shared.ResourceKind, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var best shared.ResourceKind
	bestQty := 0
	for _, kind := range shared.AllResourceKinds {
		if kind.Category() != category {
			continue
		}
		qty := p.deposit[kind]
		if qty <= 0 {
			continue
		}
		if qty > bestQty || (qty == bestQty && kind.CompareRarity(best) < 0) {
			best, bestQty = kind, qty
		}
	}
	if bestQty == 0 {
		return "", ErrNoResourceLeft
	}
	p.deposit[best] = bestQty - 1
	return best, nil
}

// Buildings returns the structures standing on the planet, in construction order
func (p *Planet) Buildings() []Structure {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Structure, len(p.buildings))
	copy(out, p.buildings)
	return out
}

func (p *Planet) AddBuilding(b Structure) {
	p.mu.Lock()
	p.buildings = append(p.buildings, b)
	p.mu.Unlock()
}

// RemoveBuilding reports whether a building with that id was present
func (p *Planet) RemoveBuilding(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.buildings {
		if b.ID() == id {
			p.buildings = append(p.buildings[:i], p.buildings[i+1:]...)
			return true
		}
	}
	return false
}

// HasBuilt reports whether a completed building of the given type stands here
func (p *Planet) HasBuilt(typeName string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.buildings {
		if b.TypeName() == typeName && b.IsBuilt() {
			return true
		}
	}
	return false
}
