package building

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// Type is the kind of a building
type Type string

const (
	Mine     Type = "mine"
	Starport Type = "starport"
)

// ParseType accepts any letter case
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Mine, Starport:
		return t, nil
	}
	return "", shared.NewInvalidRequestError(fmt.Sprintf("unknown building type %q", s))
}

func (t Type) String() string { return string(t) }

// unitCosts is what a starport debits from its owner per unit produced
var unitCosts = map[unit.Type]shared.Quantities{
	unit.Builder: {shared.Carbon: 5, shared.Iron: 10},
	unit.Scout:   {shared.Carbon: 5, shared.Iron: 5},
	unit.Fighter: {shared.Aluminium: 5, shared.Iron: 20},
	unit.Bomber:  {shared.Titanium: 10, shared.Iron: 30},
	unit.Cruiser: {shared.Iron: 60, shared.Gold: 20},
	unit.Cargo:   {shared.Carbon: 10, shared.Iron: 10, shared.Gold: 5},
}

// UnitCost returns a copy of the starport price of a unit type
func UnitCost(t unit.Type) (shared.Quantities, bool) {
	cost, ok := unitCosts[t]
	if !ok {
		return nil, false
	}
	return cost.Clone(), true
}
