package unit

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

// Type is the kind of a unit
type Type string

const (
	Scout   Type = "scout"
	Builder Type = "builder"
	Fighter Type = "fighter"
	Bomber  Type = "bomber"
	Cruiser Type = "cruiser"
	Cargo   Type = "cargo"
)

// AllTypes lists the unit types in a stable order
var AllTypes = []Type{Scout, Builder, Fighter, Bomber, Cruiser, Cargo}

// Profile is the static capability record of a unit type
type Profile struct {
	Health int
	// Damage is the health delta applied to a target per hit (negative)
	Damage int
	// Shots is how many hits one Shoot delivers
	Shots int
	// Priority ranks target types, most wanted first
	Priority []Type
	Combat   bool
	Carries  bool
	Builds   bool
}

var profiles = map[Type]Profile{
	Scout:   {Health: 100, Damage: -1, Shots: 1},
	Builder: {Health: 100, Damage: -1, Shots: 1, Builds: true},
	Fighter: {Health: 80, Damage: -10, Shots: 1, Combat: true, Priority: []Type{Bomber, Fighter, Cruiser}},
	Bomber:  {Health: 50, Damage: -400, Shots: 1, Combat: true, Priority: []Type{Cruiser, Bomber, Fighter}},
	Cruiser: {Health: 400, Damage: -10, Shots: 4, Combat: true, Priority: []Type{Fighter, Cruiser, Bomber}},
	Cargo:   {Health: 100, Damage: -1, Shots: 1, Carries: true},
}

// ParseType accepts any letter case
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := profiles[t]; !ok {
		return "", shared.NewInvalidRequestError(fmt.Sprintf("unknown unit type %q", s))
	}
	return t, nil
}

func (t Type) String() string { return string(t) }

// Profile returns the capability record; unknown types get a zero profile
func (t Type) Profile() Profile { return profiles[t] }

func (t Type) IsCombat() bool { return profiles[t].Combat }

// PriorityOf returns the rank of target in t's priority list; types that are not
// listed rank after every listed one.
func (t Type) PriorityOf(target Type) int {
	prio := profiles[t].Priority
	for i, p := range prio {
		if p == target {
			return i
		}
	}
	return len(prio)
}
