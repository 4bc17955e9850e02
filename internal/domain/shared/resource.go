package shared

import (
	"fmt"
	"strings"
)

// ResourceKind is one of the seven raw materials found in planet deposits
type ResourceKind string

const (
	Carbon    ResourceKind = "carbon"
	Iron      ResourceKind = "iron"
	Gold      ResourceKind = "gold"
	Aluminium ResourceKind = "aluminium"
	Titanium  ResourceKind = "titanium"
	Water     ResourceKind = "water"
	Oxygen    ResourceKind = "oxygen"
)

// ResourceCategory groups resource kinds by physical state
type ResourceCategory string

const (
	Solid   ResourceCategory = "solid"
	Liquid  ResourceCategory = "liquid"
	Gaseous ResourceCategory = "gaseous"
)

// AllResourceKinds lists every kind in a stable order
var AllResourceKinds = []ResourceKind{Carbon, Iron, Gold, Aluminium, Titanium, Water, Oxygen}

// rarityOrder runs from rarest to most common
var rarityOrder = []ResourceKind{Titanium, Gold, Aluminium, Iron, Carbon}

// ParseResourceKind accepts any letter case
func ParseResourceKind(s string) (ResourceKind, error) {
	k := ResourceKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllResourceKinds {
		if k == known {
			return k, nil
		}
	}
	return "", NewInvalidRequestError(fmt.Sprintf("unknown resource kind %q", s))
}

// ParseResourceCategory accepts any letter case
func ParseResourceCategory(s string) (ResourceCategory, error) {
	c := ResourceCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Solid, Liquid, Gaseous:
		return c, nil
	}
	return "", NewInvalidRequestError(fmt.Sprintf("unknown resource category %q", s))
}

// Category returns the physical state of the resource
func (k ResourceKind) Category() ResourceCategory {
	switch k {
	case Water:
		return Liquid
	case Oxygen:
		return Gaseous
	default:
		return Solid
	}
}

func (k ResourceKind) String() string {
	return string(k)
}

// rarity ranks solids by rarityOrder, then every other kind after them in
// AllResourceKinds order
func (k ResourceKind) rarity() int {
	for i, r := range rarityOrder {
		if r == k {
			return i
		}
	}
	for i, r := range AllResourceKinds {
		if r == k {
			return len(rarityOrder) + i
		}
	}
	return len(rarityOrder) + len(AllResourceKinds)
}

// CompareRarity returns a negative number when k is rarer than other, positive when it is
// more common and zero only when both are the same kind. Water and oxygen rank after
// every solid.
func (k ResourceKind) CompareRarity(other ResourceKind) int {
	return k.rarity() - other.rarity()
}

// Quantities maps resource kinds to amounts
type Quantities map[ResourceKind]int

// Clone returns an independent copy
func (q Quantities) Clone() Quantities {
	out := make(Quantities, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// StringKeys converts to a plain string-keyed map for serialization
func (q Quantities) StringKeys() map[string]int {
	out := make(map[string]int, len(q))
	for k, v := range q {
		out[string(k)] = v
	}
	return out
}

// QuantitiesFromStrings parses string-keyed amounts, rejecting unknown kinds
func QuantitiesFromStrings(in map[string]int) (Quantities, error) {
	out := make(Quantities, len(in))
	for name, v := range in {
		k, err := ParseResourceKind(name)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
