package common

import (
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/building"
	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

// PlayerView is the outward representation of a player
type PlayerView struct {
	ID                string         `json:"id"`
	Pseudo            string         `json:"pseudo"`
	DateOfCreation    time.Time      `json:"dateOfCreation"`
	ResourcesQuantity map[string]int `json:"resourcesQuantity"`
}

func NewPlayerView(p *player.Player) *PlayerView {
	st := p.Snapshot()
	return &PlayerView{
		ID:                st.ID,
		Pseudo:            st.Pseudo,
		DateOfCreation:    st.CreatedAt,
		ResourcesQuantity: st.Resources.StringKeys(),
	}
}

// UnitView is the outward representation of a unit
type UnitView struct {
	ID                     string         `json:"id"`
	Type                   string         `json:"type"`
	System                 string         `json:"system"`
	Planet                 string         `json:"planet,omitempty"`
	DestinationSystem      string         `json:"destinationSystem,omitempty"`
	DestinationPlanet      string         `json:"destinationPlanet,omitempty"`
	DestinationShard       string         `json:"destinationShard,omitempty"`
	EstimatedTimeOfArrival *time.Time     `json:"estimatedTimeOfArrival,omitempty"`
	Health                 int            `json:"health"`
	ResourcesQuantity      map[string]int `json:"resourcesQuantity,omitempty"`
}

func NewUnitView(u *unit.Unit) *UnitView {
	st := u.Snapshot()
	return &UnitView{
		ID:                     st.ID,
		Type:                   string(st.Type),
		System:                 st.System,
		Planet:                 st.Planet,
		DestinationSystem:      st.DestinationSystem,
		DestinationPlanet:      st.DestinationPlanet,
		EstimatedTimeOfArrival: st.ETA,
		Health:                 st.Health,
		ResourcesQuantity:      st.Resources.StringKeys(),
	}
}

// LocationView is what a unit can see where it stands
type LocationView struct {
	System            string         `json:"system"`
	Planet            string         `json:"planet,omitempty"`
	ResourcesQuantity map[string]int `json:"resourcesQuantity,omitempty"`
}

// NewLocationView reports the planet deposit to every unit type except builders
func NewLocationView(u *unit.Unit) *LocationView {
	sys, planet := u.Location()
	view := &LocationView{System: sys.Name()}
	if planet == nil {
		return view
	}
	view.Planet = planet.Name()
	if u.Type() != unit.Builder {
		view.ResourcesQuantity = planet.Deposit().StringKeys()
	}
	return view
}

// BuildingView is the outward representation of a building
type BuildingView struct {
	ID                 string     `json:"id"`
	Type               string     `json:"type"`
	BuilderID          string     `json:"builderId"`
	System             string     `json:"system"`
	Planet             string     `json:"planet"`
	IsBuilt            bool       `json:"isBuilt"`
	EstimatedBuildTime *time.Time `json:"estimatedBuildTime,omitempty"`
	ResourceCategory   string     `json:"resourceCategory,omitempty"`
}

func NewBuildingView(b *building.Building) *BuildingView {
	st := b.Snapshot()
	return &BuildingView{
		ID:                 st.ID,
		Type:               string(st.Type),
		BuilderID:          st.BuilderID,
		System:             st.System,
		Planet:             st.Planet,
		IsBuilt:            st.Built,
		EstimatedBuildTime: st.ETA,
		ResourceCategory:   string(st.Category),
	}
}

// PlanetView describes a planet of a system
type PlanetView struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// SystemView describes a system and its planets
type SystemView struct {
	Name    string        `json:"name"`
	Planets []*PlanetView `json:"planets"`
}

func NewSystemView(s *galaxy.System) *SystemView {
	view := &SystemView{Name: s.Name(), Planets: []*PlanetView{}}
	for _, p := range s.Planets() {
		view.Planets = append(view.Planets, &PlanetView{Name: p.Name(), Size: p.Size()})
	}
	return view
}
