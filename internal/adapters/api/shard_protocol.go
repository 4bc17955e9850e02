package api

import (
	"net/url"
	"time"

	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
)

// PlayerBody is the JSON body of PUT /users/{playerId}
type PlayerBody struct {
	ID                string         `json:"id"`
	Pseudo            string         `json:"pseudo,omitempty"`
	DateOfCreation    *time.Time     `json:"dateOfCreation,omitempty"`
	ResourcesQuantity map[string]int `json:"resourcesQuantity,omitempty"`
}

// UnitBody is the JSON body of PUT /users/{playerId}/units/{unitId}
type UnitBody struct {
	ID                string         `json:"id"`
	Type              string         `json:"type,omitempty"`
	System            string         `json:"system,omitempty"`
	Planet            string         `json:"planet,omitempty"`
	DestinationShard  string         `json:"destinationShard,omitempty"`
	Health            *int           `json:"health,omitempty"`
	ResourcesQuantity map[string]int `json:"resourcesQuantity,omitempty"`
}

// PlayerPath is the resource path of a player
func PlayerPath(playerID string) string {
	return "/users/" + url.PathEscape(playerID)
}

// UnitPath is the resource path of a player's unit
func UnitPath(playerID, unitID string) string {
	return PlayerPath(playerID) + "/units/" + url.PathEscape(unitID)
}

// PlayerBodyFromPackage builds the player half of a transfer
func PlayerBodyFromPackage(pkg *transfer.Package) PlayerBody {
	created := pkg.Player.CreatedAt
	return PlayerBody{
		ID:                pkg.Player.ID,
		Pseudo:            pkg.Player.Pseudo,
		DateOfCreation:    &created,
		ResourcesQuantity: pkg.Player.Resources,
	}
}

// UnitBodyFromPackage builds the unit half of a transfer. The receiving shard creates
// the unit and ignores the destination shard, which only records where it came through.
func UnitBodyFromPackage(pkg *transfer.Package) UnitBody {
	health := pkg.Unit.Health
	return UnitBody{
		ID:                pkg.Unit.ID,
		Type:              pkg.Unit.Type,
		System:            pkg.Unit.System,
		DestinationShard:  pkg.Unit.DestinationShard,
		Health:            &health,
		ResourcesQuantity: pkg.Unit.Resources,
	}
}
