package transfer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/spaceshard-go/internal/domain/galaxy"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/transfer"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
)

func TestNewPackage(t *testing.T) {
	wh := &galaxy.Wormhole{Name: "shard-b", BaseURI: "http://shard-b:5000", System: "Alpha", User: "a", SharedPassword: "pw"}
	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	owner := player.State{ID: "p1", Pseudo: "P One", CreatedAt: created, Resources: shared.Quantities{shared.Iron: 3}}
	u := unit.State{ID: "u1", Type: unit.Cargo, System: "Local", Health: 42, Resources: shared.Quantities{shared.Gold: 1}}

	pkg := transfer.NewPackage(wh, owner, u)

	assert.Equal(t, "Alpha", pkg.Unit.System)
	assert.Equal(t, "shard-b", pkg.Unit.DestinationShard)
	assert.Equal(t, 42, pkg.Unit.Health)
	assert.Equal(t, map[string]int{"gold": 1}, pkg.Unit.Resources)
	assert.Equal(t, map[string]int{"iron": 3}, pkg.Player.Resources)
	assert.Equal(t, created, pkg.Player.CreatedAt)
	assert.Equal(t, "http://shard-b:5000/users/p1/units/u1", pkg.RedirectTarget())
}
