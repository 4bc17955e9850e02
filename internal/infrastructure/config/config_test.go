package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
shard:
  name: east
  public_uri: http://east.example:8080
world:
  seed: galaxy-one
  systems: 4
wormholes:
  west:
    base_uri: http://west.example:8080
    system: Alpha
    user: east
    shared_password: s3cret
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "east", cfg.Shard.Name)
	assert.Equal(t, "galaxy-one", cfg.World.Seed)
	assert.Equal(t, 4, cfg.World.Systems)
	require.Contains(t, cfg.Wormholes, "west")
	assert.Equal(t, "Alpha", cfg.Wormholes["west"].System)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.Resolution)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
shard:
  name: east
logging:
  level: info
`)
	t.Setenv("SHARD_LOGGING_LEVEL", "debug")
	t.Setenv("SHARD_WORLD_SEED", "from-env")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "from-env", cfg.World.Seed)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: chatty
`)

	_, err := config.LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfig_WormholesNeedPublicURI(t *testing.T) {
	path := writeConfig(t, `
wormholes:
  west:
    base_uri: http://west.example:8080
    system: Alpha
    user: east
    shared_password: s3cret
`)

	_, err := config.LoadConfig(path)

	assert.ErrorContains(t, err, "public_uri")
}

func TestLoadConfig_ShardNameMustBeIdentifier(t *testing.T) {
	path := writeConfig(t, `
shard:
  name: "east shard"
`)

	_, err := config.LoadConfig(path)

	assert.ErrorContains(t, err, "identifier")
}

func TestLoadConfig_WormholeToSelf(t *testing.T) {
	path := writeConfig(t, `
shard:
  name: east
  public_uri: http://east.example:8080
wormholes:
  east:
    base_uri: http://east.example:8080
    system: Alpha
    user: east
    shared_password: s3cret
`)

	_, err := config.LoadConfig(path)

	assert.ErrorContains(t, err, "points back at this shard")
}

func TestUserConfigHandler_Update(t *testing.T) {
	h, err := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))
	require.NoError(t, err)

	empty, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.DefaultPlayerID)

	require.NoError(t, h.Update(func(c *config.UserConfig) { c.DefaultPlayerID = "alice" }))

	loaded, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.DefaultPlayerID)
}

func TestWorldConfig_SectorSpecification(t *testing.T) {
	generated, err := config.WorldConfig{Seed: "galaxy-one", Systems: 3, MinPlanets: 1, MaxPlanets: 2, MaxDeposit: 10}.SectorSpecification()
	require.NoError(t, err)
	assert.Len(t, generated.Systems, 3)

	specPath := filepath.Join(t.TempDir(), "sector.yaml")
	data, err := generated.YAML()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(specPath, data, 0644))

	loaded, err := config.WorldConfig{Seed: "ignored", Specification: specPath}.SectorSpecification()
	require.NoError(t, err)
	assert.Equal(t, generated.Systems, loaded.Systems)
}

func TestGalaxyWormholes_SortedByName(t *testing.T) {
	cfg := &config.Config{Wormholes: map[string]config.WormholeConfig{
		"west":  {BaseURI: "http://west", System: "Alpha", User: "east", SharedPassword: "pw"},
		"north": {BaseURI: "http://north", System: "Beta", User: "east", SharedPassword: "pw"},
	}}

	wormholes := cfg.GalaxyWormholes()

	require.Len(t, wormholes, 2)
	assert.Equal(t, "north", wormholes[0].Name)
	assert.Equal(t, "Alpha", wormholes[1].System)
}
