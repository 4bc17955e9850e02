package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spaceshard-go/internal/adapters/persistence"
	"github.com/andrescamacho/spaceshard-go/internal/domain/player"
	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
	"github.com/andrescamacho/spaceshard-go/internal/domain/unit"
	"github.com/andrescamacho/spaceshard-go/test/helpers"
)

func TestSnapshotRepository_SaveAndLatest(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo, err := persistence.NewGormSnapshotRepository(db)
	require.NoError(t, err)
	world := helpers.NewTestWorld(t)
	alice := world.RegisterPlayer(t, "alice")

	first := alice.Record(helpers.Epoch)
	alice.Ledger().Add(shared.Gold, 7)
	second := alice.Record(helpers.Epoch.Add(time.Minute))

	// Act
	require.NoError(t, repo.Save(context.Background(), []*player.SnapshotRecord{first}))
	require.NoError(t, repo.Save(context.Background(), []*player.SnapshotRecord{second}))
	latest, err := repo.Latest(context.Background(), "alice")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice", latest.ID)
	assert.Equal(t, 7, latest.Resources[shared.Gold])
	assert.True(t, latest.TakenAt.Equal(helpers.Epoch.Add(time.Minute)))
	require.Len(t, latest.Units, 2)
	assert.Equal(t, unit.Scout, latest.Units[0].Type)
	assert.Equal(t, unit.Builder, latest.Units[1].Type)
	assert.Empty(t, latest.Buildings)
}

func TestSnapshotRepository_PayloadIsCompressed(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo, err := persistence.NewGormSnapshotRepository(db)
	require.NoError(t, err)
	world := helpers.NewTestWorld(t)
	alice := world.RegisterPlayer(t, "alice")

	require.NoError(t, repo.Save(context.Background(), []*player.SnapshotRecord{alice.Record(helpers.Epoch)}))

	var row persistence.PlayerSnapshotModel
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 2, row.UnitCount)
	require.GreaterOrEqual(t, len(row.Payload), 4)
	// zstd frame magic number
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, row.Payload[:4])
}

func TestSnapshotRepository_LatestNotFound(t *testing.T) {
	repo, err := persistence.NewGormSnapshotRepository(helpers.NewTestDB(t))
	require.NoError(t, err)

	_, err = repo.Latest(context.Background(), "ghost")

	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSnapshotRepository_RetentionPrunesOldRows(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo, err := persistence.NewGormSnapshotRepository(db, persistence.WithRetention(90*time.Second))
	require.NoError(t, err)
	alice := helpers.NewTestWorld(t).RegisterPlayer(t, "alice")

	for i := 0; i < 4; i++ {
		rec := alice.Record(helpers.Epoch.Add(time.Duration(i) * time.Minute))
		require.NoError(t, repo.Save(context.Background(), []*player.SnapshotRecord{rec}))
	}

	var count int64
	require.NoError(t, db.Model(&persistence.PlayerSnapshotModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSnapshotRepository_RejectsUnknownCompressionLevel(t *testing.T) {
	_, err := persistence.NewGormSnapshotRepository(helpers.NewTestDB(t), persistence.WithCompressionLevel("ludicrous"))

	assert.Error(t, err)
}
