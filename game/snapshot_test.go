package game_test

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfit/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTripReproducesState(t *testing.T) {
	g := seededGame(100)
	require.NoError(t, g.Board().LoadObstacles([]game.Position{{Row: 9, Col: 0}}, game.ColorNone))

	piece := g.Hand().Slots[0]
	origin, ok := game.FirstFit(g.Board(), piece.Cells())
	require.True(t, ok)
	_, err := g.PlaceFromSlot(0, origin)
	require.NoError(t, err)

	snap := g.Snapshot()

	// Persist through the external collaborator's likely encoding.
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded game.GameSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, snap, decoded)

	restored, err := game.RestoreGame(decoded, game.WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)

	assert.Equal(t, g.Board().Cells(), restored.Board().Cells())
	assert.Equal(t, g.Score().Total(), restored.Score().Total())
	assert.Equal(t, g.Score().HighScore(), restored.Score().HighScore())
	assert.Equal(t, g.Telemetry().PlacementsMade, restored.Telemetry().PlacementsMade)
	assert.Equal(t, g.Telemetry().Stage, restored.Telemetry().Stage)

	for i := 0; i < game.HandSize; i++ {
		orig, rest := g.Hand().Slots[i], restored.Hand().Slots[i]
		if orig == nil {
			assert.Nil(t, rest, "slot %d", i)
			continue
		}
		require.NotNil(t, rest, "slot %d", i)
		assert.Equal(t, orig.ID, rest.ID)
		assert.Equal(t, orig.Orientation, rest.Orientation)
		assert.Equal(t, orig.Color, rest.Color)
	}

	// Snapshot of the restored game matches the original snapshot.
	assert.Equal(t, snap, restored.Snapshot())
}

func TestSnapshotOmitsEmptySlotsAndPreviews(t *testing.T) {
	g := seededGame(101)
	require.NoError(t, g.Preview(0, game.Position{Row: 0, Col: 0}))
	require.NoError(t, g.ConsumeSlot(1))

	snap := g.Snapshot()
	assert.Empty(t, snap.Cells, "preview cells are scratch state")
	assert.Len(t, snap.Hand, 2)
	for _, slot := range snap.Hand {
		assert.NotEqual(t, 1, slot.Slot)
	}
}

func TestRestoreGameRejectsCorruptSnapshots(t *testing.T) {
	tests := []struct {
		name string
		snap game.GameSnapshot
	}{
		{"zero board", game.GameSnapshot{}},
		{"cell out of bounds", game.GameSnapshot{
			BoardSize: 5,
			Cells:     []game.CellSnapshot{{Row: 9, Col: 0, Kind: game.CellOccupied}},
		}},
		{"bad slot index", game.GameSnapshot{
			BoardSize: 5,
			Hand:      []game.SlotSnapshot{{Slot: 5, Shape: game.ShapeMono}},
		}},
		{"unknown shape", game.GameSnapshot{
			BoardSize: 5,
			Hand:      []game.SlotSnapshot{{Slot: 0, Shape: game.ShapeID(999)}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := game.RestoreGame(tt.snap)
			assert.Error(t, err)
		})
	}
}

func TestRestoreGameWithEmptyHandDealsFresh(t *testing.T) {
	snap := game.GameSnapshot{BoardSize: 10}
	g, err := game.RestoreGame(snap, game.WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)
	assert.Equal(t, game.HandSize, g.Hand().Count())
}
