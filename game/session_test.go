package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/blockfit/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededGame(seed uint64, opts ...game.EngineOption) *game.Game {
	opts = append([]game.EngineOption{game.WithRand(rand.New(rand.NewPCG(seed, seed+1)))}, opts...)
	return game.NewGame(10, opts...)
}

func TestNewGameDealsOpeningHand(t *testing.T) {
	g := seededGame(1)
	assert.Equal(t, game.HandSize, g.Hand().Count())
	assert.True(t, g.Board().IsEmpty())
	assert.Zero(t, g.Score().Total())
}

func TestPlaceFromSlotPipeline(t *testing.T) {
	g := seededGame(2)
	piece := g.Hand().Slots[0]
	require.NotNil(t, piece)

	origin, ok := game.FirstFit(g.Board(), piece.Cells())
	require.True(t, ok)

	res, err := g.PlaceFromSlot(0, origin)
	require.NoError(t, err)
	assert.Len(t, res.Positions, piece.Cells().CellCount())
	assert.Equal(t, res.Breakdown.Total, g.Score().Total())
	assert.Nil(t, g.Hand().Slots[0], "committed slot empties")
	assert.False(t, res.HandRefilled, "two slots remain")
	assert.Equal(t, 1, g.Telemetry().PlacementsMade)

	for _, pos := range res.Positions {
		assert.Equal(t, game.CellOccupied, g.Board().At(pos).Kind)
	}
}

func TestPlaceFromSlotRejectsWithoutMutation(t *testing.T) {
	g := seededGame(3)
	before := g.Board().Cells()

	_, err := g.PlaceFromSlot(0, game.Position{Row: 9, Col: 9})
	if err == nil {
		t.Skip("seeded piece happens to fit at the corner")
	}
	assert.Equal(t, before, g.Board().Cells())
	assert.NotNil(t, g.Hand().Slots[0], "failed placement keeps the slot")
	assert.Zero(t, g.Score().Total())
}

func TestHandRefillsOnlyWhenAllSlotsEmpty(t *testing.T) {
	g := seededGame(4)

	placed := 0
	for slot := 0; slot < game.HandSize; slot++ {
		piece := g.Hand().Slots[slot]
		require.NotNil(t, piece)
		origin, ok := game.FirstFit(g.Board(), piece.Cells())
		require.True(t, ok, "empty-ish board must accept slot %d", slot)

		res, err := g.PlaceFromSlot(slot, origin)
		require.NoError(t, err)
		placed++
		if slot < game.HandSize-1 {
			assert.False(t, res.HandRefilled)
			assert.Equal(t, game.HandSize-placed, g.Hand().Count())
		} else {
			assert.True(t, res.HandRefilled)
			assert.Equal(t, game.HandSize, g.Hand().Count(), "fresh hand after the last slot")
		}
	}
}

func TestPlaceFromSlotEmptySlot(t *testing.T) {
	g := seededGame(5)
	require.NoError(t, g.ConsumeSlot(1))

	_, err := g.PlaceFromSlot(1, game.Position{})
	assert.ErrorIs(t, err, game.ErrEmptySlot)

	_, err = g.PlaceFromSlot(7, game.Position{})
	assert.ErrorIs(t, err, game.ErrOutOfBounds)
}

func TestConsumeSlotRefillsWhenHandEmpties(t *testing.T) {
	g := seededGame(6)
	require.NoError(t, g.ConsumeSlot(0))
	require.NoError(t, g.ConsumeSlot(1))
	assert.Equal(t, 1, g.Hand().Count())

	require.NoError(t, g.ConsumeSlot(2))
	assert.Equal(t, game.HandSize, g.Hand().Count(), "hand refills once all slots are gone")

	assert.ErrorIs(t, g.ConsumeSlot(-1), game.ErrOutOfBounds)
}

func TestPreviewGhostsAreReplacedNotStacked(t *testing.T) {
	g := seededGame(7)
	require.NoError(t, g.Preview(0, game.Position{Row: 0, Col: 0}))
	first := 0
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			if g.Board().At(game.Position{Row: r, Col: c}).Kind == game.CellPreview {
				first++
			}
		}
	}
	assert.Equal(t, g.Hand().Slots[0].Cells().CellCount(), first)

	require.NoError(t, g.Preview(0, game.Position{Row: 5, Col: 5}))
	second := 0
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			if g.Board().At(game.Position{Row: r, Col: c}).Kind == game.CellPreview {
				second++
			}
		}
	}
	assert.Equal(t, first, second, "old ghost cleared before painting the new one")
}

func TestGameResetKeepsHighScore(t *testing.T) {
	g := seededGame(8)
	piece := g.Hand().Slots[0]
	origin, ok := game.FirstFit(g.Board(), piece.Cells())
	require.True(t, ok)
	_, err := g.PlaceFromSlot(0, origin)
	require.NoError(t, err)
	high := g.Score().HighScore()
	require.Greater(t, high, 0)

	g.Reset()
	assert.True(t, g.Board().IsEmpty())
	assert.Zero(t, g.Score().Total())
	assert.Equal(t, high, g.Score().HighScore())
	assert.Equal(t, game.HandSize, g.Hand().Count())
	assert.Zero(t, g.Telemetry().PlacementsMade)
}

func TestRestrictCatalogAppliesFromNextDeal(t *testing.T) {
	g := seededGame(9)
	g.RestrictCatalog([]game.ShapeID{game.ShapeMono})

	for slot := 0; slot < game.HandSize; slot++ {
		require.NoError(t, g.ConsumeSlot(slot))
	}
	for _, piece := range g.Hand().Pieces() {
		assert.Equal(t, game.ShapeMono, piece.ID)
	}
}

func TestBoardClearAwardsBonusAndVirtualLines(t *testing.T) {
	g := seededGame(10)
	g.RestrictCatalog([]game.ShapeID{game.ShapeMono})
	b := g.Board()

	// Leave exactly one gap in row 0 of an otherwise empty board, then
	// drop monos into it until the row clears and the board empties.
	fillRowExcept(t, b, 0, 9)
	for slot := 0; slot < game.HandSize; slot++ {
		require.NoError(t, g.ConsumeSlot(slot))
	}
	require.Equal(t, game.ShapeMono, g.Hand().Slots[0].ID)

	res, err := g.PlaceFromSlot(0, game.Position{Row: 0, Col: 9})
	require.NoError(t, err)
	require.Len(t, res.Clears, 1)
	assert.True(t, res.BoardCleared)
	assert.Equal(t, 100, res.Breakdown.BoardClearBonus)
}
