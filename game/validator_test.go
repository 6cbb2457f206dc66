package game_test

import (
	"testing"

	"github.com/plus3/blockfit/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitAtBoundingBoxThenCells(t *testing.T) {
	b := game.NewBoard(5)
	square := game.Pattern{{true, true}, {true, true}}

	assert.NoError(t, game.FitAt(b, square, game.Position{Row: 3, Col: 3}))
	assert.ErrorIs(t, game.FitAt(b, square, game.Position{Row: 4, Col: 3}), game.ErrOutOfBounds)
	assert.ErrorIs(t, game.FitAt(b, square, game.Position{Row: -1, Col: 0}), game.ErrOutOfBounds)

	require.NoError(t, b.PlaceShape([]game.Position{{Row: 3, Col: 3}}, game.ColorRed))
	assert.ErrorIs(t, game.FitAt(b, square, game.Position{Row: 3, Col: 3}), game.ErrCollision)
}

func TestFirstFitScanOrder(t *testing.T) {
	b := game.NewBoard(3)
	require.NoError(t, b.PlaceShape([]game.Position{{Row: 0, Col: 0}}, game.ColorRed))

	pos, ok := game.FirstFit(b, game.Pattern{{true}})
	require.True(t, ok)
	assert.Equal(t, game.Position{Row: 0, Col: 1}, pos, "row-major scan skips the occupied origin")
}

func TestFitsAnywhereOnCrampedBoard(t *testing.T) {
	b := game.NewBoard(3)
	// Fill everything except the center.
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r == 1 && c == 1 {
				continue
			}
			require.NoError(t, b.PlaceShape([]game.Position{{Row: r, Col: c}}, game.ColorBlue))
		}
	}

	assert.True(t, game.FitsAnywhere(b, game.Pattern{{true}}))
	assert.False(t, game.FitsAnywhere(b, game.Pattern{{true, true}}))

	mono, _ := game.CatalogShape(game.ShapeMono)
	_, ok := game.AnyOrientationFits(b, mono)
	assert.True(t, ok)
	duo, _ := game.CatalogShape(game.ShapeDuo)
	_, ok = game.AnyOrientationFits(b, duo)
	assert.False(t, ok)
}

func TestPatternCellsTranslation(t *testing.T) {
	corner := game.Pattern{{true, false}, {true, true}}
	cells := game.PatternCells(corner, game.Position{Row: 2, Col: 5})
	assert.ElementsMatch(t, []game.Position{
		{Row: 2, Col: 5}, {Row: 3, Col: 5}, {Row: 3, Col: 6},
	}, cells)
}
