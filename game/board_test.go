package game_test

import (
	"errors"
	"testing"

	"github.com/plus3/blockfit/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRowExcept(t *testing.T, b *game.Board, row int, skipCols ...int) {
	t.Helper()
	skip := make(map[int]bool)
	for _, c := range skipCols {
		skip[c] = true
	}
	for c := 0; c < b.Size(); c++ {
		if skip[c] {
			continue
		}
		require.NoError(t, b.PlaceShape([]game.Position{{Row: row, Col: c}}, game.ColorBlue))
	}
}

func fillColExcept(t *testing.T, b *game.Board, col int, skipRows ...int) {
	t.Helper()
	skip := make(map[int]bool)
	for _, r := range skipRows {
		skip[r] = true
	}
	for r := 0; r < b.Size(); r++ {
		if skip[r] {
			continue
		}
		if b.At(game.Position{Row: r, Col: col}).Kind == game.CellOccupied {
			continue
		}
		require.NoError(t, b.PlaceShape([]game.Position{{Row: r, Col: col}}, game.ColorGreen))
	}
}

func TestPlaceShapeCommitsExactTargets(t *testing.T) {
	b := game.NewBoard(10)
	targets := []game.Position{{Row: 2, Col: 3}, {Row: 2, Col: 4}, {Row: 3, Col: 3}}

	require.NoError(t, b.PlaceShape(targets, game.ColorRed))

	occupied := make(map[game.Position]bool)
	for _, pos := range targets {
		occupied[pos] = true
	}
	for r := 0; r < b.Size(); r++ {
		for c := 0; c < b.Size(); c++ {
			pos := game.Position{Row: r, Col: c}
			cell := b.At(pos)
			if occupied[pos] {
				assert.Equal(t, game.CellOccupied, cell.Kind)
				assert.Equal(t, game.ColorRed, cell.Color)
			} else {
				assert.Equal(t, game.CellEmpty, cell.Kind)
			}
		}
	}
}

func TestPlaceShapeAllOrNothing(t *testing.T) {
	b := game.NewBoard(5)
	require.NoError(t, b.PlaceShape([]game.Position{{Row: 0, Col: 1}}, game.ColorRed))

	// Second target collides; the first must stay untouched.
	err := b.PlaceShape([]game.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}}, game.ColorBlue)
	assert.ErrorIs(t, err, game.ErrCollision)
	assert.Equal(t, game.CellEmpty, b.At(game.Position{Row: 0, Col: 0}).Kind)
}

// Scenario A: a 5-cell horizontal line with its origin at column 6 on a
// 10x10 board runs off the right edge.
func TestPlaceFiveLineOutOfBounds(t *testing.T) {
	b := game.NewBoard(10)
	def, ok := game.CatalogShape(game.ShapePentLine)
	require.True(t, ok)

	err := game.FitAt(b, def.Pattern(), game.Position{Row: 0, Col: 6})
	assert.ErrorIs(t, err, game.ErrOutOfBounds)

	err = b.PlaceShape(game.PatternCells(def.Pattern(), game.Position{Row: 0, Col: 6}), game.ColorRed)
	assert.ErrorIs(t, err, game.ErrOutOfBounds)
	for c := 6; c < 10; c++ {
		assert.Equal(t, game.CellEmpty, b.At(game.Position{Row: 0, Col: c}).Kind)
	}
}

func TestClearPreviewsIdempotent(t *testing.T) {
	b := game.NewBoard(6)
	require.NoError(t, b.SetPreview([]game.Position{{Row: 1, Col: 1}, {Row: 1, Col: 2}}, game.ColorYellow))
	assert.Equal(t, game.CellPreview, b.At(game.Position{Row: 1, Col: 1}).Kind)

	b.ClearPreviews()
	first := b.Cells()
	b.ClearPreviews()
	assert.Equal(t, first, b.Cells())
	assert.Equal(t, game.CellEmpty, b.At(game.Position{Row: 1, Col: 1}).Kind)
}

func TestPreviewIsOverwritable(t *testing.T) {
	b := game.NewBoard(6)
	pos := game.Position{Row: 2, Col: 2}
	require.NoError(t, b.SetPreview([]game.Position{pos}, game.ColorYellow))
	assert.True(t, b.CanPlace(pos))
	require.NoError(t, b.PlaceShape([]game.Position{pos}, game.ColorRed))
	assert.Equal(t, game.CellOccupied, b.At(pos).Kind)
}

func TestFindCompletedLinesNeverIncludesEmptyOrPreview(t *testing.T) {
	b := game.NewBoard(8)
	fillRowExcept(t, b, 3, 5)
	require.NoError(t, b.SetPreview([]game.Position{{Row: 3, Col: 5}}, game.ColorYellow))

	// The preview cell does not count as occupied, so row 3 is incomplete.
	assert.Empty(t, b.FindCompletedLines())

	fillRowExcept(t, b, 6)
	clears := b.FindCompletedLines()
	require.Len(t, clears, 1)
	for _, pos := range clears[0].Positions {
		kind := b.At(pos).Kind
		assert.NotEqual(t, game.CellEmpty, kind)
		assert.NotEqual(t, game.CellPreview, kind)
	}
}

// Scenario B: completing the last gap of a row clears it and scores at
// least the placement plus the clear bonus.
func TestSingleCellCompletesRow(t *testing.T) {
	b := game.NewBoard(10)
	fillRowExcept(t, b, 4, 7)

	require.NoError(t, b.PlaceShape([]game.Position{{Row: 4, Col: 7}}, game.ColorPurple))
	clears := b.ClearCompletedLines()
	require.Len(t, clears, 1)
	assert.Equal(t, game.LineRow, clears[0].Kind)
	assert.Equal(t, 4, clears[0].Index)

	bd := game.ScorePlacement(b.Size(), 1, len(clears), b.IsEmpty())
	assert.GreaterOrEqual(t, bd.Total, bd.PlacementPoints+bd.ClearPoints)
	for c := 0; c < b.Size(); c++ {
		assert.Equal(t, game.CellEmpty, b.At(game.Position{Row: 4, Col: c}).Kind)
	}
}

// Scenario E: a row and a column completing from one placement share one
// cell; the batch clears it exactly once and empties the whole union.
func TestSharedCellClearedOnce(t *testing.T) {
	b := game.NewBoard(5)
	fillRowExcept(t, b, 2, 3)
	fillColExcept(t, b, 3, 2)

	require.NoError(t, b.PlaceShape([]game.Position{{Row: 2, Col: 3}}, game.ColorRed))
	clears := b.ClearCompletedLines()
	require.Len(t, clears, 2)

	union := make(map[game.Position]int)
	for _, clear := range clears {
		for _, pos := range clear.Positions {
			union[pos]++
		}
	}
	assert.Equal(t, 2, union[game.Position{Row: 2, Col: 3}], "shared cell belongs to both descriptors")
	assert.Len(t, union, 2*b.Size()-1)
	assert.True(t, b.IsEmpty())
}

func TestLockedCellsCountForLinesButSurviveClears(t *testing.T) {
	b := game.NewBoard(5)
	locked := game.Position{Row: 1, Col: 0}
	require.NoError(t, b.LoadObstacles([]game.Position{locked}, game.ColorNone))

	fillRowExcept(t, b, 1, 0)
	clears := b.ClearCompletedLines()
	require.Len(t, clears, 1)

	assert.Equal(t, game.CellLocked, b.At(locked).Kind)
	for c := 1; c < b.Size(); c++ {
		assert.Equal(t, game.CellEmpty, b.At(game.Position{Row: 1, Col: c}).Kind)
	}
}

func TestIsEmptyIgnoresLocked(t *testing.T) {
	b := game.NewBoard(4)
	require.NoError(t, b.LoadObstacles([]game.Position{{Row: 0, Col: 0}}, game.ColorNone))
	assert.True(t, b.IsEmpty())

	require.NoError(t, b.PlaceShape([]game.Position{{Row: 1, Col: 1}}, game.ColorRed))
	assert.False(t, b.IsEmpty())
}

func TestResetKeepsLockedCells(t *testing.T) {
	b := game.NewBoard(6)
	locked := game.Position{Row: 5, Col: 5}
	require.NoError(t, b.LoadObstacles([]game.Position{locked}, game.ColorNone))
	require.NoError(t, b.PlaceShape([]game.Position{{Row: 0, Col: 0}}, game.ColorBlue))
	require.NoError(t, b.SetPreview([]game.Position{{Row: 1, Col: 1}}, game.ColorYellow))

	b.Reset()

	assert.Equal(t, game.CellLocked, b.At(locked).Kind)
	assert.Equal(t, game.CellEmpty, b.At(game.Position{Row: 0, Col: 0}).Kind)
	assert.Equal(t, game.CellEmpty, b.At(game.Position{Row: 1, Col: 1}).Kind)
}

func TestPlacementErrorTaxonomy(t *testing.T) {
	b := game.NewBoard(5)
	require.NoError(t, b.PlaceShape([]game.Position{{Row: 0, Col: 0}}, game.ColorRed))

	tests := []struct {
		name      string
		positions []game.Position
		want      error
	}{
		{"out of bounds", []game.Position{{Row: -1, Col: 0}}, game.ErrOutOfBounds},
		{"past edge", []game.Position{{Row: 0, Col: 5}}, game.ErrOutOfBounds},
		{"collision", []game.Position{{Row: 0, Col: 0}}, game.ErrCollision},
		{"empty pattern", nil, game.ErrInvalidPattern},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.PlaceShape(tt.positions, game.ColorBlue)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
