package game

import "fmt"

// Board owns the cell grid. The size is fixed at construction; all mutation
// goes through the placement and clearing primitives. The board performs no
// locking: callers serialize access to a single writer.
type Board struct {
	size  int
	cells [][]Cell
}

// NewBoard creates an all-empty size x size board.
func NewBoard(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("board size %d must be positive", size))
	}
	b := &Board{size: size}
	b.cells = make([][]Cell, size)
	for r := range b.cells {
		b.cells[r] = make([]Cell, size)
	}
	return b
}

// Size returns the board dimension.
func (b *Board) Size() int { return b.size }

// InBounds reports whether the position addresses a cell.
func (b *Board) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.size && pos.Col >= 0 && pos.Col < b.size
}

// At returns the cell at pos. Out-of-bounds positions read as empty.
func (b *Board) At(pos Position) Cell {
	if !b.InBounds(pos) {
		return Cell{}
	}
	return b.cells[pos.Row][pos.Col]
}

// CanPlace reports whether a single cell accepts placement: it must be
// empty or preview. Preview is scratch state and freely overwritable.
func (b *Board) CanPlace(pos Position) bool {
	if !b.InBounds(pos) {
		return false
	}
	kind := b.cells[pos.Row][pos.Col].Kind
	return kind == CellEmpty || kind == CellPreview
}

// checkPlacement validates every target cell without mutating anything.
func (b *Board) checkPlacement(positions []Position) error {
	if len(positions) == 0 {
		return ErrInvalidPattern
	}
	for _, pos := range positions {
		if !b.InBounds(pos) {
			return fmt.Errorf("cell (%d,%d): %w", pos.Row, pos.Col, ErrOutOfBounds)
		}
		if !b.CanPlace(pos) {
			return fmt.Errorf("cell (%d,%d): %w", pos.Row, pos.Col, ErrCollision)
		}
	}
	return nil
}

// PlaceShape commits a placement. Every target cell is validated first; on
// any failure nothing is mutated.
func (b *Board) PlaceShape(positions []Position, color PieceColor) error {
	if err := b.checkPlacement(positions); err != nil {
		return err
	}
	for _, pos := range positions {
		b.cells[pos.Row][pos.Col] = Cell{Kind: CellOccupied, Color: color}
	}
	return nil
}

// SetPreview paints the target cells as preview ghosts. Invalid placements
// are rejected the same way as PlaceShape. Callers must ClearPreviews before
// computing a new preview to avoid stale ghosts.
func (b *Board) SetPreview(positions []Position, color PieceColor) error {
	if err := b.checkPlacement(positions); err != nil {
		return err
	}
	for _, pos := range positions {
		b.cells[pos.Row][pos.Col] = Cell{Kind: CellPreview, Color: color}
	}
	return nil
}

// ClearPreviews resets all preview cells to empty. Idempotent.
func (b *Board) ClearPreviews() {
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c].Kind == CellPreview {
				b.cells[r][c] = Cell{}
			}
		}
	}
}

// lineOccupied reports whether a cell counts as occupied for line
// completion: committed placements and locked obstacles both count.
func (b *Board) lineOccupied(r, c int) bool {
	kind := b.cells[r][c].Kind
	return kind == CellOccupied || kind == CellLocked
}

// FindCompletedLines scans every row and every column independently and
// returns a descriptor per complete line. The board is not mutated.
func (b *Board) FindCompletedLines() []LineClear {
	var clears []LineClear
	for r := 0; r < b.size; r++ {
		full := true
		for c := 0; c < b.size; c++ {
			if !b.lineOccupied(r, c) {
				full = false
				break
			}
		}
		if full {
			clears = append(clears, b.lineClearAt(LineRow, r))
		}
	}
	for c := 0; c < b.size; c++ {
		full := true
		for r := 0; r < b.size; r++ {
			if !b.lineOccupied(r, c) {
				full = false
				break
			}
		}
		if full {
			clears = append(clears, b.lineClearAt(LineColumn, c))
		}
	}
	return clears
}

// lineClearAt builds the descriptor for one complete line, recording the
// colors being removed for downstream animation.
func (b *Board) lineClearAt(kind LineKind, index int) LineClear {
	clear := LineClear{Kind: kind, Index: index}
	for i := 0; i < b.size; i++ {
		pos := Position{Row: index, Col: i}
		if kind == LineColumn {
			pos = Position{Row: i, Col: index}
		}
		clear.Positions = append(clear.Positions, pos)
		clear.Colors = append(clear.Colors, b.cells[pos.Row][pos.Col].Color)
	}
	return clear
}

// ClearCompletedLines detects and clears all complete lines in one batch.
// A cell belonging to both a cleared row and a cleared column is cleared
// exactly once. Locked cells survive the clear.
func (b *Board) ClearCompletedLines() []LineClear {
	clears := b.FindCompletedLines()
	cleared := make(map[Position]bool)
	for _, clear := range clears {
		for _, pos := range clear.Positions {
			if cleared[pos] {
				continue
			}
			cleared[pos] = true
			if b.cells[pos.Row][pos.Col].Kind == CellLocked {
				continue
			}
			b.cells[pos.Row][pos.Col] = Cell{}
		}
	}
	return clears
}

// IsEmpty reports whether the board has no occupied cells. Locked obstacles
// do not count; an obstacle-only board is empty for gameplay purposes.
func (b *Board) IsEmpty() bool {
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c].Kind == CellOccupied {
				return false
			}
		}
	}
	return true
}

// CountEmpty returns the number of cells a placement could target: empty
// and preview cells.
func (b *Board) CountEmpty() int {
	n := 0
	for r := range b.cells {
		for c := range b.cells[r] {
			kind := b.cells[r][c].Kind
			if kind == CellEmpty || kind == CellPreview {
				n++
			}
		}
	}
	return n
}

// LoadObstacles paints locked cells. Locked cells are produced only by this
// external loader, never by normal placement, and persist across Reset.
func (b *Board) LoadObstacles(positions []Position, color PieceColor) error {
	for _, pos := range positions {
		if !b.InBounds(pos) {
			return fmt.Errorf("obstacle (%d,%d): %w", pos.Row, pos.Col, ErrOutOfBounds)
		}
	}
	for _, pos := range positions {
		b.cells[pos.Row][pos.Col] = Cell{Kind: CellLocked, Color: color}
	}
	return nil
}

// Reset reinitializes every cell to empty except locked obstacles, which
// persist for the lifetime of the level.
func (b *Board) Reset() {
	for r := range b.cells {
		for c := range b.cells[r] {
			if b.cells[r][c].Kind != CellLocked {
				b.cells[r][c] = Cell{}
			}
		}
	}
}

// Cells returns a copy of the grid for renderers and persistence.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.size)
	for r := range b.cells {
		out[r] = make([]Cell, b.size)
		copy(out[r], b.cells[r])
	}
	return out
}

// setCell restores a single cell from a snapshot.
func (b *Board) setCell(pos Position, cell Cell) {
	if b.InBounds(pos) {
		b.cells[pos.Row][pos.Col] = cell
	}
}
