package game

// PatternCells translates a pattern's occupied cells to board positions
// with the pattern's top-left corner at origin.
func PatternCells(p Pattern, origin Position) []Position {
	cells := p.Cells()
	for i := range cells {
		cells[i].Row += origin.Row
		cells[i].Col += origin.Col
	}
	return cells
}

// FitAt validates placing a pattern with its top-left corner at origin:
// bounding-box fit first, then per-cell occupancy.
func FitAt(b *Board, p Pattern, origin Position) error {
	if !p.Valid() {
		return ErrInvalidPattern
	}
	if origin.Row < 0 || origin.Col < 0 ||
		origin.Row+p.Height() > b.Size() || origin.Col+p.Width() > b.Size() {
		return ErrOutOfBounds
	}
	for _, pos := range PatternCells(p, origin) {
		if !b.CanPlace(pos) {
			return ErrCollision
		}
	}
	return nil
}

// FirstFit scans every candidate origin in row-major order and returns the
// first legal placement.
func FirstFit(b *Board, p Pattern) (Position, bool) {
	if !p.Valid() {
		return Position{}, false
	}
	maxRow := b.Size() - p.Height()
	maxCol := b.Size() - p.Width()
	for r := 0; r <= maxRow; r++ {
		for c := 0; c <= maxCol; c++ {
			origin := Position{Row: r, Col: c}
			if FitAt(b, p, origin) == nil {
				return origin, true
			}
		}
	}
	return Position{}, false
}

// FitsAnywhere reports whether the pattern has at least one legal placement.
func FitsAnywhere(b *Board, p Pattern) bool {
	_, ok := FirstFit(b, p)
	return ok
}

// AnyOrientationFits reports whether any orientation of a catalog shape has
// a legal placement, returning the first fitting orientation index.
func AnyOrientationFits(b *Board, def *ShapeDef) (int, bool) {
	for i, variant := range def.Variants() {
		if FitsAnywhere(b, variant) {
			return i, true
		}
	}
	return 0, false
}
