package game

// MaxSimultaneousClears returns the best number of lines a piece could
// complete in a single placement anywhere on the board, without mutating it.
//
// The search early-exits the moment any placement achieves 2 or more
// simultaneous clears: the spawn guarantees only need to distinguish zero
// from nonzero and multi-clear hands, so the reported value is a lower bound
// on the true maximum when 3+ clears are achievable elsewhere.
func MaxSimultaneousClears(b *Board, piece *Piece) int {
	return maxClearsForPattern(b, piece.Cells())
}

func maxClearsForPattern(b *Board, p Pattern) int {
	if !p.Valid() {
		return 0
	}
	best := 0
	maxRow := b.Size() - p.Height()
	maxCol := b.Size() - p.Width()
	for r := 0; r <= maxRow; r++ {
		for c := 0; c <= maxCol; c++ {
			origin := Position{Row: r, Col: c}
			if FitAt(b, p, origin) != nil {
				continue
			}
			clears := simulateClears(b, PatternCells(p, origin))
			if clears > best {
				best = clears
			}
			if best >= 2 {
				return best
			}
		}
	}
	return best
}

// simulateClears counts the lines that would become fully occupied if the
// given cells were placed. Only the lines touched by the placement can
// complete, so the scan is restricted to those.
func simulateClears(b *Board, placed []Position) int {
	placedSet := make(map[Position]bool, len(placed))
	rows := make(map[int]bool)
	cols := make(map[int]bool)
	for _, pos := range placed {
		placedSet[pos] = true
		rows[pos.Row] = true
		cols[pos.Col] = true
	}

	occupied := func(pos Position) bool {
		if placedSet[pos] {
			return true
		}
		kind := b.At(pos).Kind
		return kind == CellOccupied || kind == CellLocked
	}

	clears := 0
	for r := range rows {
		full := true
		for c := 0; c < b.Size(); c++ {
			if !occupied(Position{Row: r, Col: c}) {
				full = false
				break
			}
		}
		if full {
			clears++
		}
	}
	for c := range cols {
		full := true
		for r := 0; r < b.Size(); r++ {
			if !occupied(Position{Row: r, Col: c}) {
				full = false
				break
			}
		}
		if full {
			clears++
		}
	}
	return clears
}
