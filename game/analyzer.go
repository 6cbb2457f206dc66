package game

// Metrics summarizes board fullness for spawn weighting. It is a pure
// function of board state, O(N^2), recomputed fresh every hand cycle.
type Metrics struct {
	// RowEmpty and ColEmpty hold the empty-cell count per row and column.
	RowEmpty []int
	ColEmpty []int
	// LinesOneGap counts lines (rows and columns) with exactly one empty
	// cell; LinesTwoGaps with exactly two; LinesNearComplete with 3 to 5.
	LinesOneGap       int
	LinesTwoGaps      int
	LinesNearComplete int
	// TotalEmpty is the number of placeable cells on the whole board.
	TotalEmpty int
}

// Analyze computes fullness metrics from the board. Preview cells count as
// empty; locked cells count as occupied.
func Analyze(b *Board) Metrics {
	size := b.Size()
	m := Metrics{
		RowEmpty: make([]int, size),
		ColEmpty: make([]int, size),
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if b.CanPlace(Position{Row: r, Col: c}) {
				m.RowEmpty[r]++
				m.ColEmpty[c]++
				m.TotalEmpty++
			}
		}
	}
	bucket := func(empty int) {
		switch {
		case empty == 1:
			m.LinesOneGap++
		case empty == 2:
			m.LinesTwoGaps++
		case empty >= 3 && empty <= 5:
			m.LinesNearComplete++
		}
	}
	for r := 0; r < size; r++ {
		bucket(m.RowEmpty[r])
	}
	for c := 0; c < size; c++ {
		bucket(m.ColEmpty[c])
	}
	return m
}
