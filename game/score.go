package game

// Breakdown itemizes the points awarded for one committed placement.
type Breakdown struct {
	// PlacementPoints is one point per placed cell.
	PlacementPoints int
	// ClearPoints is the line bonus before the simultaneity multiplier.
	ClearPoints int
	// Multiplier is the number of simultaneously cleared lines (1 when no
	// lines cleared, so Total stays additive).
	Multiplier int
	// BoardClearBonus rewards emptying the whole board.
	BoardClearBonus int
	// Total is the delta applied to the session score.
	Total int
}

const (
	pointsPerLineFactor = 10
	boardClearBonus     = 100
)

// ScorePlacement computes the breakdown for a placement on a boardSize
// board: cellsPlaced cells committed, linesCleared lines completed, and
// whether the placement emptied the board.
func ScorePlacement(boardSize, cellsPlaced, linesCleared int, boardCleared bool) Breakdown {
	bd := Breakdown{
		PlacementPoints: cellsPlaced,
		Multiplier:      1,
	}
	if linesCleared > 0 {
		bd.ClearPoints = linesCleared * boardSize * pointsPerLineFactor
		bd.Multiplier = linesCleared
	}
	if boardCleared {
		bd.BoardClearBonus = boardClearBonus
	}
	bd.Total = bd.PlacementPoints + bd.ClearPoints*bd.Multiplier + bd.BoardClearBonus
	return bd
}

// ScoreTracker accumulates the monotonic session total and the session-best
// high score, and keeps the last breakdown for score UI and audio cues.
type ScoreTracker struct {
	total int
	high  int
	last  Breakdown
}

// NewScoreTracker creates a zeroed tracker.
func NewScoreTracker() *ScoreTracker {
	return &ScoreTracker{}
}

// Record applies a breakdown to the session total and updates the high
// score.
func (s *ScoreTracker) Record(bd Breakdown) {
	s.total += bd.Total
	s.last = bd
	if s.total > s.high {
		s.high = s.total
	}
}

// Total returns the session score.
func (s *ScoreTracker) Total() int { return s.total }

// HighScore returns the best session total seen.
func (s *ScoreTracker) HighScore() int { return s.high }

// LastBreakdown returns the breakdown of the most recent placement.
func (s *ScoreTracker) LastBreakdown() Breakdown { return s.last }

// ResetSession zeroes the session total but keeps the high score.
func (s *ScoreTracker) ResetSession() {
	s.total = 0
	s.last = Breakdown{}
}

// restore reloads persisted totals.
func (s *ScoreTracker) restore(total, high int) {
	s.total = total
	s.high = high
	if s.total > s.high {
		s.high = s.total
	}
}
