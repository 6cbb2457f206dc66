package game

import "fmt"

// The snapshot types define the persisted schema. An external persistence
// collaborator chooses the encoding; the JSON tags cover the common case.
// Empty hand slots are recorded as absent, and only non-empty board cells
// are serialized.

// CellSnapshot is one non-empty board cell.
type CellSnapshot struct {
	Row   int        `json:"row"`
	Col   int        `json:"col"`
	Kind  CellKind   `json:"kind"`
	Color PieceColor `json:"color"`
}

// SlotSnapshot is one occupied hand slot.
type SlotSnapshot struct {
	Slot        int        `json:"slot"`
	Shape       ShapeID    `json:"shape"`
	Orientation int        `json:"orientation"`
	Color       PieceColor `json:"color"`
}

// ScoreSnapshot holds the persisted score totals.
type ScoreSnapshot struct {
	Total     int `json:"total"`
	HighScore int `json:"highScore"`
}

// SpawnSnapshot persists spawn-engine progression so the stage and streak
// survive a reload.
type SpawnSnapshot struct {
	PlacementsMade int   `json:"placementsMade"`
	TotalClears    int   `json:"totalClears"`
	RecentClears   []int `json:"recentClears,omitempty"`
}

// GameSnapshot is the full persisted game state.
type GameSnapshot struct {
	BoardSize int            `json:"boardSize"`
	Cells     []CellSnapshot `json:"cells,omitempty"`
	Hand      []SlotSnapshot `json:"hand,omitempty"`
	Score     ScoreSnapshot  `json:"score"`
	Spawn     SpawnSnapshot  `json:"spawn"`
}

// Snapshot captures the current game state. Preview cells are scratch state
// and are not persisted.
func (g *Game) Snapshot() GameSnapshot {
	snap := GameSnapshot{
		BoardSize: g.board.Size(),
		Score:     ScoreSnapshot{Total: g.score.Total(), HighScore: g.score.HighScore()},
		Spawn: SpawnSnapshot{
			PlacementsMade: g.engine.placementsMade,
			TotalClears:    g.engine.totalClears,
			RecentClears:   append([]int(nil), g.engine.recentClears...),
		},
	}
	for r := 0; r < g.board.Size(); r++ {
		for c := 0; c < g.board.Size(); c++ {
			cell := g.board.At(Position{Row: r, Col: c})
			if cell.Kind == CellEmpty || cell.Kind == CellPreview {
				continue
			}
			snap.Cells = append(snap.Cells, CellSnapshot{Row: r, Col: c, Kind: cell.Kind, Color: cell.Color})
		}
	}
	for i, piece := range g.hand.Slots {
		if piece == nil {
			continue
		}
		snap.Hand = append(snap.Hand, SlotSnapshot{
			Slot:        i,
			Shape:       piece.ID,
			Orientation: piece.Orientation,
			Color:       piece.Color,
		})
	}
	return snap
}

// RestoreGame rebuilds a game from a snapshot. The spawn engine options
// (rng, logger, tuning) are supplied fresh; progression counters, board
// cells, score and hand come from the snapshot. A snapshot with an empty
// hand deals a fresh one, matching the refill contract.
func RestoreGame(snap GameSnapshot, opts ...EngineOption) (*Game, error) {
	if snap.BoardSize <= 0 {
		return nil, fmt.Errorf("snapshot board size %d: %w", snap.BoardSize, ErrInvalidPattern)
	}
	g := &Game{
		board:  NewBoard(snap.BoardSize),
		engine: NewSpawnEngine(opts...),
		score:  NewScoreTracker(),
	}
	g.engine.Attach(g.board)

	for _, cell := range snap.Cells {
		pos := Position{Row: cell.Row, Col: cell.Col}
		if !g.board.InBounds(pos) {
			return nil, fmt.Errorf("snapshot cell (%d,%d): %w", cell.Row, cell.Col, ErrOutOfBounds)
		}
		g.board.setCell(pos, Cell{Kind: cell.Kind, Color: cell.Color})
	}

	g.score.restore(snap.Score.Total, snap.Score.HighScore)
	g.engine.restoreProgress(snap.Spawn.PlacementsMade, snap.Spawn.TotalClears, snap.Spawn.RecentClears)

	hand := &Hand{}
	for _, slot := range snap.Hand {
		if slot.Slot < 0 || slot.Slot >= HandSize {
			return nil, fmt.Errorf("snapshot hand slot %d: %w", slot.Slot, ErrOutOfBounds)
		}
		piece, ok := NewPiece(slot.Shape, slot.Orientation, slot.Color)
		if !ok {
			return nil, fmt.Errorf("snapshot hand shape %d: %w", slot.Shape, ErrInvalidPattern)
		}
		hand.Slots[slot.Slot] = piece
	}
	if hand.IsEmpty() {
		g.hand = g.engine.GenerateHand()
	} else {
		g.hand = hand
	}
	return g, nil
}
