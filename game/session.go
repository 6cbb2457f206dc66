package game

import "fmt"

// PlacementResult reports everything a committed placement changed, for
// render, animation and audio collaborators.
type PlacementResult struct {
	// Positions are the cells the piece occupied.
	Positions []Position
	// Clears describes every line completed by the placement.
	Clears []LineClear
	// Breakdown itemizes the score delta.
	Breakdown Breakdown
	// BoardCleared is set when the placement emptied the whole board.
	BoardCleared bool
	// HandRefilled is set when consuming the slot emptied the hand and a
	// new hand was dealt.
	HandRefilled bool
}

// Game wires the board, spawn engine, score tracker and hand into the
// turn-based pipeline external collaborators drive. All methods are
// synchronous; callers serialize access to a single writer.
type Game struct {
	board  *Board
	engine *SpawnEngine
	score  *ScoreTracker
	hand   *Hand
}

// NewGame creates a boardSize x boardSize game, attaches a spawn engine
// built from opts and deals the opening hand.
func NewGame(boardSize int, opts ...EngineOption) *Game {
	g := &Game{
		board:  NewBoard(boardSize),
		engine: NewSpawnEngine(opts...),
		score:  NewScoreTracker(),
	}
	g.engine.Attach(g.board)
	g.hand = g.engine.GenerateHand()
	return g
}

// Board exposes the cell grid for rendering and previews.
func (g *Game) Board() *Board { return g.board }

// Hand returns the current tray contents.
func (g *Game) Hand() *Hand { return g.hand }

// Score exposes the score tracker.
func (g *Game) Score() *ScoreTracker { return g.score }

// Engine exposes the spawn engine for telemetry and catalog restriction.
func (g *Game) Engine() *SpawnEngine { return g.engine }

// Telemetry returns the spawn telemetry snapshot.
func (g *Game) Telemetry() Telemetry { return g.engine.Telemetry() }

// slotPiece validates a slot index and returns its piece.
func (g *Game) slotPiece(slot int) (*Piece, error) {
	if slot < 0 || slot >= HandSize {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrOutOfBounds)
	}
	piece := g.hand.Slots[slot]
	if piece == nil {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrEmptySlot)
	}
	return piece, nil
}

// Preview paints a placement ghost for a hand piece at origin. Stale ghosts
// from a previous preview are cleared first.
func (g *Game) Preview(slot int, origin Position) error {
	piece, err := g.slotPiece(slot)
	if err != nil {
		return err
	}
	g.board.ClearPreviews()
	cells := piece.Cells()
	if err := FitAt(g.board, cells, origin); err != nil {
		return err
	}
	return g.board.SetPreview(PatternCells(cells, origin), piece.Color)
}

// PlaceFromSlot commits a hand piece at origin: validate, place, clear
// completed lines, score, record the outcome with the spawn engine, consume
// the slot and refill the hand once all slots are empty. On any validation
// failure nothing is mutated.
func (g *Game) PlaceFromSlot(slot int, origin Position) (*PlacementResult, error) {
	piece, err := g.slotPiece(slot)
	if err != nil {
		return nil, err
	}

	cells := piece.Cells()
	if err := FitAt(g.board, cells, origin); err != nil {
		return nil, err
	}

	g.board.ClearPreviews()
	positions := PatternCells(cells, origin)
	if err := g.board.PlaceShape(positions, piece.Color); err != nil {
		return nil, err
	}

	clears := g.board.ClearCompletedLines()
	boardCleared := len(clears) > 0 && g.board.IsEmpty()

	breakdown := ScorePlacement(g.board.Size(), len(positions), len(clears), boardCleared)
	g.score.Record(breakdown)
	g.engine.RecordPlacement(len(clears), boardCleared)

	g.hand.Slots[slot] = nil
	result := &PlacementResult{
		Positions:    positions,
		Clears:       clears,
		Breakdown:    breakdown,
		BoardCleared: boardCleared,
	}
	if g.hand.IsEmpty() {
		g.hand = g.engine.GenerateHand()
		result.HandRefilled = true
	}
	return result, nil
}

// ConsumeSlot empties a slot without scoring, refilling the hand when all
// slots are gone. External collaborators use this for power-ups that
// discard pieces.
func (g *Game) ConsumeSlot(slot int) error {
	if _, err := g.slotPiece(slot); err != nil {
		return err
	}
	g.hand.Slots[slot] = nil
	if g.hand.IsEmpty() {
		g.hand = g.engine.GenerateHand()
	}
	return nil
}

// Reset reinitializes the session: the board empties (locked obstacles
// persist), the spawn engine's progression resets, the session score zeroes
// while the high score survives, and a fresh hand is dealt.
func (g *Game) Reset() {
	g.board.Reset()
	g.engine.Reset()
	g.score.ResetSession()
	g.hand = g.engine.GenerateHand()
}

// RestrictCatalog forwards an external allow-list to the spawn engine. The
// current hand is unaffected; the restriction applies from the next deal.
func (g *Game) RestrictCatalog(ids []ShapeID) {
	g.engine.RestrictCatalog(ids)
}
