package game

import "errors"

// Placement failure taxonomy. Callers match these with errors.Is; wrapped
// errors carry the offending position for diagnostics.
var (
	// ErrOutOfBounds reports a target cell outside the board.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrCollision reports a target cell that is already occupied or locked.
	ErrCollision = errors.New("cell already occupied")
	// ErrInvalidPattern reports a shape pattern with no occupied cells or
	// ragged rows.
	ErrInvalidPattern = errors.New("invalid shape pattern")
	// ErrNoValidPosition reports an exhaustive search that found no legal
	// placement.
	ErrNoValidPosition = errors.New("no valid position")
	// ErrEmptySlot reports a command addressed to a consumed hand slot.
	ErrEmptySlot = errors.New("hand slot is empty")
)
