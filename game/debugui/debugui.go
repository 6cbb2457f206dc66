// Package debugui provides immediate-mode Dear ImGui panels for inspecting
// a running blockfit game: the board grid, the current hand, and the spawn
// engine's weights, bags and telemetry.
package debugui

import "github.com/plus3/blockfit/game"

// Panels bundles every debug panel over one game instance.
type Panels struct {
	Board     BoardViewer
	Hand      HandInspector
	Telemetry SpawnTelemetryPanel
}

// NewPanels creates the full panel set.
func NewPanels() *Panels {
	return &Panels{
		Telemetry: NewSpawnTelemetryPanel(120),
	}
}

// Render draws all panels for the current frame.
func (p *Panels) Render(g *game.Game) {
	p.Board.Render(g.Board())
	p.Hand.Render(g)
	p.Telemetry.Render(g.Engine())
}

// cellGlyph maps a cell to its one-character board-viewer representation.
func cellGlyph(cell game.Cell) byte {
	switch cell.Kind {
	case game.CellOccupied:
		return '#'
	case game.CellLocked:
		return 'X'
	case game.CellPreview:
		return '+'
	default:
		return '.'
	}
}
