package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfit/game"
)

// HandInspector renders the tray contents with per-piece fit and clearing
// potential against the current board.
type HandInspector struct{}

// Render draws the hand window.
func (hi *HandInspector) Render(g *game.Game) {
	if !imgui.BeginV("Hand", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("HandTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Shape")
		imgui.TableSetupColumn("Cells")
		imgui.TableSetupColumn("Color")
		imgui.TableSetupColumn("Fits")
		imgui.TableSetupColumn("Potential")
		imgui.TableHeadersRow()

		for i, piece := range g.Hand().Slots {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", i))
			if piece == nil {
				imgui.TableNextColumn()
				imgui.Text("-")
				continue
			}
			def := piece.Def()
			imgui.TableNextColumn()
			imgui.Text(def.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", def.CellCount()))
			imgui.TableNextColumn()
			imgui.Text(piece.Color.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", game.FitsAnywhere(g.Board(), piece.Cells())))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", game.MaxSimultaneousClears(g.Board(), piece)))
		}
		imgui.EndTable()
	}

	for i, piece := range g.Hand().Slots {
		if piece == nil {
			continue
		}
		if imgui.TreeNodeStr(fmt.Sprintf("Slot %d footprint", i)) {
			cells := piece.Cells()
			line := make([]byte, cells.Width())
			for r := 0; r < cells.Height(); r++ {
				for c := 0; c < cells.Width(); c++ {
					line[c] = '.'
					if cells[r][c] {
						line[c] = '#'
					}
				}
				imgui.Text(string(line))
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}
