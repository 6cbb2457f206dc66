package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfit/game"
)

// BoardViewer renders the cell grid as a glyph map plus per-line fullness
// metrics.
type BoardViewer struct {
	showMetrics bool
}

// Render draws the board window.
func (bv *BoardViewer) Render(b *game.Board) {
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	size := b.Size()
	imgui.Text(fmt.Sprintf("Size: %dx%d  Empty: %d", size, size, b.CountEmpty()))
	imgui.Separator()

	row := make([]byte, size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			row[c] = cellGlyph(b.At(game.Position{Row: r, Col: c}))
		}
		imgui.Text(string(row))
	}

	imgui.Separator()
	imgui.Checkbox("Line metrics", &bv.showMetrics)
	if bv.showMetrics {
		m := game.Analyze(b)
		imgui.Text(fmt.Sprintf("One-gap lines: %d", m.LinesOneGap))
		imgui.Text(fmt.Sprintf("Two-gap lines: %d", m.LinesTwoGaps))
		imgui.Text(fmt.Sprintf("Near-complete lines: %d", m.LinesNearComplete))

		if imgui.TreeNodeStr("Per-line empties") {
			const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
			if imgui.BeginTableV("LineTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
				imgui.TableSetupColumn("Index")
				imgui.TableSetupColumn("Row empties")
				imgui.TableSetupColumn("Col empties")
				imgui.TableHeadersRow()
				for i := 0; i < size; i++ {
					imgui.TableNextRow()
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", i))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", m.RowEmpty[i]))
					imgui.TableNextColumn()
					imgui.Text(fmt.Sprintf("%d", m.ColEmpty[i]))
				}
				imgui.EndTable()
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}
