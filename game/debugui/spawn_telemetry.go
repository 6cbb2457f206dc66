package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfit/game"
)

// SpawnTelemetryPanel renders the spawn engine's live state: stage, streak,
// effective category weights, bag contents and a rolling clears-per-10
// history.
type SpawnTelemetryPanel struct {
	historyLen   int
	clearHistory []float32
	historyIndex int
}

// NewSpawnTelemetryPanel creates a panel keeping historyLen samples of the
// clears-per-10 metric.
func NewSpawnTelemetryPanel(historyLen int) SpawnTelemetryPanel {
	return SpawnTelemetryPanel{
		historyLen:   historyLen,
		clearHistory: make([]float32, historyLen),
	}
}

// Render draws the telemetry window and records one history sample.
func (sp *SpawnTelemetryPanel) Render(e *game.SpawnEngine) {
	if !imgui.BeginV("Spawn Telemetry", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	tel := e.Telemetry()
	sp.clearHistory[sp.historyIndex] = float32(tel.ClearsPer10)
	sp.historyIndex = (sp.historyIndex + 1) % sp.historyLen

	imgui.Text(fmt.Sprintf("Placements: %d  Hands dealt: %d", tel.PlacementsMade, tel.HandsDealt))
	imgui.Text(fmt.Sprintf("Stage: %s  Streak: %t", tel.Stage, tel.StreakActive))
	imgui.Text(fmt.Sprintf("Hand has fit: %t  Dead deal: %t", tel.HandHasFit, tel.DeadDeal))
	imgui.Text(fmt.Sprintf("Last hand score: %d", tel.LastHandScore))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Clears per 10 placements: %.2f", tel.ClearsPer10))
	imgui.PlotLinesFloatPtr("##clears", &sp.clearHistory[0], int32(len(sp.clearHistory)))

	imgui.Separator()
	if imgui.TreeNodeStr("Category weights") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("WeightTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Category")
			imgui.TableSetupColumn("Effective weight")
			imgui.TableHeadersRow()
			for _, cw := range e.CategoryWeights() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(cw.Category.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.2f", cw.Weight))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Bags") {
		for _, cat := range game.Categories() {
			bag := e.BagContents(cat)
			if len(bag) == 0 {
				imgui.BulletText(fmt.Sprintf("%s: empty", cat))
				continue
			}
			names := ""
			for i, id := range bag {
				def, ok := game.CatalogShape(id)
				if !ok {
					continue
				}
				if i > 0 {
					names += ", "
				}
				names += def.Name
			}
			imgui.BulletText(fmt.Sprintf("%s: %s", cat, names))
		}
		imgui.TreePop()
	}

	imgui.End()
}
