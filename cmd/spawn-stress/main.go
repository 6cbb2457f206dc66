// Command spawn-stress plays blockfit against itself to exercise the spawn
// engine and report survivability and hand-quality statistics for tuning.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/blockfit/game"
)

func main() {
	games := flag.Int("games", 100, "Number of self-play games to run.")
	boardSize := flag.Int("board", 10, "Board dimension.")
	maxPlacements := flag.Int("max-placements", 500, "Placement cap per game.")
	seed := flag.Uint64("seed", 1, "Base random seed; game i uses seed+i.")
	tuningPath := flag.String("tuning", "", "Optional YAML tuning override.")
	verbose := flag.Bool("verbose", false, "Log every spawn-engine decision.")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	tuning := game.DefaultTuning()
	if *tuningPath != "" {
		data, err := os.ReadFile(*tuningPath)
		if err != nil {
			sugar.Fatalf("read tuning: %v", err)
		}
		tuning, err = game.LoadTuning(data)
		if err != nil {
			sugar.Fatalf("load tuning: %v", err)
		}
		sugar.Infof("loaded tuning override from %s", *tuningPath)
	}

	report := &Report{
		Games:         *games,
		BoardSize:     *boardSize,
		MaxPlacements: *maxPlacements,
		Seed:          *seed,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	sugar.Infof("running %d self-play games on a %dx%d board...", *games, *boardSize, *boardSize)
	for i := 0; i < *games; i++ {
		opts := []game.EngineOption{
			game.WithRand(rand.New(rand.NewPCG(*seed+uint64(i), *seed+uint64(i)+1))),
			game.WithTuning(tuning),
		}
		if *verbose {
			opts = append(opts, game.WithLogger(logger))
		}
		result := playGame(*boardSize, *maxPlacements, opts)
		report.Record(result)
	}

	report.TotalTime = time.Since(start)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	sugar.Info("simulation finished")
	fmt.Println("\n--- Spawn Stress Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		sugar.Fatalf("generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// gameResult summarizes one self-play game.
type gameResult struct {
	Placements  int
	Score       int
	DeadDeal    bool
	ClearsPer10 float64
	HandScores  []int
}

// playGame runs one greedy self-play session: every turn the policy commits
// the placement with the most simultaneous clears among all hand pieces and
// origins, breaking ties in scan order.
func playGame(boardSize, maxPlacements int, opts []game.EngineOption) gameResult {
	g := game.NewGame(boardSize, opts...)
	res := gameResult{HandScores: []int{g.Telemetry().LastHandScore}}

	for res.Placements < maxPlacements {
		slot, origin, ok := bestMove(g)
		if !ok {
			res.DeadDeal = g.Telemetry().DeadDeal
			break
		}
		placed, err := g.PlaceFromSlot(slot, origin)
		if err != nil {
			break
		}
		res.Placements++
		if placed.HandRefilled {
			res.HandScores = append(res.HandScores, g.Telemetry().LastHandScore)
		}
	}

	res.Score = g.Score().Total()
	res.ClearsPer10 = g.Telemetry().ClearsPer10
	return res
}

// bestMove scans every hand piece and origin for the legal placement that
// completes the most lines.
func bestMove(g *game.Game) (int, game.Position, bool) {
	board := g.Board()
	bestSlot, bestOrigin := -1, game.Position{}
	bestClears := -1

	for slot, piece := range g.Hand().Slots {
		if piece == nil {
			continue
		}
		cells := piece.Cells()
		for r := 0; r <= board.Size()-cells.Height(); r++ {
			for c := 0; c <= board.Size()-cells.Width(); c++ {
				origin := game.Position{Row: r, Col: c}
				if game.FitAt(board, cells, origin) != nil {
					continue
				}
				clears := wouldClear(board, game.PatternCells(cells, origin))
				if clears > bestClears {
					bestSlot, bestOrigin, bestClears = slot, origin, clears
				}
			}
		}
	}
	return bestSlot, bestOrigin, bestSlot >= 0
}

// wouldClear counts the lines a placement would complete, reading board
// state through the public cell accessors.
func wouldClear(board *game.Board, placed []game.Position) int {
	placedSet := make(map[game.Position]bool, len(placed))
	rows := make(map[int]bool)
	cols := make(map[int]bool)
	for _, pos := range placed {
		placedSet[pos] = true
		rows[pos.Row] = true
		cols[pos.Col] = true
	}
	occupied := func(pos game.Position) bool {
		if placedSet[pos] {
			return true
		}
		kind := board.At(pos).Kind
		return kind == game.CellOccupied || kind == game.CellLocked
	}

	clears := 0
	for r := range rows {
		full := true
		for c := 0; c < board.Size(); c++ {
			if !occupied(game.Position{Row: r, Col: c}) {
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
		for r := 0; r < board.Size(); r++ {
			if !occupied(game.Position{Row: r, Col: c}) {
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
