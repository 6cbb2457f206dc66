package main

import (
	"io"
	"runtime"
	"text/template"
	"time"
)

// Report aggregates self-play results across every game of a run.
type Report struct {
	// Configuration
	Games         int
	BoardSize     int
	MaxPlacements int
	Seed          uint64

	// Results
	TotalTime       time.Duration
	TotalPlacements int
	DeadDeals       int
	CappedGames     int
	Placements      Stats
	Scores          Stats
	HandScores      Stats
	AvgClearsPer10  float64
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats

	clearsPer10Sum float64
}

// Stats accumulates integer samples with min/max/avg.
type Stats struct {
	Min     int
	Max     int
	Avg     float64
	Samples []int
}

// Add appends one sample.
func (s *Stats) Add(sample int) {
	s.Samples = append(s.Samples, sample)
}

// Finalize computes the summary values.
func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	total := 0
	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = float64(total) / float64(len(s.Samples))
}

// Record folds one game's result into the report.
func (r *Report) Record(res gameResult) {
	r.TotalPlacements += res.Placements
	r.Placements.Add(res.Placements)
	r.Scores.Add(res.Score)
	for _, hs := range res.HandScores {
		r.HandScores.Add(hs)
	}
	r.clearsPer10Sum += res.ClearsPer10
	if res.DeadDeal {
		r.DeadDeals++
	}
	if res.Placements >= r.MaxPlacements {
		r.CappedGames++
	}
}

// Finalize computes the aggregate statistics after all games ran.
func (r *Report) Finalize() {
	r.Placements.Finalize()
	r.Scores.Finalize()
	r.HandScores.Finalize()
	if r.Games > 0 {
		r.AvgClearsPer10 = r.clearsPer10Sum / float64(r.Games)
	}
}

// Generate renders the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Spawn Stress Report

## Configuration
- **Games:** {{.Games}}
- **Board:** {{.BoardSize}}x{{.BoardSize}}
- **Placement Cap:** {{.MaxPlacements}}
- **Base Seed:** {{.Seed}}

## Survivability
- **Total Placements:** {{.TotalPlacements}}
- **Placements per Game:** avg {{printf "%.1f" .Placements.Avg}} (min {{.Placements.Min}}, max {{.Placements.Max}})
- **Games Reaching Cap:** {{.CappedGames}}
- **Dead Deals (terminal no-moves):** {{.DeadDeals}}
- **Avg Clears per 10 Placements:** {{printf "%.2f" .AvgClearsPer10}}

## Scoring
- **Score per Game:** avg {{printf "%.0f" .Scores.Avg}} (min {{.Scores.Min}}, max {{.Scores.Max}})

## Hand Quality (diagnostic score)
- **Avg:** {{printf "%.1f" .HandScores.Avg}}
- **Min:** {{.HandScores.Min}}
- **Max:** {{.HandScores.Max}}

## Run
- **Total Time:** {{.TotalTime}}
- Heap Alloc: {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Num GC:    {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
