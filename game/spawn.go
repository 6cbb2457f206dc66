package game

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// clearWindow is the rolling window of per-placement clear counts used for
// streak detection.
const clearWindow = 3

// noFitSentinel is the diagnostic hand score for a hand with no legal
// placement.
const noFitSentinel = -1000

// Telemetry is a read-only snapshot of spawn-engine state for debug and
// tuning surfaces.
type Telemetry struct {
	HandsDealt     int
	PlacementsMade int
	Stage          Stage
	StreakActive   bool
	HandHasFit     bool
	DeadDeal       bool
	ClearsPer10    float64
	LastHandScore  int
}

// CategoryWeight pairs a category with its current effective spawn weight.
type CategoryWeight struct {
	Category Category
	Weight   float64
}

// EngineOption configures a SpawnEngine at construction.
type EngineOption func(*SpawnEngine)

// WithRand injects the random source. Tests pass a seeded rand to make
// shuffles, roulette draws and orientation picks deterministic.
func WithRand(r *rand.Rand) EngineOption {
	return func(e *SpawnEngine) { e.rng = r }
}

// WithLogger injects a structured logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *SpawnEngine) { e.log = l }
}

// WithTuning overrides the default spawn tables.
func WithTuning(t Tuning) EngineOption {
	return func(e *SpawnEngine) { e.tuning = t }
}

// SpawnEngine deals hands of pieces weighted by live board analysis. It
// holds a non-owning reference to the board it reads: the engine never
// mutates board state, and the board can be reset or swapped independently
// via Attach.
type SpawnEngine struct {
	board  *Board
	rng    *rand.Rand
	log    *zap.Logger
	tuning Tuning

	placementsMade int
	totalClears    int
	recentClears   []int
	bags           map[Category][]ShapeID
	allowed        map[ShapeID]bool

	handsDealt    int
	lastHandFit   bool
	lastDeadDeal  bool
	lastHandScore int
}

// NewSpawnEngine creates an engine with the default tuning, a time-seeded
// PCG random source and a no-op logger. The engine is unusable until a
// board is attached.
func NewSpawnEngine(opts ...EngineOption) *SpawnEngine {
	e := &SpawnEngine{
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		log:    zap.NewNop(),
		tuning: DefaultTuning(),
		bags:   make(map[Category][]ShapeID),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Attach points the engine at a board. The reference is non-owning: the
// caller remains responsible for the board's lifecycle.
func (e *SpawnEngine) Attach(b *Board) {
	e.board = b
}

// Tuning returns the active tuning tables.
func (e *SpawnEngine) Tuning() Tuning { return e.tuning }

// Stage returns the difficulty phase derived from the placement count.
func (e *SpawnEngine) Stage() Stage {
	return e.tuning.StageFor(e.placementsMade)
}

// StreakActive reports whether at least 2 of the last 3 recorded
// per-placement clear counts reached 2 or more.
func (e *SpawnEngine) StreakActive() bool {
	hits := 0
	for _, c := range e.recentClears {
		if c >= 2 {
			hits++
		}
	}
	return hits >= 2
}

// RecordPlacement must be called after every committed placement. A board
// clear counts as clearing gridSize extra virtual lines for streak
// detection.
func (e *SpawnEngine) RecordPlacement(linesCleared int, boardCleared bool) {
	e.mustBeAttached()
	credited := linesCleared
	if boardCleared {
		credited += e.board.Size()
	}
	e.recentClears = append(e.recentClears, credited)
	if len(e.recentClears) > clearWindow {
		e.recentClears = e.recentClears[len(e.recentClears)-clearWindow:]
	}
	e.placementsMade++
	e.totalClears += linesCleared
}

// RestrictCatalog installs an external allow-list; a nil slice lifts the
// restriction. The per-category bags are rebuilt wholesale so stale draws
// cannot leak through.
func (e *SpawnEngine) RestrictCatalog(ids []ShapeID) {
	if ids == nil {
		e.allowed = nil
	} else {
		e.allowed = make(map[ShapeID]bool, len(ids))
		for _, id := range ids {
			e.allowed[id] = true
		}
	}
	e.bags = make(map[Category][]ShapeID)
}

// Reset clears all progression state: placement counter, streak window,
// telemetry and bags. The catalog restriction survives a reset; it belongs
// to level configuration, not session progress.
func (e *SpawnEngine) Reset() {
	e.placementsMade = 0
	e.totalClears = 0
	e.recentClears = nil
	e.bags = make(map[Category][]ShapeID)
	e.handsDealt = 0
	e.lastHandFit = false
	e.lastDeadDeal = false
	e.lastHandScore = 0
}

// Telemetry returns the current spawn snapshot.
func (e *SpawnEngine) Telemetry() Telemetry {
	clearsPer10 := 0.0
	if e.placementsMade > 0 {
		clearsPer10 = float64(e.totalClears) / float64(e.placementsMade) * 10
	}
	return Telemetry{
		HandsDealt:     e.handsDealt,
		PlacementsMade: e.placementsMade,
		Stage:          e.Stage(),
		StreakActive:   e.StreakActive(),
		HandHasFit:     e.lastHandFit,
		DeadDeal:       e.lastDeadDeal,
		ClearsPer10:    clearsPer10,
		LastHandScore:  e.lastHandScore,
	}
}

// BagContents returns a copy of a category's pending FIFO bag.
func (e *SpawnEngine) BagContents(cat Category) []ShapeID {
	bag := e.bags[cat]
	out := make([]ShapeID, len(bag))
	copy(out, bag)
	return out
}

// CategoryWeights computes the live effective weight per category from
// fresh board metrics. Exposed for debug and tuning surfaces.
func (e *SpawnEngine) CategoryWeights() []CategoryWeight {
	e.mustBeAttached()
	metrics := Analyze(e.board)
	cats := Categories()
	out := make([]CategoryWeight, len(cats))
	for i, cat := range cats {
		out[i] = CategoryWeight{Category: cat, Weight: e.categoryWeight(cat, metrics)}
	}
	return out
}

// GenerateHand deals a full hand: weighted generation under the attempt
// budget, smallest-shape fallback for unfilled slots, then the fit and
// clearing-opportunity guarantee passes.
func (e *SpawnEngine) GenerateHand() *Hand {
	e.mustBeAttached()
	metrics := Analyze(e.board)

	hand := &Hand{}
	filled := 0
	for attempt := 0; attempt < e.tuning.AttemptBudget && filled < HandSize; attempt++ {
		piece, ok := e.generatePiece(metrics)
		if !ok {
			continue
		}
		hand.Slots[filled] = piece
		filled++
	}
	for ; filled < HandSize; filled++ {
		hand.Slots[filled] = e.instantiate(SmallestShape())
	}

	e.ensureFit(hand)
	e.ensureClearingOpportunity(hand)
	e.recordHandTelemetry(hand)
	return hand
}

func (e *SpawnEngine) mustBeAttached() {
	if e.board == nil {
		panic("spawn engine used before Attach")
	}
}

// eligibleShapes filters a category's members by stage, streak flags and
// the external allow-list.
func (e *SpawnEngine) eligibleShapes(cat Category) []*ShapeDef {
	stage := e.Stage()
	streak := e.StreakActive()
	var out []*ShapeDef
	for _, def := range ShapesInCategory(cat) {
		if def.MinStage > stage {
			continue
		}
		if def.RequiresStreak && !streak {
			continue
		}
		if def.RewardOnly && !streak {
			continue
		}
		if e.allowed != nil && !e.allowed[def.ID] {
			continue
		}
		out = append(out, def)
	}
	return out
}

// categoryWeight computes one category's roulette weight: the sum of its
// eligible members' base weights, scaled by the stage multiplier and the
// board bias.
func (e *SpawnEngine) categoryWeight(cat Category, m Metrics) float64 {
	members := e.eligibleShapes(cat)
	if len(members) == 0 {
		return 0
	}
	sum := 0.0
	for _, def := range members {
		sum += def.BaseWeight
	}
	return sum * e.tuning.StageMultipliers[e.Stage()][cat] * e.boardBias(cat, m)
}

// boardBias boosts categories matching outstanding near-complete-line gaps.
// When total empty cells drop below the lockout threshold the bias table is
// replaced wholesale by the lockout multipliers, strongly favoring small
// categories.
func (e *SpawnEngine) boardBias(cat Category, m Metrics) float64 {
	size := e.board.Size()
	if m.TotalEmpty < size*size/e.tuning.LockoutDivisor {
		return e.tuning.LockoutMultipliers[cat]
	}
	bias := 1.0
	switch cat {
	case CategoryMono:
		bias += e.tuning.GapBoostOne * math.Min(float64(m.LinesOneGap), 4)
	case CategoryDuo:
		bias += e.tuning.GapBoostTwo * math.Min(float64(m.LinesTwoGaps), 4)
	case CategoryTrio, CategoryTetromino, CategoryPentomino:
		bias += e.tuning.GapBoostNear * math.Min(float64(m.LinesNearComplete), 6)
	}
	return bias
}

// generatePiece selects a category by cumulative-weight roulette, draws the
// next shape from its bag and instantiates it with a uniformly random
// orientation and color.
func (e *SpawnEngine) generatePiece(m Metrics) (*Piece, bool) {
	cats := Categories()
	weights := make([]float64, len(cats))
	total := 0.0
	for i, cat := range cats {
		weights[i] = e.categoryWeight(cat, m)
		total += weights[i]
	}
	if total <= 0 {
		return nil, false
	}

	roll := e.rng.Float64() * total
	chosen := cats[len(cats)-1]
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		roll -= w
		chosen = cats[i]
		if roll < 0 {
			break
		}
	}

	def, ok := e.drawFromBag(chosen)
	if !ok {
		return nil, false
	}
	return e.instantiate(def), true
}

// drawFromBag pops the front of a category's FIFO bag, refilling it on
// exhaustion.
func (e *SpawnEngine) drawFromBag(cat Category) (*ShapeDef, bool) {
	bag := e.bags[cat]
	if len(bag) == 0 {
		bag = e.refillBag(cat)
		if len(bag) == 0 {
			return nil, false
		}
	}
	id := bag[0]
	e.bags[cat] = bag[1:]
	return CatalogShape(id)
}

// refillBag shuffles all currently-eligible members into a bag sized to the
// category's fixed capacity, repeating shuffle-append cycles when the
// eligible-member count is below capacity.
func (e *SpawnEngine) refillBag(cat Category) []ShapeID {
	eligible := e.eligibleShapes(cat)
	if len(eligible) == 0 {
		return nil
	}
	capacity := e.tuning.BagCapacity[cat]
	bag := make([]ShapeID, 0, capacity+len(eligible))
	for len(bag) < capacity {
		ids := make([]ShapeID, len(eligible))
		for i, def := range eligible {
			ids[i] = def.ID
		}
		e.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		bag = append(bag, ids...)
	}
	bag = bag[:capacity]
	e.bags[cat] = bag
	return bag
}

// instantiate builds a piece from a catalog entry with a uniformly random
// orientation and color.
func (e *SpawnEngine) instantiate(def *ShapeDef) *Piece {
	variants := def.Variants()
	return &Piece{
		ID:          def.ID,
		Orientation: e.rng.IntN(len(variants)),
		Color:       PieceColor(1 + e.rng.IntN(PieceColorCount)),
	}
}

// handHasFit reports whether any piece in the hand fits anywhere.
func (e *SpawnEngine) handHasFit(hand *Hand) bool {
	for _, piece := range hand.Pieces() {
		if FitsAnywhere(e.board, piece.Cells()) {
			return true
		}
	}
	return false
}

// ensureFit is the first guarantee pass: if no piece fits anywhere, search
// categories from smallest to largest for a replacement the validator
// accepts. Exhaustion is a genuine no-moves condition and is logged, never
// hidden; the hand is left unchanged.
func (e *SpawnEngine) ensureFit(hand *Hand) {
	if e.handHasFit(hand) {
		return
	}
	repairOrder := []Category{CategoryMono, CategoryDuo, CategoryTrio, CategoryTetromino, CategoryPentomino}
	for _, cat := range repairOrder {
		for _, def := range e.eligibleShapes(cat) {
			orient, ok := AnyOrientationFits(e.board, def)
			if !ok {
				continue
			}
			hand.Slots[0] = &Piece{
				ID:          def.ID,
				Orientation: orient,
				Color:       PieceColor(1 + e.rng.IntN(PieceColorCount)),
			}
			e.log.Debug("fit guarantee replaced a piece",
				zap.String("shape", def.Name),
				zap.Int("orientation", orient))
			return
		}
	}
	e.log.Warn("fit guarantee exhausted: no eligible shape fits the board",
		zap.Int("placements", e.placementsMade))
}

// ensureClearingOpportunity is the second guarantee pass, skipped on an
// empty board: when no piece can clear a line, one replacement is attempted
// that both fits somewhere and has positive clearing potential. Best-effort:
// when no such shape exists the hand stays unchanged.
func (e *SpawnEngine) ensureClearingOpportunity(hand *Hand) {
	if e.board.IsEmpty() {
		return
	}
	for _, piece := range hand.Pieces() {
		if MaxSimultaneousClears(e.board, piece) > 0 {
			return
		}
	}
	for _, cat := range Categories() {
		for _, def := range e.eligibleShapes(cat) {
			for orient, variant := range def.Variants() {
				if !FitsAnywhere(e.board, variant) {
					continue
				}
				if maxClearsForPattern(e.board, variant) == 0 {
					continue
				}
				// Replace the last slot so a fit-guarantee repair in
				// slot 0 survives.
				hand.Slots[HandSize-1] = &Piece{
					ID:          def.ID,
					Orientation: orient,
					Color:       PieceColor(1 + e.rng.IntN(PieceColorCount)),
				}
				e.log.Debug("clearing guarantee replaced a piece",
					zap.String("shape", def.Name),
					zap.Int("orientation", orient))
				return
			}
		}
	}
}

// recordHandTelemetry finalizes a deal: fit flag, genuine dead-deal
// detection against the full catalog, and the diagnostic hand score.
func (e *SpawnEngine) recordHandTelemetry(hand *Hand) {
	e.handsDealt++
	hasFit := e.handHasFit(hand)
	dead := false
	if !hasFit {
		dead = !e.catalogHasAnyFit()
	}
	score := e.handScore(hand)
	e.lastHandFit = hasFit
	e.lastDeadDeal = dead
	e.lastHandScore = score

	e.log.Debug("hand dealt",
		zap.Int("handScore", score),
		zap.Bool("hasFit", hasFit),
		zap.Bool("deadDeal", dead),
		zap.Stringer("stage", e.Stage()),
		zap.Bool("streak", e.StreakActive()))
	if dead {
		e.log.Warn("dead deal: no catalog shape fits the board",
			zap.Int("placements", e.placementsMade))
	}
}

// catalogHasAnyFit checks the entire catalog, ignoring eligibility, to
// distinguish a merely-bad hand from a terminal no-moves board.
func (e *SpawnEngine) catalogHasAnyFit() bool {
	for _, def := range CatalogShapes() {
		if _, ok := AnyOrientationFits(e.board, def); ok {
			return true
		}
	}
	return false
}

// handScore is the diagnostic quality score for a dealt hand. It is logged
// for tuning and never gates anything: +100 for at least one fit (or the
// -1000 sentinel without one), +40 for partial-but-not-universal clearing
// potential, +10 per extra distinct piece size, minus 10 per point of
// deviation of average complexity from the per-stage target.
func (e *SpawnEngine) handScore(hand *Hand) int {
	pieces := hand.Pieces()
	if len(pieces) == 0 {
		return noFitSentinel
	}

	anyFit := false
	clearing := 0
	sizes := make(map[int]bool)
	complexitySum := 0
	for _, piece := range pieces {
		def := piece.Def()
		if FitsAnywhere(e.board, piece.Cells()) {
			anyFit = true
		}
		if MaxSimultaneousClears(e.board, piece) > 0 {
			clearing++
		}
		sizes[def.CellCount()] = true
		complexitySum += def.Complexity
	}
	if !anyFit {
		return noFitSentinel
	}

	score := 100
	if clearing > 0 && clearing < len(pieces) {
		score += 40
	}
	score += 10 * (len(sizes) - 1)

	avg := float64(complexitySum) / float64(len(pieces))
	target := e.tuning.StageComplexityTarget[e.Stage()]
	score -= int(10 * math.Abs(avg-target))
	return score
}

// restoreProgress reloads persisted progression counters.
func (e *SpawnEngine) restoreProgress(placements, totalClears int, recent []int) {
	e.placementsMade = placements
	e.totalClears = totalClears
	e.recentClears = append([]int(nil), recent...)
	if len(e.recentClears) > clearWindow {
		e.recentClears = e.recentClears[len(e.recentClears)-clearWindow:]
	}
	e.bags = make(map[Category][]ShapeID)
}
