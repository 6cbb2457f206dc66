package game

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// Category groups catalog shapes by cell count for spawn weighting.
type Category uint8

const (
	CategoryMono Category = iota
	CategoryDuo
	CategoryTrio
	CategoryTetromino
	CategoryPentomino
	CategoryReward
	categoryCount
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMono:
		return "mono"
	case CategoryDuo:
		return "duo"
	case CategoryTrio:
		return "trio"
	case CategoryTetromino:
		return "tetromino"
	case CategoryPentomino:
		return "pentomino"
	case CategoryReward:
		return "reward"
	default:
		return "unknown"
	}
}

// Categories lists all categories ordered from smallest to largest member
// shapes. The fit-guarantee repair pass walks this order.
func Categories() []Category {
	return []Category{CategoryMono, CategoryDuo, CategoryTrio, CategoryTetromino, CategoryPentomino, CategoryReward}
}

// Stage is the coarse difficulty phase derived from the placement count.
type Stage uint8

const (
	StageEarly Stage = iota
	StageMid
	StageLate
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageEarly:
		return "early"
	case StageMid:
		return "mid"
	case StageLate:
		return "late"
	default:
		return "unknown"
	}
}

// ShapeID identifies a catalog shape. The catalog is a closed set; shapes
// are never keyed by strings.
type ShapeID uint32

const (
	ShapeMono ShapeID = iota
	ShapeDuo
	ShapeTrioLine
	ShapeTrioCorner
	ShapeTetSquare
	ShapeTetLine
	ShapeTetT
	ShapeTetL
	ShapeTetS
	ShapePentLine
	ShapePentL
	ShapePentT
	ShapePentU
	ShapePentPlus
	ShapePentZ
	ShapeRewardRect
	ShapeRewardRamp
	ShapeRewardSquare
	shapeCount
)

// ShapeDef is one immutable catalog entry: the canonical pattern plus the
// static attributes the spawn engine weights on. Complexity is a hand-tuned
// 1-10 score, not derived from the pattern.
type ShapeDef struct {
	ID             ShapeID
	Name           string
	Category       Category
	Complexity     int
	BaseWeight     float64
	MinStage       Stage
	RequiresStreak bool
	RewardOnly     bool

	pattern  Pattern
	variants []Pattern
}

// Pattern returns the canonical trimmed pattern.
func (d *ShapeDef) Pattern() Pattern { return d.pattern }

// Variants returns the deduplicated orientation set.
func (d *ShapeDef) Variants() []Pattern { return d.variants }

// CellCount returns the number of cells in the shape.
func (d *ShapeDef) CellCount() int { return d.pattern.CellCount() }

// shapeTableEntry is the literal catalog row before orientation expansion.
type shapeTableEntry struct {
	def    ShapeDef
	mirror bool
}

var shapeTable = []shapeTableEntry{
	{def: ShapeDef{ID: ShapeMono, Name: "mono", Category: CategoryMono, Complexity: 1, BaseWeight: 30,
		pattern: Pattern{{true}}}},
	{def: ShapeDef{ID: ShapeDuo, Name: "duo", Category: CategoryDuo, Complexity: 1, BaseWeight: 26,
		pattern: Pattern{{true, true}}}},
	{def: ShapeDef{ID: ShapeTrioLine, Name: "trio-line", Category: CategoryTrio, Complexity: 2, BaseWeight: 14,
		pattern: Pattern{{true, true, true}}}},
	{def: ShapeDef{ID: ShapeTrioCorner, Name: "trio-corner", Category: CategoryTrio, Complexity: 3, BaseWeight: 12,
		pattern: Pattern{{true, false}, {true, true}}}},
	{def: ShapeDef{ID: ShapeTetSquare, Name: "tet-square", Category: CategoryTetromino, Complexity: 2, BaseWeight: 12,
		pattern: Pattern{{true, true}, {true, true}}}},
	{def: ShapeDef{ID: ShapeTetLine, Name: "tet-line", Category: CategoryTetromino, Complexity: 3, BaseWeight: 10,
		pattern: Pattern{{true, true, true, true}}}},
	{def: ShapeDef{ID: ShapeTetT, Name: "tet-t", Category: CategoryTetromino, Complexity: 4, BaseWeight: 9,
		pattern: Pattern{{true, true, true}, {false, true, false}}}},
	{def: ShapeDef{ID: ShapeTetL, Name: "tet-l", Category: CategoryTetromino, Complexity: 4, BaseWeight: 9,
		pattern: Pattern{{true, false}, {true, false}, {true, true}}}, mirror: true},
	{def: ShapeDef{ID: ShapeTetS, Name: "tet-s", Category: CategoryTetromino, Complexity: 5, BaseWeight: 8,
		pattern: Pattern{{false, true, true}, {true, true, false}}}, mirror: true},
	{def: ShapeDef{ID: ShapePentLine, Name: "pent-line", Category: CategoryPentomino, Complexity: 5, BaseWeight: 7, MinStage: StageMid,
		pattern: Pattern{{true, true, true, true, true}}}},
	{def: ShapeDef{ID: ShapePentL, Name: "pent-l", Category: CategoryPentomino, Complexity: 6, BaseWeight: 6, MinStage: StageMid,
		pattern: Pattern{{true, false}, {true, false}, {true, false}, {true, true}}}, mirror: true},
	{def: ShapeDef{ID: ShapePentT, Name: "pent-t", Category: CategoryPentomino, Complexity: 6, BaseWeight: 6, MinStage: StageMid,
		pattern: Pattern{{true, true, true}, {false, true, false}, {false, true, false}}}},
	{def: ShapeDef{ID: ShapePentU, Name: "pent-u", Category: CategoryPentomino, Complexity: 7, BaseWeight: 5, MinStage: StageMid,
		pattern: Pattern{{true, false, true}, {true, true, true}}}},
	{def: ShapeDef{ID: ShapePentPlus, Name: "pent-plus", Category: CategoryPentomino, Complexity: 7, BaseWeight: 5, MinStage: StageMid,
		pattern: Pattern{{false, true, false}, {true, true, true}, {false, true, false}}}},
	{def: ShapeDef{ID: ShapePentZ, Name: "pent-z", Category: CategoryPentomino, Complexity: 7, BaseWeight: 4, MinStage: StageMid,
		pattern: Pattern{{true, true, false}, {false, true, false}, {false, true, true}}}, mirror: true},
	{def: ShapeDef{ID: ShapeRewardRect, Name: "reward-rect", Category: CategoryReward, Complexity: 6, BaseWeight: 6, MinStage: StageMid,
		pattern: Pattern{{true, true, true}, {true, true, true}}}},
	{def: ShapeDef{ID: ShapeRewardRamp, Name: "reward-ramp", Category: CategoryReward, Complexity: 8, BaseWeight: 5, MinStage: StageLate, RequiresStreak: true,
		pattern: Pattern{{true, false, false}, {true, true, false}, {true, true, true}}}, mirror: true},
	{def: ShapeDef{ID: ShapeRewardSquare, Name: "reward-square", Category: CategoryReward, Complexity: 9, BaseWeight: 4, MinStage: StageLate, RewardOnly: true,
		pattern: Pattern{{true, true, true}, {true, true, true}, {true, true, true}}}},
}

var (
	shapeIndex    *intmap.Map[ShapeID, *ShapeDef]
	shapesByCat   [categoryCount][]*ShapeDef
	catalogShapes []*ShapeDef
)

func init() {
	shapeIndex = intmap.New[ShapeID, *ShapeDef](len(shapeTable) * 2)
	for i := range shapeTable {
		entry := &shapeTable[i]
		def := &entry.def
		if !def.pattern.Valid() {
			panic(fmt.Sprintf("catalog shape %q has an invalid pattern", def.Name))
		}
		if def.Complexity < 1 || def.Complexity > 10 {
			panic(fmt.Sprintf("catalog shape %q complexity %d out of range", def.Name, def.Complexity))
		}
		def.pattern = def.pattern.Trim()
		def.variants = Orientations(def.pattern, entry.mirror)
		if _, dup := shapeIndex.Get(def.ID); dup {
			panic(fmt.Sprintf("catalog shape id %d registered twice", def.ID))
		}
		shapeIndex.Put(def.ID, def)
		shapesByCat[def.Category] = append(shapesByCat[def.Category], def)
		catalogShapes = append(catalogShapes, def)
	}
	if len(catalogShapes) != int(shapeCount) {
		panic("catalog table does not cover every ShapeID")
	}
}

// CatalogShape looks up a catalog entry by id.
func CatalogShape(id ShapeID) (*ShapeDef, bool) {
	return shapeIndex.Get(id)
}

// CatalogShapes returns every catalog entry in id order.
func CatalogShapes() []*ShapeDef {
	return catalogShapes
}

// ShapesInCategory returns the catalog entries belonging to a category.
func ShapesInCategory(cat Category) []*ShapeDef {
	return shapesByCat[cat]
}

// SmallestShape returns the catalog entry with the fewest cells, used as the
// fallback when hand generation runs out of attempts.
func SmallestShape() *ShapeDef {
	best := catalogShapes[0]
	for _, def := range catalogShapes[1:] {
		if def.CellCount() < best.CellCount() {
			best = def
		}
	}
	return best
}
