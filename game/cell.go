package game

// CellKind identifies what occupies a single board cell.
type CellKind uint8

const (
	// CellEmpty is a free cell.
	CellEmpty CellKind = iota
	// CellOccupied is a cell filled by a committed placement. Occupied cells
	// participate in line completion and are removed by clears.
	CellOccupied
	// CellLocked is an obstacle loaded externally. Locked cells count as
	// occupied for line completion but are never removed by clears or Reset.
	CellLocked
	// CellPreview is scratch state used for placement ghosting. Preview cells
	// are freely overwritable and invisible to line completion.
	CellPreview
)

// String returns a short name for the cell kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellOccupied:
		return "occupied"
	case CellLocked:
		return "locked"
	case CellPreview:
		return "preview"
	default:
		return "unknown"
	}
}

// PieceColor is a cosmetic tag carried by pieces and occupied cells.
// It has no gameplay effect.
type PieceColor uint8

const (
	ColorNone PieceColor = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
)

// PieceColorCount is the number of drawable colors (ColorNone excluded).
const PieceColorCount = 6

// String returns the color name.
func (c PieceColor) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Cell is one board cell: a kind plus the color it was painted with.
// Color is meaningful only for Occupied, Locked and Preview cells.
type Cell struct {
	Kind  CellKind
	Color PieceColor
}

// Position addresses a board cell by row and column.
type Position struct {
	Row int
	Col int
}
