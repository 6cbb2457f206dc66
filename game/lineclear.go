package game

// LineKind distinguishes cleared rows from cleared columns.
type LineKind uint8

const (
	LineRow LineKind = iota
	LineColumn
)

// String returns the line kind name.
func (k LineKind) String() string {
	if k == LineColumn {
		return "column"
	}
	return "row"
}

// LineClear describes one completed line: its axis, its index, every cell
// position in it, and the colors that were removed. Downstream collaborators
// drive clear animations and audio from these descriptors.
type LineClear struct {
	Kind      LineKind
	Index     int
	Positions []Position
	Colors    []PieceColor
}
