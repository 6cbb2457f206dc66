package game

// Piece is one dealt instance of a catalog shape: a chosen orientation plus
// a cosmetic color.
type Piece struct {
	ID          ShapeID
	Orientation int
	Color       PieceColor
}

// NewPiece instantiates a catalog shape. The orientation index is clamped
// into the shape's variant set.
func NewPiece(id ShapeID, orientation int, color PieceColor) (*Piece, bool) {
	def, ok := CatalogShape(id)
	if !ok {
		return nil, false
	}
	if orientation < 0 || orientation >= len(def.Variants()) {
		orientation = 0
	}
	return &Piece{ID: id, Orientation: orientation, Color: color}, true
}

// Def returns the piece's catalog entry.
func (p *Piece) Def() *ShapeDef {
	def, ok := CatalogShape(p.ID)
	if !ok {
		// Pieces are only built from catalog ids; reaching here is a bug.
		panic("piece references unknown shape id")
	}
	return def
}

// Cells returns the piece's footprint in its chosen orientation.
func (p *Piece) Cells() Pattern {
	return p.Def().Variants()[p.Orientation]
}

// HandSize is the number of tray slots.
const HandSize = 3

// Hand is the ordered tray of offered pieces. A slot is nil once its piece
// is committed; the whole hand refills only when every slot is nil.
type Hand struct {
	Slots [HandSize]*Piece
}

// IsEmpty reports whether every slot has been consumed.
func (h *Hand) IsEmpty() bool {
	for _, p := range h.Slots {
		if p != nil {
			return false
		}
	}
	return true
}

// Count returns the number of filled slots.
func (h *Hand) Count() int {
	n := 0
	for _, p := range h.Slots {
		if p != nil {
			n++
		}
	}
	return n
}

// Pieces returns the non-empty slots in order.
func (h *Hand) Pieces() []*Piece {
	out := make([]*Piece, 0, HandSize)
	for _, p := range h.Slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
