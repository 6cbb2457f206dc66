package game

import "github.com/kamstrup/intmap"

// Pattern is a shape footprint as a boolean occupancy matrix. Canonical
// patterns are trimmed to their bounding box; all rows have equal length.
type Pattern [][]bool

// Valid reports whether the pattern is rectangular and has at least one
// occupied cell.
func (p Pattern) Valid() bool {
	if len(p) == 0 || len(p[0]) == 0 {
		return false
	}
	width := len(p[0])
	any := false
	for _, row := range p {
		if len(row) != width {
			return false
		}
		for _, filled := range row {
			if filled {
				any = true
			}
		}
	}
	return any
}

// Height returns the number of pattern rows.
func (p Pattern) Height() int { return len(p) }

// Width returns the number of pattern columns.
func (p Pattern) Width() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0])
}

// CellCount returns the number of occupied cells.
func (p Pattern) CellCount() int {
	n := 0
	for _, row := range p {
		for _, filled := range row {
			if filled {
				n++
			}
		}
	}
	return n
}

// Cells returns the occupied cells as positions relative to the pattern's
// top-left corner.
func (p Pattern) Cells() []Position {
	cells := make([]Position, 0, p.CellCount())
	for r, row := range p {
		for c, filled := range row {
			if filled {
				cells = append(cells, Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

// RotateCW returns the pattern rotated 90 degrees clockwise.
// For an RxC source the destination is CxR with dest[c][R-1-r] = src[r][c].
func (p Pattern) RotateCW() Pattern {
	rows, cols := p.Height(), p.Width()
	out := make(Pattern, cols)
	for c := range out {
		out[c] = make([]bool, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out[c][rows-1-r] = p[r][c]
		}
	}
	return out
}

// Mirror returns the pattern flipped horizontally.
func (p Pattern) Mirror() Pattern {
	rows, cols := p.Height(), p.Width()
	out := make(Pattern, rows)
	for r := 0; r < rows; r++ {
		out[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			out[r][c] = p[r][cols-1-c]
		}
	}
	return out
}

// Trim returns the pattern reduced to the bounding box of its occupied
// cells. An all-empty pattern trims to nil.
func (p Pattern) Trim() Pattern {
	minR, minC := p.Height(), p.Width()
	maxR, maxC := -1, -1
	for r, row := range p {
		for c, filled := range row {
			if !filled {
				continue
			}
			if r < minR {
				minR = r
			}
			if r > maxR {
				maxR = r
			}
			if c < minC {
				minC = c
			}
			if c > maxC {
				maxC = c
			}
		}
	}
	if maxR < 0 {
		return nil
	}
	out := make(Pattern, maxR-minR+1)
	for r := range out {
		out[r] = make([]bool, maxC-minC+1)
		copy(out[r], p[minR+r][minC:maxC+1])
	}
	return out
}

// Equal reports exact matrix equality.
func (p Pattern) Equal(other Pattern) bool {
	if p.Height() != other.Height() || p.Width() != other.Width() {
		return false
	}
	for r := range p {
		for c := range p[r] {
			if p[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// PackedKey encodes a trimmed pattern into a single integer: 4 bits of
// height, 4 bits of width, then the occupancy bits in row-major order.
// Catalog patterns never exceed 7x7, so the bits always fit in 56.
func (p Pattern) PackedKey() uint64 {
	key := uint64(p.Height())<<4 | uint64(p.Width())
	for _, row := range p {
		for _, filled := range row {
			key <<= 1
			if filled {
				key |= 1
			}
		}
	}
	return key
}

// Orientations generates the deduplicated rotation set for a pattern: the
// 4 clockwise rotations, plus the 4 rotations of the horizontal mirror when
// includeMirror is set. Every candidate is trimmed before deduplication, so
// the result size is 1, 2, 4 or 8 depending on the pattern's symmetry. The
// trimmed original is always the first entry.
func Orientations(p Pattern, includeMirror bool) []Pattern {
	sources := []Pattern{p.Trim()}
	if includeMirror {
		sources = append(sources, p.Mirror().Trim())
	}

	seen := intmap.New[uint64, bool](16)
	variants := make([]Pattern, 0, 8)
	for _, src := range sources {
		cur := src
		for i := 0; i < 4; i++ {
			trimmed := cur.Trim()
			key := trimmed.PackedKey()
			if _, dup := seen.Get(key); !dup {
				seen.Put(key, true)
				variants = append(variants, trimmed)
			}
			cur = cur.RotateCW()
		}
	}
	return variants
}
