package burr

/*

Burr piece representation

*/

import (
	"strings"
)

/*

Cells

*/

// A Cell is a unit cube position on the integer grid.  The
// assembled puzzle is centered on the origin, so cell
// coordinates run from -3 through 2 on every axis.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// An Axis names one of the three grid axes.
type Axis int

// Constants for the axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var axisNames = []string{"X", "Y", "Z"}

// Axes implement Stringer
func (a Axis) String() string {
	if a >= AxisX && a <= AxisZ {
		return axisNames[a]
	}
	return "?"
}

// step returns the cell one unit along the axis from c (or d
// units, for d other than 1).
func (a Axis) step(c Cell, d int) Cell {
	switch a {
	case AxisX:
		c.X += d
	case AxisY:
		c.Y += d
	case AxisZ:
		c.Z += d
	}
	return c
}

// cellLess orders cells lexicographically by X, Y, Z.
func cellLess(a, b Cell) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

/*

Cell sets

*/

// A cellset is a set of cells, represented as a sorted slice.
// We use cellsets for piece shapes, placements, and the
// assembled solid, so overlap and coverage checks are simple
// ordered merges.
type cellset []Cell

// newCellset makes a cellset from arbitrary cells, sorting and
// deduplicating as needed.
func newCellset(cells []Cell) cellset {
	out := make(cellset, len(cells))
	copy(out, cells)
	// insertion sort: shape-sized inputs are tiny
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && cellLess(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	end := 0
	for i := range out {
		if i == 0 || out[i] != out[end-1] {
			end++
			if end != i+1 {
				out[end-1] = out[i]
			}
		}
	}
	if len(out) == 0 {
		return out
	}
	return out[:end]
}

// newCellsetCopy: Make a copy of a cellset.
func newCellsetCopy(in cellset) cellset {
	if in == nil {
		return nil
	}
	out := make(cellset, len(in))
	copy(out, in)
	return out
}

// has reports whether the set contains cell c.
func (cs cellset) has(c Cell) bool {
	lo, hi := 0, len(cs)
	for lo < hi {
		mid := (lo + hi) / 2
		if cs[mid] == c {
			return true
		}
		if cellLess(cs[mid], c) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return false
}

// equal reports whether two cellsets hold the same cells.
func (cs cellset) equal(other cellset) bool {
	if len(cs) != len(other) {
		return false
	}
	for i := range cs {
		if cs[i] != other[i] {
			return false
		}
	}
	return true
}

// disjoint reports whether the two sets share no cell.  Both
// sets are sorted, so this is a single merge pass.
func (cs cellset) disjoint(other cellset) bool {
	i, j := 0, 0
	for i < len(cs) && j < len(other) {
		switch {
		case cs[i] == other[j]:
			return false
		case cellLess(cs[i], other[j]):
			i++
		default:
			j++
		}
	}
	return true
}

// contains reports whether the set is a superset of other.
func (cs cellset) contains(other cellset) bool {
	i := 0
	for _, c := range other {
		for i < len(cs) && cellLess(cs[i], c) {
			i++
		}
		if i == len(cs) || cs[i] != c {
			return false
		}
		i++
	}
	return true
}

// union merges two cellsets into a new one.
func (cs cellset) union(other cellset) cellset {
	out := make(cellset, 0, len(cs)+len(other))
	i, j := 0, 0
	for i < len(cs) && j < len(other) {
		switch {
		case cs[i] == other[j]:
			out = append(out, cs[i])
			i++
			j++
		case cellLess(cs[i], other[j]):
			out = append(out, cs[i])
			i++
		default:
			out = append(out, other[j])
			j++
		}
	}
	out = append(out, cs[i:]...)
	out = append(out, other[j:]...)
	return out
}

// translate returns the set shifted d units along the axis.
// Axis-parallel shifts preserve the sort order, so the result
// needs no re-sort.
func (cs cellset) translate(a Axis, d int) cellset {
	out := make(cellset, len(cs))
	for i, c := range cs {
		out[i] = a.step(c, d)
	}
	return out
}

// bounds returns the smallest and largest corner cells of the
// set's axis-aligned bounding box.
func (cs cellset) bounds() (lo, hi Cell) {
	lo, hi = cs[0], cs[0]
	for _, c := range cs[1:] {
		if c.X < lo.X {
			lo.X = c.X
		}
		if c.Y < lo.Y {
			lo.Y = c.Y
		}
		if c.Z < lo.Z {
			lo.Z = c.Z
		}
		if c.X > hi.X {
			hi.X = c.X
		}
		if c.Y > hi.Y {
			hi.Y = c.Y
		}
		if c.Z > hi.Z {
			hi.Z = c.Z
		}
	}
	return lo, hi
}

// boxesOverlap reports whether two bounding boxes share any
// cell.
func boxesOverlap(alo, ahi, blo, bhi Cell) bool {
	if ahi.X < blo.X || bhi.X < alo.X {
		return false
	}
	if ahi.Y < blo.Y || bhi.Y < alo.Y {
		return false
	}
	return ahi.Z >= blo.Z && bhi.Z >= alo.Z
}

/*

Orientations

*/

// rotateZ turns a cell a quarter turn counterclockwise about
// the long (Z) axis of a piece.  The -1 offsets keep the 2x2
// cross-section on the same four columns: the piece occupies
// cells, not points, so the rotation center sits on a lattice
// corner rather than a lattice cell.
func rotateZ(c Cell) Cell {
	return Cell{X: -1 - c.Y, Y: c.X, Z: c.Z}
}

// flipEnds turns a cell a half turn about the Y axis, swapping
// the two ends of a piece.
func flipEnds(c Cell) Cell {
	return Cell{X: -1 - c.X, Y: c.Y, Z: -1 - c.Z}
}

// orientCell applies orientation n (0 through 7) to a cell: the
// orientations above 3 flip the piece end for end first, then
// all take n%4 quarter turns about Z.
func orientCell(c Cell, n int) Cell {
	if n > 3 {
		c = flipEnds(c)
		n -= 4
	}
	for ; n > 0; n-- {
		c = rotateZ(c)
	}
	return c
}

// A variant is one distinct orientation of a piece's shape.
// The label is the letter of the group element that produced
// it, so labels are stable even when symmetric variants are
// dropped.
type variant struct {
	label byte
	cells cellset
}

// orientations generates the distinct oriented variants of a
// shape.  All 8 group elements are tried in order; a variant
// whose cells match an earlier one is dropped, and the
// survivors keep the letter of their generation index.
func orientations(cells cellset) []variant {
	var out []variant
	for n := 0; n < 8; n++ {
		oriented := make([]Cell, len(cells))
		for i, c := range cells {
			oriented[i] = orientCell(c, n)
		}
		v := variant{label: byte('a' + n), cells: newCellset(oriented)}
		dup := false
		for _, prior := range out {
			if prior.cells.equal(v.cells) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

/*

Shape text

*/

// Shape text dimensions.  A piece is drawn as four rows of six
// cells: rows one and two are the bottom layer of the bar, rows
// three and four the top layer, and columns run from the
// positive end of the bar to the negative end.
const (
	shapeRows = 4
	shapeCols = 6
)

// rowOrigin gives the X and Y coordinate of the cells in shape
// text row i.
func rowOrigin(i int) (x, y int) {
	return i%2 - 1, i/2 - 1
}

// parseShape converts shape text like
// "xxxxxx/xx..xx/x....x/x....x" into the cellset of a piece in
// its local frame.
func parseShape(name string, text string) (cellset, error) {
	rows := strings.Split(text, "/")
	if len(rows) != shapeRows {
		return nil, Error{
			Scope:     ShapeScope,
			Structure: AttributeValueStructure,
			Attribute: ShapeAttribute,
			Condition: RowCountCondition,
			Values:    ErrorData{name, text, shapeRows},
		}
	}
	var cells []Cell
	for i, row := range rows {
		if len(row) != shapeCols {
			return nil, Error{
				Scope:     ShapeScope,
				Structure: AttributeValueStructure,
				Attribute: RowAttribute,
				Condition: RowLengthCondition,
				Values:    ErrorData{name, row, shapeCols},
			}
		}
		x, y := rowOrigin(i)
		for j := 0; j < shapeCols; j++ {
			switch row[j] {
			case 'x':
				cells = append(cells, Cell{X: x, Y: y, Z: 2 - j})
			case '.':
			default:
				return nil, Error{
					Scope:     ShapeScope,
					Structure: AttributeValueStructure,
					Attribute: RowAttribute,
					Condition: BadRuneCondition,
					Values:    ErrorData{name, row, string(row[j])},
				}
			}
		}
	}
	if len(cells) == 0 {
		return nil, Error{
			Scope:     ShapeScope,
			Structure: AttributeValueStructure,
			Attribute: ShapeAttribute,
			Condition: EmptyShapeCondition,
			Values:    ErrorData{name, text},
		}
	}
	return newCellset(cells), nil
}

// shapeText renders a cellset in the piece's local frame back
// into shape text.
func shapeText(cells cellset) string {
	var sb strings.Builder
	for i := 0; i < shapeRows; i++ {
		if i > 0 {
			sb.WriteByte('/')
		}
		x, y := rowOrigin(i)
		for j := 0; j < shapeCols; j++ {
			if cells.has(Cell{X: x, Y: y, Z: 2 - j}) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

/*

Pieces

*/

// A Piece is one of the six bars of a puzzle: its shape text,
// its cells in the local frame, and its precomputed distinct
// orientations.
type Piece struct {
	id       int
	text     string
	cells    cellset
	variants []variant
}

// newPiece parses shape text into a Piece with orientations
// precomputed.
func newPiece(id int, text string) (Piece, error) {
	cells, e := parseShape(pieceName(id), text)
	if e != nil {
		return Piece{}, e
	}
	return Piece{id: id, text: text, cells: cells, variants: orientations(cells)}, nil
}

// pieceName gives the human-facing name of a piece for error
// messages.
func pieceName(id int) string {
	return "piece " + string(byte('0'+id))
}

// Id returns the piece's number, 1 through 6.
func (p Piece) Id() int {
	return p.id
}

// Text returns the piece's shape text.
func (p Piece) Text() string {
	return p.text
}

// Voxels returns the number of occupied cells in the piece.
func (p Piece) Voxels() int {
	return len(p.cells)
}

// Cells returns the piece's cells in its local frame.  The
// returned slice doesn't share storage with the piece.
func (p Piece) Cells() []Cell {
	return append([]Cell(nil), p.cells...)
}

// OrientationLabels returns the labels of the piece's distinct
// orientations, in generation order.
func (p Piece) OrientationLabels() []string {
	out := make([]string, len(p.variants))
	for i, v := range p.variants {
		out[i] = string(v.label)
	}
	return out
}

// orientation finds the variant with the given label, if the
// piece has one.
func (p Piece) orientation(label byte) (variant, bool) {
	for _, v := range p.variants {
		if v.label == label {
			return v, true
		}
	}
	return variant{}, false
}
