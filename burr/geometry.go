// burr-solver - a six-piece burr puzzle solver and web service.
// Copyright (C) 2026 Matthew Johnson.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.

package burr

/*

Slot geometry

The assembled puzzle is three orthogonal pairs of 2x2x6 bars.
Each bar position is a slot, named A through F.  A slot is
defined by the frame that carries a piece's local coordinates
into world coordinates: a rotation that aligns the piece's long
axis with the slot's axis, followed by a unit offset that
separates the two bars of each pair.

*/

// A Slot is one of the six fixed bar positions of the puzzle.
type Slot struct {
	name   byte
	offset Cell
	axis   Axis
}

// Name returns the slot's letter, "A" through "F".
func (s Slot) Name() string {
	return string(s.name)
}

// Withdrawal returns the slot's principal axis: the direction a
// piece in this slot naturally slides.
func (s Slot) Withdrawal() Axis {
	return s.axis
}

// The six slots.  A and F run along Z, B and D along X, C and E
// along Y; the offsets place the two bars of each pair side by
// side.
var slots = [6]Slot{
	{name: 'A', offset: Cell{0, -1, 0}, axis: AxisZ},
	{name: 'B', offset: Cell{0, 0, -1}, axis: AxisX},
	{name: 'C', offset: Cell{-1, 0, 0}, axis: AxisY},
	{name: 'D', offset: Cell{0, 0, 1}, axis: AxisX},
	{name: 'E', offset: Cell{1, 0, 0}, axis: AxisY},
	{name: 'F', offset: Cell{0, 1, 0}, axis: AxisZ},
}

// slotIndex maps a slot letter to its index in the slots array.
func slotIndex(name byte) (int, bool) {
	if name < 'A' || name > 'F' {
		return 0, false
	}
	return int(name - 'A'), true
}

// place carries one local cell into the slot's world position.
// Like the orientation transforms, the -1 offsets account for
// rotating cells (not points) about lattice corners.
func (s Slot) place(c Cell) Cell {
	switch s.axis {
	case AxisY:
		c = Cell{X: c.X, Y: -1 - c.Z, Z: c.Y}
	case AxisX:
		c = Cell{X: c.Z, Y: c.Y, Z: -1 - c.X}
	}
	return Cell{X: c.X + s.offset.X, Y: c.Y + s.offset.Y, Z: c.Z + s.offset.Z}
}

// placeAll carries a whole local cellset into world
// coordinates.
func (s Slot) placeAll(cells cellset) cellset {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = s.place(c)
	}
	return newCellset(out)
}

/*

Required cells

Every slot exposes the two end blocks of its bar on the outside
of the assembled puzzle.  Those eight cells can never be notched
away, or the piece would visibly not fill its position, so a
piece orientation is only admissible in a slot if its placement
covers them.

*/

var requiredCells = [6][][3]int{
	{ // A
		{-1, -2, -3}, {-1, -2, -2}, {0, -2, -3}, {0, -2, -2},
		{-1, -2, 2}, {-1, -2, 1}, {0, -2, 2}, {0, -2, 1},
	},
	{ // B
		{-3, -1, -2}, {-2, -1, -2}, {-3, 0, -2}, {-2, 0, -2},
		{2, -1, -2}, {1, -1, -2}, {2, 0, -2}, {1, 0, -2},
	},
	{ // C
		{-2, -3, -1}, {-2, -2, -1}, {-2, -3, 0}, {-2, -2, 0},
		{-2, 2, -1}, {-2, 1, -1}, {-2, 2, 0}, {-2, 1, 0},
	},
	{ // D
		{-3, -1, 1}, {-2, -1, 1}, {-3, 0, 1}, {-2, 0, 1},
		{2, -1, 1}, {1, -1, 1}, {2, 0, 1}, {1, 0, 1},
	},
	{ // E
		{1, -3, -1}, {1, -2, -1}, {1, -3, 0}, {1, -2, 0},
		{1, 2, -1}, {1, 1, -1}, {1, 2, 0}, {1, 1, 0},
	},
	{ // F
		{-1, 1, -3}, {-1, 1, -2}, {0, 1, -3}, {0, 1, -2},
		{-1, 1, 2}, {-1, 1, 1}, {0, 1, 2}, {0, 1, 1},
	},
}

// required holds each slot's end-block cells as a cellset.
var required [6]cellset

/*

The solid

*/

// clearance is the travel margin around the solid: how far a
// piece can be dragged outside the assembled bounding box
// before the planner stops following it.  Eight cells is enough
// to pull any bar fully clear of the others.
const clearance = 8

var (
	solid              cellset // union of the six full bar regions
	solidLo, solidHi   Cell    // bounding box of the solid
	travelLo, travelHi Cell    // solid box inflated by the clearance
)

// fullBar returns the local cells of an unnotched 2x2x6 bar.
func fullBar() cellset {
	var cells []Cell
	for x := -1; x <= 0; x++ {
		for y := -1; y <= 0; y++ {
			for z := -3; z <= 2; z++ {
				cells = append(cells, Cell{X: x, Y: y, Z: z})
			}
		}
	}
	return newCellset(cells)
}

func init() {
	bar := fullBar()
	for i, s := range slots {
		solid = solid.union(s.placeAll(bar))
		cells := make([]Cell, len(requiredCells[i]))
		for j, c := range requiredCells[i] {
			cells[j] = Cell{X: c[0], Y: c[1], Z: c[2]}
		}
		required[i] = newCellset(cells)
	}
	solidLo, solidHi = solid.bounds()
	travelLo = Cell{X: solidLo.X - clearance, Y: solidLo.Y - clearance, Z: solidLo.Z - clearance}
	travelHi = Cell{X: solidHi.X + clearance, Y: solidHi.Y + clearance, Z: solidHi.Z + clearance}
}

// inTravelEnvelope reports whether every cell of a placement is
// still inside the travel envelope.
func inTravelEnvelope(cells cellset) bool {
	for _, c := range cells {
		if c.X < travelLo.X || c.X > travelHi.X ||
			c.Y < travelLo.Y || c.Y > travelHi.Y ||
			c.Z < travelLo.Z || c.Z > travelHi.Z {
			return false
		}
	}
	return true
}

// admissible returns the piece orientations whose placement in
// the slot covers the slot's required end blocks, paired with
// their world-coordinate placements, in label order.
func admissible(s Slot, p Piece) []variant {
	si, _ := slotIndex(s.name)
	var out []variant
	for _, v := range p.variants {
		placed := s.placeAll(v.cells)
		if placed.contains(required[si]) {
			out = append(out, variant{label: v.label, cells: placed})
		}
	}
	return out
}
