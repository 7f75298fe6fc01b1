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

import (
	"fmt"
	"strings"
)

/*

Print forms of assemblies and plans

*/

// String gives the compact form of an assembly: one token per
// slot in slot order, like "A1a B4h C6h D2d E3f F5a".
func (a *Assembly) String() string {
	if a == nil {
		return ""
	}
	tokens := make([]string, len(a.Placements))
	for i, pl := range a.Placements {
		tokens[i] = pl.Token()
	}
	return strings.Join(tokens, " ")
}

// String gives a readable form of a plan, one slide per line.
func (p *Plan) String() (result string) {
	if p == nil {
		return
	}
	for i, m := range p.Moves {
		result += fmt.Sprintf("%2d. %v\n", i+1, m)
	}
	return
}

/*

JSON forms of axes

*/

// MarshalJSON renders an Axis as its letter.
func (a Axis) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON parses an axis letter.
func (a *Axis) UnmarshalJSON(data []byte) error {
	for ax := AxisX; ax <= AxisZ; ax++ {
		if string(data) == `"`+ax.String()+`"` {
			*a = ax
			return nil
		}
	}
	return Error{
		Scope:     RequestScope,
		Structure: AttributeValueStructure,
		Attribute: NamedAttribute,
		Condition: GeneralCondition,
		Values:    ErrorData{"axis", string(data), "Not an axis letter"},
	}
}

/*

Pretty-printed placements in strings, for debugging.

*/

// DiagramString draws an assembly layer by layer along Y.  Each
// layer is a Z-by-X grid of piece numbers, with "." for cells
// outside the solid.  Pieces dragged away by a plan's moves can
// push the picture outside the solid box, so the bounds come
// from the placements themselves.
func (a *Assembly) DiagramString() (result string) {
	if a == nil || len(a.Placements) == 0 {
		return
	}
	occupant := make(map[Cell]int)
	var all cellset
	for _, pl := range a.Placements {
		for _, c := range pl.cells {
			occupant[c] = pl.Piece
		}
		all = all.union(pl.cells)
	}
	lo, hi := all.bounds()
	for y := hi.Y; y >= lo.Y; y-- {
		result += fmt.Sprintf("y=%d\n", y)
		for z := hi.Z; z >= lo.Z; z-- {
			for x := lo.X; x <= hi.X; x++ {
				if n, ok := occupant[Cell{X: x, Y: y, Z: z}]; ok {
					result += fmt.Sprintf("%d", n)
				} else {
					result += "."
				}
			}
			result += "\n"
		}
	}
	return
}
