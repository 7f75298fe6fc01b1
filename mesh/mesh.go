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

// Package mesh renders burr pieces and assemblies as printable
// 3D models, using the github.com/deadsy/sdfx SDF-based CAD
// library.  Puzzle cells become cubes of CellSize millimeters, so
// a piece is a bar of 60x20x20 mm.
package mesh

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/matajoh/burr-solver/burr"
)

// CellSize is the printed edge length of one grid cell, in
// millimeters.
const CellSize = 10.0

// meshCells controls marching cubes tessellation resolution.
// The geometry is all axis-aligned boxes, so a moderate grid
// reproduces it faithfully.
const meshCells = 200

// boxes builds the union of the unit cubes at the given cells.
// sdf.Box3D centers the box at the origin; a cell is the cube
// between lattice corners, so its center sits at coordinate
// plus one half.
func boxes(cells []burr.Cell) (sdf.SDF3, error) {
	parts := make([]sdf.SDF3, 0, len(cells))
	for _, c := range cells {
		box, err := sdf.Box3D(v3.Vec{X: CellSize, Y: CellSize, Z: CellSize}, 0)
		if err != nil {
			return nil, fmt.Errorf("box for cell %v: %v", c, err)
		}
		m := sdf.Translate3d(v3.Vec{
			X: (float64(c.X) + 0.5) * CellSize,
			Y: (float64(c.Y) + 0.5) * CellSize,
			Z: (float64(c.Z) + 0.5) * CellSize,
		})
		parts = append(parts, sdf.Transform3D(box, m))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no cells to render")
	}
	return sdf.Union3D(parts...), nil
}

// Piece models one piece of a puzzle in its local frame, lying
// along the Z axis, ready for printing.
func Piece(p *burr.Puzzle, number int) (sdf.SDF3, error) {
	pieces := p.Pieces()
	if number < 1 || number > len(pieces) {
		return nil, fmt.Errorf("no piece %d in puzzle %q", number, p.Name())
	}
	return boxes(pieces[number-1].Cells())
}

// Assembly models a whole assembled puzzle as one solid.
func Assembly(a *burr.Assembly) (sdf.SDF3, error) {
	var cells []burr.Cell
	for _, pl := range a.Placements {
		cells = append(cells, pl.Cells()...)
	}
	return boxes(cells)
}

// WriteSTL tessellates a model with marching cubes and saves it
// as a binary STL file.
func WriteSTL(s sdf.SDF3, path string) error {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(meshCells))
	return render.SaveSTL(path, triangles)
}
