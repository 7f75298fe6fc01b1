package mesh

import (
	"math"
	"testing"

	"github.com/matajoh/burr-solver/burr"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPieceModel(t *testing.T) {
	p, e := burr.New(burr.Samples()[0])
	if e != nil {
		t.Fatalf("TestPieceModel: New failed: %v", e)
	}
	s, e := Piece(p, 6)
	if e != nil {
		t.Fatalf("TestPieceModel: Piece failed: %v", e)
	}
	// piece 6 of oak is the solid bar: 20x20x60 mm centered bounds
	bb := s.BoundingBox()
	if !closeTo(bb.Min.X, -CellSize) || !closeTo(bb.Max.X, CellSize) ||
		!closeTo(bb.Min.Y, -CellSize) || !closeTo(bb.Max.Y, CellSize) ||
		!closeTo(bb.Min.Z, -3*CellSize) || !closeTo(bb.Max.Z, 3*CellSize) {
		t.Errorf("TestPieceModel: bar bounds %v, %v", bb.Min, bb.Max)
	}

	if _, e := Piece(p, 0); e == nil {
		t.Errorf("TestPieceModel: piece 0 should not exist")
	}
	if _, e := Piece(p, 7); e == nil {
		t.Errorf("TestPieceModel: piece 7 should not exist")
	}
}

func TestAssemblyModel(t *testing.T) {
	p, e := burr.New(burr.Samples()[0])
	if e != nil {
		t.Fatalf("TestAssemblyModel: New failed: %v", e)
	}
	a, e := p.Solve()
	if e != nil {
		t.Fatalf("TestAssemblyModel: Solve failed: %v", e)
	}
	s, e := Assembly(a)
	if e != nil {
		t.Fatalf("TestAssemblyModel: Assembly failed: %v", e)
	}
	// the assembled solid spans cells -3 through 2 on every axis
	bb := s.BoundingBox()
	for _, v := range []float64{bb.Min.X, bb.Min.Y, bb.Min.Z} {
		if !closeTo(v, -3*CellSize) {
			t.Errorf("TestAssemblyModel: min bound %v", bb.Min)
			break
		}
	}
	for _, v := range []float64{bb.Max.X, bb.Max.Y, bb.Max.Z} {
		if !closeTo(v, 3*CellSize) {
			t.Errorf("TestAssemblyModel: max bound %v", bb.Max)
			break
		}
	}
}

func TestEmptyModel(t *testing.T) {
	if _, e := boxes(nil); e == nil {
		t.Errorf("TestEmptyModel: empty cell list should fail")
	}
	if _, e := Assembly(&burr.Assembly{}); e == nil {
		t.Errorf("TestEmptyModel: empty assembly should fail")
	}
}
