package burr

import (
	"reflect"
	"testing"
)

/*

Expected Plans

*/

var oakPlan = []Move{
	{Piece: 6, Axis: AxisZ, Distance: 2},
	{Piece: 2, Axis: AxisY, Distance: 4},
	{Piece: 6, Axis: AxisZ, Distance: 2},
	{Piece: 5, Axis: AxisY, Distance: -2},
	{Piece: 5, Axis: AxisZ, Distance: -1},
	{Piece: 5, Axis: AxisY, Distance: 1},
	{Piece: 5, Axis: AxisX, Distance: 1},
	{Piece: 1, Axis: AxisX, Distance: 1},
	{Piece: 1, Axis: AxisY, Distance: -1},
	{Piece: 3, Axis: AxisX, Distance: 1},
	{Piece: 3, Axis: AxisY, Distance: 4},
	{Piece: 4, Axis: AxisY, Distance: -1},
	{Piece: 6, Axis: AxisZ, Distance: 1},
}

var walnutPlan = []Move{
	{Piece: 5, Axis: AxisZ, Distance: 2},
	{Piece: 4, Axis: AxisY, Distance: 4},
	{Piece: 5, Axis: AxisZ, Distance: 3},
	{Piece: 6, Axis: AxisZ, Distance: -1},
	{Piece: 6, Axis: AxisY, Distance: -1},
	{Piece: 1, Axis: AxisY, Distance: -1},
	{Piece: 2, Axis: AxisZ, Distance: 1},
	{Piece: 1, Axis: AxisY, Distance: 2},
	{Piece: 3, Axis: AxisY, Distance: 1},
	{Piece: 1, Axis: AxisY, Distance: -2},
	{Piece: 1, Axis: AxisZ, Distance: 1},
	{Piece: 3, Axis: AxisY, Distance: 1},
	{Piece: 1, Axis: AxisZ, Distance: 2},
	{Piece: 6, Axis: AxisY, Distance: 1},
}

type disassembleTestcase struct {
	summary *Summary
	plan    []Move
	states  int
}

func TestDisassemble(t *testing.T) {
	tcs := []disassembleTestcase{
		{oakSummary, oakPlan, 22},
		{walnutSummary, walnutPlan, 23},
	}
	for i, tc := range tcs {
		p, e := New(tc.summary)
		if e != nil {
			t.Fatalf("TestDisassemble case %d: New failed: %v", i+1, e)
		}
		a, e := p.Solve()
		if e != nil {
			t.Fatalf("TestDisassemble case %d: Solve failed: %v", i+1, e)
		}
		plan, e := p.Disassemble(a, 0)
		if e != nil {
			t.Fatalf("TestDisassemble case %d: Disassemble failed: %v", i+1, e)
		}
		if !reflect.DeepEqual(plan.Moves, tc.plan) {
			t.Errorf("TestDisassemble case %d: plan\n%v(expected)\n%v",
				i+1, plan, &Plan{Moves: tc.plan})
		}
		if plan.States != tc.states {
			t.Errorf("TestDisassemble case %d: expanded %d states (expected %d)",
				i+1, plan.States, tc.states)
		}
	}
}

// Replay a plan against the collision rules: every slide must
// stay in the travel envelope and never intersect another
// in-block piece, and by the end every piece must be freed.
func replayPlan(t *testing.T, name string, a *Assembly, plan *Plan) {
	cells := make(map[int]cellset)
	for _, pl := range a.Placements {
		cells[pl.Piece] = newCellsetCopy(pl.cells)
	}
	for mi, m := range plan.Moves {
		if _, ok := cells[m.Piece]; !ok {
			t.Fatalf("%s: move %d slides piece %d after it was freed", name, mi+1, m.Piece)
		}
		step := 1
		if m.Distance < 0 {
			step = -1
		}
		for n := m.Distance; n != 0; n -= step {
			moved := cells[m.Piece].translate(m.Axis, step)
			if !inTravelEnvelope(moved) {
				t.Fatalf("%s: move %d leaves the travel envelope", name, mi+1)
			}
			for qi, qc := range cells {
				if qi != m.Piece && !moved.disjoint(qc) {
					t.Fatalf("%s: move %d collides with piece %d", name, mi+1, qi)
				}
			}
			cells[m.Piece] = moved
		}
		lo, hi := cells[m.Piece].bounds()
		freed := true
		for qi, qc := range cells {
			if qi == m.Piece {
				continue
			}
			qlo, qhi := qc.bounds()
			if boxesOverlap(lo, hi, qlo, qhi) {
				freed = false
				break
			}
		}
		if freed {
			delete(cells, m.Piece)
		}
	}
	if len(cells) != 0 {
		t.Errorf("%s: %d pieces still in the block after the plan", name, len(cells))
	}
}

func TestDisassembleReplay(t *testing.T) {
	for _, summary := range []*Summary{oakSummary, walnutSummary} {
		p, e := New(summary)
		if e != nil {
			t.Fatalf("TestDisassembleReplay: New failed: %v", e)
		}
		a, e := p.Solve()
		if e != nil {
			t.Fatalf("TestDisassembleReplay: Solve failed: %v", e)
		}
		plan, e := p.Disassemble(a, 0)
		if e != nil {
			t.Fatalf("TestDisassembleReplay: Disassemble failed: %v", e)
		}
		replayPlan(t, "TestDisassembleReplay "+summary.Name, a, plan)
	}
}

// gordian assembles but interlocks: the full configuration
// space is reachable in 36 states and none of them frees a
// piece.
func TestNoDisassembly(t *testing.T) {
	p, e := New(gordianSummary)
	if e != nil {
		t.Fatalf("TestNoDisassembly: New failed: %v", e)
	}
	a, e := p.Solve()
	if e != nil {
		t.Fatalf("TestNoDisassembly: Solve failed: %v", e)
	}
	_, e = p.Disassemble(a, 0)
	if e == nil {
		t.Fatalf("TestNoDisassembly: gordian came apart")
	}
	if !IsNoDisassembly(e) {
		t.Fatalf("TestNoDisassembly: wrong error: %v", e)
	}
	err := e.(Error)
	if !reflect.DeepEqual(err.Values, ErrorData{36}) {
		t.Errorf("TestNoDisassembly: got %+v (expected 36 states)", err)
	}
}

func TestSearchExhausted(t *testing.T) {
	p, e := New(gordianSummary)
	if e != nil {
		t.Fatalf("TestSearchExhausted: New failed: %v", e)
	}
	a, e := p.Solve()
	if e != nil {
		t.Fatalf("TestSearchExhausted: Solve failed: %v", e)
	}
	// one state short of the space: the budget runs out
	_, e = p.Disassemble(a, 35)
	if !IsSearchExhausted(e) {
		t.Fatalf("TestSearchExhausted: wrong error with budget 35: %v", e)
	}
	if err := e.(Error); !reflect.DeepEqual(err.Values, ErrorData{35, 36}) {
		t.Errorf("TestSearchExhausted: got %+v", err)
	}
	// exactly enough: the search finishes and proves the interlock
	_, e = p.Disassemble(a, 36)
	if !IsNoDisassembly(e) {
		t.Errorf("TestSearchExhausted: wrong error with budget 36: %v", e)
	}
}

type mergeMovesTestcase struct {
	unit   []Move
	merged []Move
}

func TestMergeMoves(t *testing.T) {
	tcs := []mergeMovesTestcase{
		{nil, nil},
		{
			[]Move{{1, AxisZ, 1}, {1, AxisZ, 1}, {1, AxisZ, 1}},
			[]Move{{1, AxisZ, 3}},
		},
		{
			[]Move{{1, AxisZ, 1}, {2, AxisZ, 1}, {1, AxisZ, 1}},
			[]Move{{1, AxisZ, 1}, {2, AxisZ, 1}, {1, AxisZ, 1}},
		},
		{
			[]Move{{1, AxisZ, 1}, {1, AxisY, 1}, {1, AxisY, 1}},
			[]Move{{1, AxisZ, 1}, {1, AxisY, 2}},
		},
		{
			[]Move{{1, AxisZ, 1}, {1, AxisZ, -1}},
			[]Move{{1, AxisZ, 1}, {1, AxisZ, -1}},
		},
	}
	for i, tc := range tcs {
		if got := mergeMoves(tc.unit); !reflect.DeepEqual(got, tc.merged) {
			t.Errorf("TestMergeMoves case %d: got %v (expected %v)", i+1, got, tc.merged)
		}
	}
}

func TestDisassembleBadArgs(t *testing.T) {
	p, e := New(oakSummary)
	if e != nil {
		t.Fatalf("TestDisassembleBadArgs: New failed: %v", e)
	}
	if _, e := p.Disassemble(nil, 0); condition(e) != InvalidArgumentCondition {
		t.Errorf("TestDisassembleBadArgs: nil assembly gave %v", e)
	}
	short := &Assembly{Placements: make([]Placement, 5)}
	if _, e := p.Disassemble(short, 0); condition(e) != InvalidArgumentCondition {
		t.Errorf("TestDisassembleBadArgs: short assembly gave %v", e)
	}
	// placements built by hand carry no cells
	bare := &Assembly{Placements: []Placement{
		{Slot: "A", Piece: 1, Orientation: "a"},
		{Slot: "B", Piece: 2, Orientation: "a"},
		{Slot: "C", Piece: 3, Orientation: "a"},
		{Slot: "D", Piece: 4, Orientation: "a"},
		{Slot: "E", Piece: 5, Orientation: "a"},
		{Slot: "F", Piece: 6, Orientation: "a"},
	}}
	if _, e := p.Disassemble(bare, 0); condition(e) != BadTokenCondition {
		t.Errorf("TestDisassembleBadArgs: bare assembly gave %v", e)
	}
}
