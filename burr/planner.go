package burr

import (
	"fmt"
	"strings"
)

/*

Burr disassembly planner

Taking a burr apart is a search over configurations.  A
configuration is the set of pieces still in the block, each with
its translation offset from the assembled position.  From a
configuration, the planner may slide any single piece one cell
along any axis:

1. If the slide would push the piece outside the travel
envelope (the solid's bounding box inflated by the clearance
margin) the move is abandoned.

2. If the slid piece would intersect another in-block piece,
the move is a collision and is abandoned.

3. If the slid piece's bounding box no longer touches any other
in-block piece's bounding box, the piece is freed: it leaves
the block and the search continues with the remaining pieces.

4. Otherwise the piece is still blocked; it stays in the block
at its new offset and the search continues.

The search is depth first, with a visited set keyed by the
in-block pieces and offsets so the same configuration is never
expanded twice.  Moves are tried in a fixed order: pieces by
increasing number, and for each piece its slot's withdrawal
axis (positive then negative) before the remaining axes in X,
Y, Z order.  The plan is found when the block is empty.

The search moves one cell at a time, but the reported plan
merges consecutive moves of the same piece in the same
direction into single slides, which is how a human would
describe them.

An optional budget bounds the number of configurations
expanded.  Exceeding the budget is reported as an exhausted
search, distinct from proving (within the reachable
configurations) that no disassembly exists.

*/

// A Move slides one piece a signed distance along an axis.
type Move struct {
	Piece    int  `json:"piece"`
	Axis     Axis `json:"axis"`
	Distance int  `json:"distance"`
}

// Moves implement Stringer: "piece 3 Z+2".
func (m Move) String() string {
	return fmt.Sprintf("piece %d %s%+d", m.Piece, m.Axis, m.Distance)
}

// A Plan is a disassembly: the merged moves that free all six
// pieces, plus the number of configurations the search
// expanded.
type Plan struct {
	Moves  []Move `json:"moves"`
	States int    `json:"states"`
}

// moveResult classifies one candidate slide.
type moveResult int

const (
	moveOutside moveResult = iota
	moveCollision
	moveFreed
	moveBlocked
)

// A planner holds the working state of one disassembly search.
// Pieces are tracked by index into the id-ordered slices.
type planner struct {
	slotAxes  []Axis    // withdrawal axis per piece
	cells     []cellset // current placement per piece
	offsets   []Cell    // accumulated translation per piece
	inblock   []int     // indexes of pieces still in the block, ascending
	visited   map[string]bool
	moves     []Move // unit moves on the current search path
	budget    int
	states    int
	exhausted bool
}

// classify applies the collision engine to sliding the piece at
// index pi one step of d along the axis.  It returns the
// classification and, when the piece actually moves, its new
// placement.
func (pl *planner) classify(pi int, a Axis, d int) (moveResult, cellset) {
	moved := pl.cells[pi].translate(a, d)
	if !inTravelEnvelope(moved) {
		return moveOutside, nil
	}
	for _, qi := range pl.inblock {
		if qi == pi {
			continue
		}
		if !moved.disjoint(pl.cells[qi]) {
			return moveCollision, nil
		}
	}
	lo, hi := moved.bounds()
	for _, qi := range pl.inblock {
		if qi == pi {
			continue
		}
		qlo, qhi := pl.cells[qi].bounds()
		if boxesOverlap(lo, hi, qlo, qhi) {
			return moveBlocked, moved
		}
	}
	return moveFreed, moved
}

// directions lists the slide directions for a piece: its slot's
// withdrawal axis first (positive then negative), then the
// remaining axes in X, Y, Z order.
func directions(withdrawal Axis) [6]Move {
	var out [6]Move
	out[0] = Move{Axis: withdrawal, Distance: 1}
	out[1] = Move{Axis: withdrawal, Distance: -1}
	n := 2
	for a := AxisX; a <= AxisZ; a++ {
		if a == withdrawal {
			continue
		}
		out[n] = Move{Axis: a, Distance: 1}
		out[n+1] = Move{Axis: a, Distance: -1}
		n += 2
	}
	return out
}

// key builds the visited-set key for the current configuration:
// the in-block pieces (ascending) with their offsets.
func (pl *planner) key() string {
	var sb strings.Builder
	for _, pi := range pl.inblock {
		o := pl.offsets[pi]
		fmt.Fprintf(&sb, "%d:%d,%d,%d;", pi, o.X, o.Y, o.Z)
	}
	return sb.String()
}

// search expands the current configuration, returning whether a
// full disassembly was found below it.
func (pl *planner) search() bool {
	if len(pl.inblock) == 0 {
		return true
	}
	k := pl.key()
	if pl.visited[k] {
		return false
	}
	pl.visited[k] = true
	pl.states++
	if pl.budget > 0 && pl.states > pl.budget {
		pl.exhausted = true
		return false
	}
	order := append([]int(nil), pl.inblock...)
	for _, pi := range order {
		for _, dir := range directions(pl.slotAxes[pi]) {
			result, moved := pl.classify(pi, dir.Axis, dir.Distance)
			if result == moveOutside || result == moveCollision {
				continue
			}
			savedCells, savedOffset := pl.cells[pi], pl.offsets[pi]
			pl.cells[pi] = moved
			pl.offsets[pi] = dir.Axis.step(savedOffset, dir.Distance)
			pl.moves = append(pl.moves, Move{Piece: pi + 1, Axis: dir.Axis, Distance: dir.Distance})
			if result == moveFreed {
				pl.removeInblock(pi)
				if pl.search() {
					return true
				}
				pl.restoreInblock(pi)
			} else if pl.search() {
				return true
			}
			pl.moves = pl.moves[:len(pl.moves)-1]
			pl.cells[pi] = savedCells
			pl.offsets[pi] = savedOffset
			if pl.exhausted {
				return false
			}
		}
	}
	return false
}

// removeInblock takes a freed piece out of the in-block list.
func (pl *planner) removeInblock(pi int) {
	for i, qi := range pl.inblock {
		if qi == pi {
			pl.inblock = append(pl.inblock[:i], pl.inblock[i+1:]...)
			return
		}
	}
}

// restoreInblock puts a piece back, keeping the list ascending.
func (pl *planner) restoreInblock(pi int) {
	i := 0
	for i < len(pl.inblock) && pl.inblock[i] < pi {
		i++
	}
	pl.inblock = append(pl.inblock, 0)
	copy(pl.inblock[i+1:], pl.inblock[i:])
	pl.inblock[i] = pi
}

// mergeMoves folds consecutive unit moves of the same piece in
// the same direction into single slides.
func mergeMoves(unit []Move) []Move {
	var out []Move
	for _, m := range unit {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Piece == m.Piece && last.Axis == m.Axis &&
				(last.Distance > 0) == (m.Distance > 0) {
				last.Distance += m.Distance
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// Disassemble plans the take-apart of an assembly.  The budget
// bounds how many configurations the search may expand; zero
// means unbounded.  On failure the error satisfies
// IsNoDisassembly when the reachable configurations were
// exhausted, or IsSearchExhausted when the budget ran out
// first.
func (p *Puzzle) Disassemble(a *Assembly, budget int) (*Plan, error) {
	if a == nil || len(a.Placements) != len(slots) {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: InvalidArgumentCondition,
		}
	}
	pl := &planner{
		slotAxes: make([]Axis, len(slots)),
		cells:    make([]cellset, len(slots)),
		offsets:  make([]Cell, len(slots)),
		visited:  make(map[string]bool),
		budget:   budget,
	}
	for _, plc := range a.Placements {
		si, ok := slotIndex(plc.Slot[0])
		if !ok || plc.Piece < 1 || plc.Piece > len(slots) || plc.cells == nil {
			return nil, Error{
				Scope:     ArgumentScope,
				Structure: AttributeValueStructure,
				Attribute: TokenAttribute,
				Condition: BadTokenCondition,
				Values:    ErrorData{plc.Token()},
			}
		}
		pi := plc.Piece - 1
		pl.slotAxes[pi] = slots[si].axis
		pl.cells[pi] = newCellsetCopy(plc.cells)
	}
	for pi := range pl.cells {
		pl.inblock = append(pl.inblock, pi)
	}
	if pl.search() {
		return &Plan{Moves: mergeMoves(pl.moves), States: pl.states}, nil
	}
	if pl.exhausted {
		return nil, Error{
			Scope:     DisassemblyScope,
			Structure: AttributeValueStructure,
			Attribute: BudgetAttribute,
			Condition: SearchExhaustedCondition,
			Values:    ErrorData{budget, pl.states},
		}
	}
	return nil, Error{
		Scope:     DisassemblyScope,
		Structure: ScopeStructure,
		Condition: NoDisassemblyCondition,
		Values:    ErrorData{pl.states},
	}
}
