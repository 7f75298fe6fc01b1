package burr

/*

Burr assembly search

The search fills the six slots in A through F order, one slot
per level of a depth-first enumeration:

1. Take the next slot in letter order.

2. Try each not-yet-used piece in increasing piece number, and
for each piece try its admissible orientations in label order.
An orientation is admissible when its placement covers the
slot's eight required end-block cells.

3. If the placement overlaps the cells already occupied, reject
the candidate and move on to the next orientation.

4. Otherwise commit the placement and recurse on the next slot.

5. When all six slots are filled, accept if the occupied cells
cover the whole solid, reject otherwise.

Because slots, pieces, and orientations are always tried in the
same order, the search is deterministic: the same puzzle always
yields the same assembly and the same count of candidates
examined.  Every rejection (at any depth) counts one candidate,
and the accepted assembly counts one more, so the count is a
reproducible difficulty signal for a puzzle.

A puzzle whose pieces hold fewer cells than the solid can never
cover it, so that case fails fast without enumeration and
reports zero candidates examined.

*/

// A searcher holds the working state of one assembly
// enumeration: the placement table, the occupancy set, and the
// candidate counter.
type searcher struct {
	pieces   []Piece
	table    [6][6][]variant // placements by slot index, piece index
	used     [6]bool
	chosen   []Placement
	occupied cellset
	examined int
}

// newSearcher precomputes the admissible placements of every
// piece in every slot, in world coordinates.
func newSearcher(pieces []Piece) *searcher {
	s := &searcher{pieces: pieces}
	for si, slot := range slots {
		for pi, p := range pieces {
			s.table[si][pi] = admissible(slot, p)
		}
	}
	return s
}

// search fills the slot at the given depth, recursing to fill
// the rest.  Returns whether a complete assembly was found.
func (s *searcher) search(depth int) bool {
	if depth == len(slots) {
		s.examined++
		return len(s.occupied) == len(solid)
	}
	for pi := range s.pieces {
		if s.used[pi] {
			continue
		}
		for _, v := range s.table[depth][pi] {
			if !v.cells.disjoint(s.occupied) {
				s.examined++
				continue
			}
			s.used[pi] = true
			s.chosen = append(s.chosen, Placement{
				Slot:        slots[depth].Name(),
				Piece:       pi + 1,
				Orientation: string(v.label),
				cells:       v.cells,
			})
			saved := s.occupied
			s.occupied = s.occupied.union(v.cells)
			if s.search(depth + 1) {
				return true
			}
			s.occupied = saved
			s.chosen = s.chosen[:len(s.chosen)-1]
			s.used[pi] = false
		}
	}
	return false
}

// Solve runs the assembly search and returns the first assembly
// in enumeration order, with its candidate count.  If no
// assembly fills the solid the error satisfies IsNoAssembly.
func (p *Puzzle) Solve() (*Assembly, error) {
	if total := p.TotalVoxels(); total < len(solid) {
		return nil, Error{
			Scope:     AssemblyScope,
			Structure: ScopeStructure,
			Condition: VoxelShortfallCondition,
			Values:    ErrorData{total, len(solid)},
		}
	}
	s := newSearcher(p.pieces)
	if !s.search(0) {
		return nil, Error{
			Scope:     AssemblyScope,
			Structure: ScopeStructure,
			Condition: NoAssemblyCondition,
			Values:    ErrorData{s.examined},
		}
	}
	return &Assembly{
		Placements: append([]Placement(nil), s.chosen...),
		Candidates: s.examined,
	}, nil
}
