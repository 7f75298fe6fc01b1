// Copyright 2026 Matthew Johnson.  All rights reserved.

// Package burr provides a model for six-piece burr puzzles and
// operations on them.  It supports both a golang interface and a
// web interface to the puzzles.
//
// In this package, a burr puzzle is made of six notched square
// bars, each described by shape text: four rows of six cells,
// "x" for wood and "." for a notched-out cell.  The assembled
// puzzle interlocks the six bars in three orthogonal pairs, so
// the bars fill a 104-cell solid centered on the origin.  Each
// bar position in the solid is a slot, named A through F, and a
// piece can sit in a slot in up to eight orientations, labeled a
// through h.
//
// Assembling a puzzle means finding a slot, piece, and
// orientation for all six pieces so the placements fill the
// solid exactly.  The assembly search enumerates candidates in
// a fixed documented order, so the number of candidates
// examined is a reproducible measure of how hard a puzzle
// resists assembly.
//
// An assembled puzzle is only a real puzzle if it can also be
// taken apart.  The disassembly planner searches for a sequence
// of single-piece axis-parallel slides that frees all six
// pieces, moving one unit at a time and reporting merged
// slides.  Puzzles whose assemblies interlock permanently (or
// that need several pieces moved at once) are reported as
// having no disassembly.
package burr

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// A Summary is the exchange form of a puzzle: a name and the
// six shape texts.  Summaries are what clients post to create
// puzzles and what the storage layer persists.
type Summary struct {
	Name   string   `json:"name,omitempty"`
	Shapes []string `json:"shapes"`
}

// Signature computes the identity of a puzzle from its shapes:
// the hex form of a SHA-256 over the shape texts.  The name is
// left out, so renaming a puzzle doesn't make it a new one.
func (s *Summary) Signature() string {
	sum := sha256.Sum256([]byte(strings.Join(s.Shapes, "+")))
	return hex.EncodeToString(sum[:])
}

// A Puzzle is six parsed pieces.  Pieces are numbered 1 through
// 6 in the order their shapes were given.
type Puzzle struct {
	name   string
	pieces []Piece
}

// New either returns a Puzzle built from the summary's six
// shape texts or an error describing the malformed shape.
func New(summary *Summary) (*Puzzle, error) {
	if summary == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: ScopeStructure,
			Condition: InvalidArgumentCondition,
		}
	}
	if len(summary.Shapes) != len(slots) {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: ShapeAttribute,
			Condition: WrongPieceCountCondition,
			Values:    ErrorData{len(summary.Shapes), len(slots)},
		}
	}
	pieces := make([]Piece, len(summary.Shapes))
	for i, text := range summary.Shapes {
		p, e := newPiece(i+1, text)
		if e != nil {
			return nil, e
		}
		pieces[i] = p
	}
	return &Puzzle{name: summary.Name, pieces: pieces}, nil
}

// Name returns the puzzle's name, which may be empty.
func (p *Puzzle) Name() string {
	return p.name
}

// Pieces returns the puzzle's pieces in id order.  The returned
// slice doesn't share storage with the puzzle.
func (p *Puzzle) Pieces() []Piece {
	return append([]Piece(nil), p.pieces...)
}

// Summary returns the exchange form of the puzzle.
func (p *Puzzle) Summary() *Summary {
	shapes := make([]string, len(p.pieces))
	for i, pc := range p.pieces {
		shapes[i] = pc.text
	}
	return &Summary{Name: p.name, Shapes: shapes}
}

// TotalVoxels returns the combined cell count of all pieces.
func (p *Puzzle) TotalVoxels() (total int) {
	for _, pc := range p.pieces {
		total += len(pc.cells)
	}
	return
}

// Level rates the puzzle by how much wood has been notched
// away: a solid-piece puzzle that exactly fills the 104-cell
// solid is level 1, and each additional missing cell adds one.
func (p *Puzzle) Level() int {
	return len(solid) + 1 - p.TotalVoxels()
}

/*

Assemblies

*/

// A Placement binds a piece, in one of its orientations, to a
// slot.
type Placement struct {
	Slot        string `json:"slot"`
	Piece       int    `json:"piece"`
	Orientation string `json:"orientation"`
	cells       cellset
}

// Token renders a placement in the compact form "A3a": slot
// letter, piece number, orientation label.
func (pl Placement) Token() string {
	return pl.Slot + string(byte('0'+pl.Piece)) + pl.Orientation
}

// Cells returns the world-coordinate cells the placement
// occupies.  The returned slice doesn't share storage with the
// placement.
func (pl Placement) Cells() []Cell {
	return append([]Cell(nil), pl.cells...)
}

// An Assembly is a complete filling of the solid: one placement
// per slot, in slot order, plus the number of candidates the
// search examined before accepting it.
type Assembly struct {
	Placements []Placement `json:"placements"`
	Candidates int         `json:"candidates"`
}

// Place validates an explicit selection like "A3a B1f C2b D6d
// E4c F5a" against the puzzle: all six slots filled, each piece
// used once, every orientation label real, the placements
// disjoint and together covering the solid.  No search happens
// and no candidates are counted.
func (p *Puzzle) Place(selection string) (*Assembly, error) {
	tokens := strings.Fields(selection)
	if len(tokens) != len(slots) {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: TokenAttribute,
			Condition: WrongPieceCountCondition,
			Values:    ErrorData{selection, len(tokens), len(slots)},
		}
	}
	var filled [6]bool
	var used [6]bool
	var occupied cellset
	placements := make([]Placement, 0, len(slots))
	for _, tok := range tokens {
		si, pi, v, e := p.parseToken(tok)
		if e != nil {
			return nil, e
		}
		if filled[si] {
			return nil, Error{
				Scope:     ArgumentScope,
				Structure: AttributeValueStructure,
				Attribute: SlotAttribute,
				Condition: DuplicateSlotCondition,
				Values:    ErrorData{tok, slots[si].Name()},
			}
		}
		if used[pi] {
			return nil, Error{
				Scope:     ArgumentScope,
				Structure: AttributeValueStructure,
				Attribute: PieceAttribute,
				Condition: DuplicatePieceCondition,
				Values:    ErrorData{tok, pi + 1},
			}
		}
		placed := slots[si].placeAll(v.cells)
		if !placed.disjoint(occupied) {
			return nil, Error{
				Scope:     AssemblyScope,
				Structure: AttributeValueStructure,
				Attribute: TokenAttribute,
				Condition: OverlapCondition,
				Values:    ErrorData{tok, tok},
			}
		}
		filled[si], used[pi] = true, true
		occupied = occupied.union(placed)
		placements = append(placements, Placement{
			Slot:        slots[si].Name(),
			Piece:       pi + 1,
			Orientation: string(v.label),
			cells:       placed,
		})
	}
	if len(occupied) != len(solid) {
		return nil, Error{
			Scope:     AssemblyScope,
			Structure: ScopeStructure,
			Condition: CoverageCondition,
			Values:    ErrorData{len(occupied), len(solid)},
		}
	}
	sort.Slice(placements, func(i, j int) bool {
		return placements[i].Slot < placements[j].Slot
	})
	return &Assembly{Placements: placements}, nil
}

// parseToken takes apart one "A3a" token, returning the slot
// index, the piece index, and the piece's oriented variant.
func (p *Puzzle) parseToken(tok string) (si, pi int, v variant, e error) {
	badToken := Error{
		Scope:     ArgumentScope,
		Structure: AttributeValueStructure,
		Attribute: TokenAttribute,
		Condition: BadTokenCondition,
		Values:    ErrorData{tok},
	}
	if len(tok) != 3 {
		return 0, 0, variant{}, badToken
	}
	si, ok := slotIndex(tok[0])
	if !ok {
		return 0, 0, variant{}, badToken
	}
	if tok[1] < '1' || tok[1] > '6' {
		return 0, 0, variant{}, badToken
	}
	pi = int(tok[1] - '1')
	v, ok = p.pieces[pi].orientation(tok[2])
	if !ok {
		return 0, 0, variant{}, Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: OrientationAttribute,
			Condition: UnknownOrientationCondition,
			Values:    ErrorData{tok, pi + 1, string(tok[2])},
		}
	}
	return si, pi, v, nil
}
