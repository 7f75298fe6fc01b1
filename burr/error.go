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
)

/*

Errors

*/

// An Error describes a problem with a puzzle or a requested
// operation.  It can produce an error message in English, but
// its main function is to support programmatic handling by
// clients.  It tells the client "this thing failed to meet this
// condition", and provides supplemental details about the thing
// and the condition.
type Error struct {
	Scope     ErrorScope     `json:"scope"`
	Structure ErrorStructure `json:"structure,omitempty"`
	Condition ErrorCondition `json:"condition,omitempty"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// An ErrorScope explains what type of thing the error is
// referring to.  In the case of client errors, this is either a
// client-supplied argument or some aspect of the puzzle
// geometry.  In the case of internal logic errors, this is where
// in the code the failure occurred.
type ErrorScope int

// Constants for the various error scopes.
const (
	UnknownScope ErrorScope = iota
	RequestScope
	ArgumentScope
	ShapeScope
	AssemblyScope
	DisassemblyScope
	InternalScope
	MaxScope
)

// The ErrorStructure denotes whether the problem is in the
// overall Scope, an Attribute of the Scope, or the value of an
// Attribute of the Scope.
type ErrorStructure int

// Constants for the various structure codes.
const (
	UnknownStructure ErrorStructure = iota
	ScopeStructure
	AttributeStructure
	AttributeValueStructure
	MaxStructure
)

// The ErrorCondition is the predicate that the
// scope/attribute/value failed to satisfy.  There are a bunch of
// known, named predicates and then a "general" (arbitrary
// English string) predicate for runtime errors.
type ErrorCondition int

// Constants for the various error conditions
const (
	UnknownCondition ErrorCondition = iota
	GeneralCondition
	RowCountCondition
	RowLengthCondition
	BadRuneCondition
	EmptyShapeCondition
	WrongPieceCountCondition
	DuplicateSlotCondition
	DuplicatePieceCondition
	BadTokenCondition
	UnknownOrientationCondition
	VoxelShortfallCondition
	NoAssemblyCondition
	OverlapCondition
	CoverageCondition
	NoDisassemblyCondition
	SearchExhaustedCondition
	InvalidArgumentCondition
	MaxCondition
)

// An ErrorAttribute names the attribute that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	DecodeAttribute
	EncodeAttribute
	URLAttribute
	LocationAttribute
	NamedAttribute
	ShapeAttribute
	RowAttribute
	TokenAttribute
	PieceAttribute
	SlotAttribute
	OrientationAttribute
	BudgetAttribute
	MaxAttribute
)

// The ErrorData provides details about the thing that failed to
// meet the predicate (such as the offending shape row) as well
// as the predicate itself (such as the required row length).
//
// Every item in the slice of ErrorData is required to be
// JSON-serializable, so it can be returned to web clients.
// Sadly, there is no good way to express this condition in a way
// the compiler can check it, so we just have to rely on
// implementors to "do the right thing" and check the condition
// at runtime.
type ErrorData []interface{}

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will
// produce an appropriate (English, non-localized) message.
func (e Error) Error() string {
	es := e.Message
	if len(es) > 0 {
		return es
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	switch e.Scope {
	case RequestScope:
		es = "Invalid request: "
	case ArgumentScope:
		es = "Invalid argument: "
	case ShapeScope:
		es = fmt.Sprintf("Problem in shape %v: ", nextVal())
	case AssemblyScope:
		es = "Assembly failure: "
	case DisassemblyScope:
		es = "Disassembly failure: "
	case InternalScope:
		es = "Internal logic error: "
	default:
		es = "Unknown error: "
	}
	if e.Structure == AttributeStructure || e.Structure == AttributeValueStructure {
		switch e.Attribute {
		case DecodeAttribute:
			es += "JSON Decode error"
		case EncodeAttribute:
			es += "JSON Encode error"
		case URLAttribute:
			es += "Resource path"
		case NamedAttribute:
			es += fmt.Sprint(nextVal())
		case ShapeAttribute:
			es += "Shape"
		case RowAttribute:
			es += "Row"
		case TokenAttribute:
			es += "Token"
		case PieceAttribute:
			es += "Piece"
		case SlotAttribute:
			es += "Slot"
		case OrientationAttribute:
			es += "Orientation"
		case BudgetAttribute:
			es += "Budget"
		case LocationAttribute:
			es += fmt.Sprintf("In burr.%v", nextVal())
		default:
			es += "<Unknown attribute>"
		}
		if e.Structure == AttributeValueStructure {
			es += " (" + fmt.Sprint(nextVal()) + ")"
		}
		es += ": "
	}
	switch e.Condition {
	case GeneralCondition:
		es += fmt.Sprint(nextVal())
	case RowCountCondition:
		es += fmt.Sprintf("Must have exactly %v rows", nextVal())
	case RowLengthCondition:
		es += fmt.Sprintf("Must be exactly %v cells wide", nextVal())
	case BadRuneCondition:
		es += fmt.Sprintf("Cells must be 'x' or '.', got %q", nextVal())
	case EmptyShapeCondition:
		es += "Shape has no occupied cells"
	case WrongPieceCountCondition:
		es += fmt.Sprintf("A puzzle needs exactly %v pieces", nextVal())
	case DuplicateSlotCondition:
		es += fmt.Sprintf("Slot %v is already filled", nextVal())
	case DuplicatePieceCondition:
		es += fmt.Sprintf("Piece %v is already placed", nextVal())
	case BadTokenCondition:
		es += "Placements must look like \"A3a\""
	case UnknownOrientationCondition:
		es += fmt.Sprintf("Piece %v has no orientation %v", nextVal(), nextVal())
	case VoxelShortfallCondition:
		es += fmt.Sprintf("Pieces have %v cells, the solid needs %v", nextVal(), nextVal())
	case NoAssemblyCondition:
		es += fmt.Sprintf("No assembly fills the solid (%v candidates examined)", nextVal())
	case OverlapCondition:
		es += fmt.Sprintf("Placement %v overlaps earlier pieces", nextVal())
	case CoverageCondition:
		es += "Placements do not fill the solid"
	case NoDisassemblyCondition:
		es += fmt.Sprintf("No move sequence frees all pieces (%v states searched)", nextVal())
	case SearchExhaustedCondition:
		es += fmt.Sprintf("Gave up after %v states", nextVal())
	case InvalidArgumentCondition:
		es += "Required value was missing or invalid"
	default:
		es += fmt.Sprintf("Supplemental data is %v", values)
	}
	return es
}

/*

Condition predicates

*/

// condition extracts the ErrorCondition from any error that
// wraps an Error value.
func condition(e error) ErrorCondition {
	if err, ok := e.(Error); ok {
		return err.Condition
	}
	return UnknownCondition
}

// IsShapeFormat reports whether an error came from malformed
// shape text.
func IsShapeFormat(e error) bool {
	switch condition(e) {
	case RowCountCondition, RowLengthCondition, BadRuneCondition, EmptyShapeCondition:
		return true
	}
	return false
}

// IsNoAssembly reports whether an error means the assembly
// search completed without finding a filling of the solid.
func IsNoAssembly(e error) bool {
	c := condition(e)
	return c == NoAssemblyCondition || c == VoxelShortfallCondition
}

// IsNoDisassembly reports whether an error means the planner
// exhausted the reachable configurations without freeing all
// pieces.
func IsNoDisassembly(e error) bool {
	return condition(e) == NoDisassemblyCondition
}

// IsSearchExhausted reports whether an error means the planner
// hit its configuration budget before finishing.
func IsSearchExhausted(e error) bool {
	return condition(e) == SearchExhaustedCondition
}
