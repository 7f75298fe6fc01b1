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
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultBudget is the planner budget handlers use when the
// request doesn't carry one.  A solvable six-piece burr needs
// far fewer configurations; the bound exists so a hostile or
// hopeless puzzle can't pin a worker forever.
const DefaultBudget = 1 << 20

/*

Solve requests

*/

// A SolveRequest is what clients post: a puzzle summary, an
// optional explicit selection (skipping the assembly search),
// and an optional planner budget.
type SolveRequest struct {
	Puzzle    Summary `json:"puzzle"`
	Selection string  `json:"selection,omitempty"`
	Budget    int     `json:"budget,omitempty"`
}

// A Result is a solved puzzle: the assembly in compact form,
// the candidates the search examined, and the disassembly plan
// (when one was requested and found).
type Result struct {
	Name       string `json:"name,omitempty"`
	Level      int    `json:"level"`
	Assembly   string `json:"assembly"`
	Candidates int    `json:"candidates"`
	Moves      []Move `json:"moves,omitempty"`
	States     int    `json:"states,omitempty"`
}

// assemble resolves the request's assembly: the explicit
// selection if one was given, the assembly search otherwise.
func (req *SolveRequest) assemble(p *Puzzle) (*Assembly, error) {
	if req.Selection != "" {
		return p.Place(req.Selection)
	}
	return p.Solve()
}

/*

HTTP handlers

*/

// SolveHandler is a POST handler that reads a JSON-encoded
// SolveRequest from the request body and runs the assembly
// search (or validates the explicit selection).  The Result is
// sent as a 200 response and returned to the golang caller.
// Failures to assemble are sent as a 404; malformed puzzles as
// a 400.
func SolveHandler(w http.ResponseWriter, r *http.Request) (*Result, error) {
	req, p, e := decodeSolveRequest(w, r)
	if e != nil {
		return nil, e
	}
	a, e := req.assemble(p)
	if e != nil {
		return nil, writeFailure(e, http.StatusNotFound, w, r)
	}
	result := &Result{
		Name:       p.Name(),
		Level:      p.Level(),
		Assembly:   a.String(),
		Candidates: a.Candidates,
	}
	return result, writeJSON(result, http.StatusOK, w, r)
}

// DisassembleHandler is a POST handler that assembles the
// posted puzzle and then plans its disassembly.  The Result
// (assembly plus merged moves) is sent as a 200 response and
// returned to the golang caller.  Puzzles that assemble but
// cannot be taken apart are sent as a 404 carrying the Error.
func DisassembleHandler(w http.ResponseWriter, r *http.Request) (*Result, error) {
	req, p, e := decodeSolveRequest(w, r)
	if e != nil {
		return nil, e
	}
	a, e := req.assemble(p)
	if e != nil {
		return nil, writeFailure(e, http.StatusNotFound, w, r)
	}
	budget := req.Budget
	if budget == 0 {
		budget = DefaultBudget
	}
	plan, e := p.Disassemble(a, budget)
	if e != nil {
		return nil, writeFailure(e, http.StatusNotFound, w, r)
	}
	result := &Result{
		Name:       p.Name(),
		Level:      p.Level(),
		Assembly:   a.String(),
		Candidates: a.Candidates,
		Moves:      plan.Moves,
		States:     plan.States,
	}
	return result, writeJSON(result, http.StatusOK, w, r)
}

// decodeSolveRequest reads the posted SolveRequest and builds
// its puzzle, handling the error responses for malformed JSON
// and malformed shapes.
func decodeSolveRequest(w http.ResponseWriter, r *http.Request) (*SolveRequest, *Puzzle, error) {
	dec := json.NewDecoder(r.Body)
	var req SolveRequest
	if e := dec.Decode(&req); e != nil {
		return nil, nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	p, e := New(&req.Puzzle)
	if e != nil {
		return nil, nil, writeFailure(e, http.StatusBadRequest, w, r)
	}
	return &req, p, nil
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	errorFormatError
)

// writeFailure sends a domain Error back to the client with the
// given status, wrapping non-Error values first.
func writeFailure(e error, status int, w http.ResponseWriter, r *http.Request) error {
	err, ok := e.(Error)
	if !ok {
		return writeError(errorFormatError, ErrorData{"writeFailure", e.Error()}, w, r)
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeError sends back a server error of the given type, sort
// of like http.Error, but it sends the JSON form of an
// appropriate Error.
func writeError(et handlerError, ed ErrorData,
	w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case errorFormatError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values: ErrorData{
				"writeError",
				fmt.Sprintf("Unknown handler error type (%v)", et),
			},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller, as follows:
//
// 1. If writeJSON encounters an encoding error sending the
// response, it will create an Error object describing the
// failure, encode that Error as a 500-series response to the
// client, and return that Error to the handler.
//
// 2. If no encoding error occurs, but the handler is sending an
// Error object as the response to the client, writeJSON will
// return that same Error to the handler.
//
// 3. If no encoding error occurs, and the handler is sending a
// non-Error object as the response to the client, writeJSON will
// return nil to the handler.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an Encoding error.  This
			// should never happen!!  If it did, it almost
			// certainly means that the JSON encoding system is
			// dead, so pseudo-encode the error by hand by
			// returning the Error's summary as a quoted string.
			status = http.StatusInternalServerError // probably was already!
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			// generate, send, and return an encoding error
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
