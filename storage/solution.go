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

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"
	"github.com/matajoh/burr-solver/burr"
)

/*

solution entries

Assembly and disassembly searches are deterministic, so a
puzzle's solution never changes once computed.  That makes
solutions perfect cache material: a solve of a stored puzzle is
saved under its signature and every later request is a lookup.

*/

// A solutionEntry represents the stored form of a solved puzzle.
// It is JSON serializable so it can go into the cache as well as
// the database.
type solutionEntry struct {
	PuzzleId   string // puzzle signature
	Assembly   string
	Candidates int32
	Moves      []burr.Move // only solved puzzles are stored, so never empty
	States     int32
}

// key: compute the cache key for a solutionEntry.
func (se *solutionEntry) key() string {
	return "SOL:" + se.PuzzleId
}

// cacheLoad: load an already cached solution entry.  Returns
// whether the entry was found in the cache.
func (se *solutionEntry) cacheLoad() bool {
	var bytes []byte
	body := func(conn redis.Conn) (err error) {
		bytes, err = redis.Bytes(conn.Do("GET", se.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading solutionEntry %q: %v", se.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var sse *solutionEntry
	err := json.Unmarshal(bytes, &sse)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal solutionEntry %q: %v", se.PuzzleId, err))
	}
	if sse.PuzzleId != se.PuzzleId {
		panic(fmt.Errorf("Cached solutionEntry (id: %q) found for puzzle %q!",
			sse.PuzzleId, se.PuzzleId))
	}
	*se = *sse
	return true
}

// databaseLoad: load a solution entry from the database.
// Returns whether one was stored.
func (se *solutionEntry) databaseLoad(ctx context.Context) bool {
	found := true
	body := func(tx pgx.Tx) error {
		var moves []byte
		row := tx.QueryRow(ctx,
			"SELECT assembly, candidates, moveList, states FROM solutions "+
				"WHERE puzzleId = $1", se.PuzzleId)
		err := row.Scan(&se.Assembly, &se.Candidates, &moves, &se.States)
		if err == pgx.ErrNoRows {
			found = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up solution %q: %v", se.PuzzleId, err)
		}
		if err := json.Unmarshal(moves, &se.Moves); err != nil {
			return fmt.Errorf("Failed to unmarshal moves for %q: %v", se.PuzzleId, err)
		}
		return nil
	}
	pgExecute(ctx, body)
	return found
}

// cacheInsert: insert a solution entry into the cache.  Replaces
// any existing entry with the same id.
func (se *solutionEntry) cacheInsert() {
	bytes, e := json.Marshal(se)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal solutionEntry %q: %v", se.PuzzleId, e))
	}
	body := func(conn redis.Conn) (err error) {
		_, err = conn.Do("SET", se.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving solution entry %q: %v", se.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseUpsert: save a solution entry to the database.
// Solutions are deterministic, so a conflicting row is by
// definition identical and the insert can be skipped.
func (se *solutionEntry) databaseUpsert(ctx context.Context) {
	moves, e := json.Marshal(se.Moves)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal moves for %q: %v", se.PuzzleId, e))
	}
	body := func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx,
			"INSERT INTO solutions (puzzleId, assembly, candidates, moveList, states, created) "+
				"VALUES ($1, $2, $3, $4, $5, $6) "+
				"ON CONFLICT (puzzleId) DO NOTHING",
			se.PuzzleId, se.Assembly, se.Candidates, moves, se.States, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving solution entry %q: %v", se.PuzzleId, err)
		}
		return
	}
	pgExecute(ctx, body)
}

/*

solution operations

*/

// LoadSolution finds the stored solution of a puzzle by
// signature, checking the cache before the database.  Returns
// nil when no solution is stored.
func LoadSolution(ctx context.Context, id string) *burr.Result {
	se := &solutionEntry{PuzzleId: id}
	if !se.cacheLoad() {
		if !se.databaseLoad(ctx) {
			return nil
		}
		se.cacheInsert()
	}
	return &burr.Result{
		Assembly:   se.Assembly,
		Candidates: int(se.Candidates),
		Moves:      se.Moves,
		States:     int(se.States),
	}
}

// SaveSolution stores a solved puzzle's result in the cache and
// the database.
func SaveSolution(ctx context.Context, id string, result *burr.Result) {
	se := &solutionEntry{
		PuzzleId:   id,
		Assembly:   result.Assembly,
		Candidates: int32(result.Candidates),
		Moves:      result.Moves,
		States:     int32(result.States),
	}
	se.databaseUpsert(ctx)
	se.cacheInsert()
}
