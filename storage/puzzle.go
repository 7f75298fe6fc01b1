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

puzzle entries

*/

// A puzzleEntry represents the stored form of a puzzle.  It is
// JSON serializable so it can go into the cache as well as the
// database.
type puzzleEntry struct {
	PuzzleId string // puzzle signature
	Name     string
	Shapes   []string
	Level    int32
}

// key: compute the cache key for a puzzleEntry.
func (pe *puzzleEntry) key() string {
	return "PID:" + pe.PuzzleId
}

// loadPuzzleEntry first checks the cache, then the database, to
// find the puzzle's entry.  If it loads from the database, it
// caches the result.  Returns nil if there is no such stored
// entry.
func loadPuzzleEntry(ctx context.Context, id string) *puzzleEntry {
	pe := &puzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe
	}
	// cache miss, load from database and save to cache
	if !pe.databaseLoad(ctx) {
		return nil
	}
	pe.cacheInsert()
	return pe
}

// makeSummary: make the summary described in a puzzle entry
func (pe *puzzleEntry) makeSummary() *burr.Summary {
	return &burr.Summary{
		Name:   pe.Name,
		Shapes: append([]string(nil), pe.Shapes...),
	}
}

// cacheLoad: load an already cached puzzle entry.  Returns
// whether the entry was found in the cache.
func (pe *puzzleEntry) cacheLoad() bool {
	var bytes []byte
	body := func(conn redis.Conn) (err error) {
		bytes, err = redis.Bytes(conn.Do("GET", pe.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading puzzleEntry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var spe *puzzleEntry
	err := json.Unmarshal(bytes, &spe)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal puzzleEntry %q: %v", pe.PuzzleId, err))
	}
	if spe.PuzzleId != pe.PuzzleId {
		panic(fmt.Errorf("Cached puzzleEntry (id: %q) found for puzzle %q!",
			spe.PuzzleId, pe.PuzzleId))
	}
	*pe = *spe
	return true
}

// databaseLoad: load a puzzle entry from the database.  Returns
// whether one was stored.
func (pe *puzzleEntry) databaseLoad(ctx context.Context) bool {
	found := true
	body := func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx,
			"SELECT name, shapeList, level FROM puzzles "+
				"WHERE puzzleId = $1", pe.PuzzleId)
		err := row.Scan(&pe.Name, &pe.Shapes, &pe.Level)
		if err == pgx.ErrNoRows {
			found = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
		return nil
	}
	pgExecute(ctx, body)
	return found
}

// cacheInsert: insert a puzzle entry into the cache.  Replaces
// any existing entry with the same id.
func (pe *puzzleEntry) cacheInsert() {
	bytes, e := json.Marshal(pe)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal puzzleEntry %q: %v", pe.PuzzleId, e))
	}
	body := func(conn redis.Conn) (err error) {
		_, err = conn.Do("SET", pe.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseUpsert: save a puzzle entry to the database.  The
// signature is derived from the shapes, so two saves of the same
// shapes can only differ in name; the latest name wins.
func (pe *puzzleEntry) databaseUpsert(ctx context.Context) {
	body := func(tx pgx.Tx) (err error) {
		_, err = tx.Exec(ctx,
			"INSERT INTO puzzles (puzzleId, name, shapeList, level, created) "+
				"VALUES ($1, $2, $3, $4, $5) "+
				"ON CONFLICT (puzzleId) DO UPDATE SET name = $2",
			pe.PuzzleId, pe.Name, pe.Shapes, pe.Level, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	pgExecute(ctx, body)
}

/*

puzzle operations

*/

// SavePuzzle stores a puzzle in the cache and the database and
// returns its signature.  The summary must already have passed
// burr.New, so the level computation can't fail.
func SavePuzzle(ctx context.Context, summary *burr.Summary) (string, error) {
	p, e := burr.New(summary)
	if e != nil {
		return "", e
	}
	pe := &puzzleEntry{
		PuzzleId: summary.Signature(),
		Name:     summary.Name,
		Shapes:   append([]string(nil), summary.Shapes...),
		Level:    int32(p.Level()),
	}
	pe.databaseUpsert(ctx)
	pe.cacheInsert()
	return pe.PuzzleId, nil
}

// LoadPuzzle finds a stored puzzle by signature, checking the
// cache before the database.  Returns nil when no puzzle with
// the signature is stored.
func LoadPuzzle(ctx context.Context, id string) *burr.Summary {
	pe := loadPuzzleEntry(ctx, id)
	if pe == nil {
		return nil
	}
	return pe.makeSummary()
}

// A PuzzleInfo is the listing form of a stored puzzle.
type PuzzleInfo struct {
	PuzzleId string `json:"id"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

// ListPuzzles returns the stored puzzles in name order.
func ListPuzzles(ctx context.Context) []*PuzzleInfo {
	var infos []*PuzzleInfo
	body := func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			"SELECT puzzleId, name, level FROM puzzles ORDER BY name")
		if err != nil {
			return fmt.Errorf("Failure listing puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			pi := &PuzzleInfo{}
			var level int32
			if err := rows.Scan(&pi.PuzzleId, &pi.Name, &level); err != nil {
				return fmt.Errorf("Failure scanning puzzle row: %v", err)
			}
			pi.Level = int(level)
			infos = append(infos, pi)
		}
		return rows.Err()
	}
	pgExecute(ctx, body)
	return infos
}
