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

package dbprep

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/matajoh/burr-solver/burr"
)

/*

entries

*/

type dataFunction func(context.Context, pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample data into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample data from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/burr?sslmode=disable"
	}

	// open the database, defer the close
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback(ctx)
				panic(e)
			}
		}()
		if err := fn(ctx, tx); err != nil {
			tx.Rollback(ctx)
			return err
		}
		return tx.Commit(ctx)
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("data function failed: %v", err)
		}
	}
	return nil
}

/*

insert sample puzzles

*/

var (
	sampleSummaries = burr.Samples()
	sampleHashes    []string // see init
)

// initialize the hashes from the sample puzzles
func init() {
	sampleHashes = make([]string, len(sampleSummaries))
	for i, summary := range sampleSummaries {
		sampleHashes[i] = summary.Signature()
	}
}

// Create and insert the sample puzzles
func insertSamples(ctx context.Context, tx pgx.Tx) error {
	// idempotency: if the first sample already exists, we are done
	var count int64
	row := tx.QueryRow(ctx, "SELECT COUNT(*) FROM puzzles "+
		"WHERE puzzleId = $1", sampleHashes[0])
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("Database error looking for sample puzzles: %v", err)
	}
	if count > 0 {
		return nil
	}

	// get the timestamp of this load
	now := time.Now()

	for i, summary := range sampleSummaries {
		p, err := burr.New(summary)
		if err != nil {
			return fmt.Errorf("Can't happen! Sample summary %d is invalid: %v", i, err)
		}
		_, err = tx.Exec(ctx,
			"INSERT INTO puzzles (puzzleId, name, shapeList, level, created) "+
				"VALUES ($1, $2, $3, $4, $5)",
			sampleHashes[i], summary.Name, summary.Shapes, int32(p.Level()), now)
		if err != nil {
			return fmt.Errorf("Database error saving sample puzzle %d: %v", i, err)
		}
	}
	return nil
}

// Delete the sample puzzles and any solutions computed for them
func deleteSamples(ctx context.Context, tx pgx.Tx) error {
	for i, hash := range sampleHashes {
		_, err := tx.Exec(ctx,
			"DELETE from solutions where puzzleId = $1", hash)
		if err != nil {
			return fmt.Errorf("Database error deleting sample solution %d: %v", i, err)
		}
		_, err = tx.Exec(ctx,
			"DELETE from puzzles where puzzleId = $1", hash)
		if err != nil {
			return fmt.Errorf("Database error deleting sample puzzle %d: %v", i, err)
		}
	}
	return nil
}
