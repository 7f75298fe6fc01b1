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

// burrd serves the burr solver over HTTP.  It solves and (when
// asked) disassembles posted puzzles, and when the storage layer
// is connected it remembers every puzzle and solution it has
// computed, keyed by the puzzle's signature.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/matajoh/burr-solver/burr"
	"github.com/matajoh/burr-solver/storage"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("Startup failure", "error", err)
		os.Exit(2)
	}

	srv := &server{budget: cfg.Budget}
	if srv.budget == 0 {
		srv.budget = burr.DefaultBudget
	}
	if cfg.Storage {
		cacheId, databaseId, err := storage.Connect()
		if err != nil {
			slog.Error("Storage unavailable, continuing without it", "error", err)
		} else {
			srv.storage = true
			defer storage.Close()
			slog.Info("Storage connected", "cache", cacheId, "database", databaseId)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/solve", srv.solveHandler)
	mux.HandleFunc("/api/disassemble", srv.disassembleHandler)
	mux.HandleFunc("/api/puzzles/", srv.puzzleHandler)
	mux.HandleFunc("/api/puzzles", srv.puzzlesHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	hs := &http.Server{Addr: cfg.Addr, Handler: requestLogger(recovery(mux))}
	go shutdownOnSignal(hs)

	slog.Info("Listening", "addr", cfg.Addr, "storage", srv.storage)
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Listener failure", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

// shutdownOnSignal drains in-flight requests and stops the
// listener when the process is told to quit.
func shutdownOnSignal(hs *http.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	s := <-c
	slog.Info("Caught signal, shutting down", "signal", s.String())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hs.Shutdown(ctx)
}

/*

Middleware

*/

// requestLogger tags each request with an ID and logs its
// method, path, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("Handled request",
			"id", id, "method", r.Method, "path", r.URL.Path,
			"elapsed", time.Since(start).String())
	})
}

// recovery turns panics (the storage layer panics on
// infrastructure failures) into 500 responses instead of
// dropped connections.
func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("Recovered handler panic",
					"path", r.URL.Path, "panic", fmt.Sprint(err))
				sendFailure(w, burr.Error{
					Scope:     burr.InternalScope,
					Structure: burr.AttributeStructure,
					Attribute: burr.LocationAttribute,
					Condition: burr.GeneralCondition,
					Values:    burr.ErrorData{r.URL.Path, fmt.Sprint(err)},
				}, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

/*

Handlers

*/

// a server dispatches the solver endpoints.  When storage is
// off it delegates to the package handlers; when it is on it
// decodes requests itself so it can consult and feed the store.
type server struct {
	budget  int
	storage bool
}

func (srv *server) solveHandler(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	if !srv.storage {
		burr.SolveHandler(w, r)
		return
	}
	req, p, ok := decodeSolveRequest(w, r)
	if !ok {
		return
	}
	a, e := assemble(p, req.Selection)
	if e != nil {
		sendFailure(w, e, http.StatusNotFound)
		return
	}
	storage.SavePuzzle(r.Context(), p.Summary())
	sendJSON(w, http.StatusOK, &burr.Result{
		Name:       p.Name(),
		Level:      p.Level(),
		Assembly:   a.String(),
		Candidates: a.Candidates,
	})
}

func (srv *server) disassembleHandler(w http.ResponseWriter, r *http.Request) {
	if !postOnly(w, r) {
		return
	}
	if !srv.storage {
		burr.DisassembleHandler(w, r)
		return
	}
	req, p, ok := decodeSolveRequest(w, r)
	if !ok {
		return
	}
	// Only untweaked requests hit the solution store: an
	// explicit selection or budget may change the answer.
	cacheable := req.Selection == "" && req.Budget == 0
	id := p.Summary().Signature()
	if cacheable {
		if result := storage.LoadSolution(r.Context(), id); result != nil {
			// the store keeps only the solution; name and level
			// come from the posted puzzle
			result.Name = p.Name()
			result.Level = p.Level()
			sendJSON(w, http.StatusOK, result)
			return
		}
	}
	a, e := assemble(p, req.Selection)
	if e != nil {
		sendFailure(w, e, http.StatusNotFound)
		return
	}
	budget := req.Budget
	if budget == 0 {
		budget = srv.budget
	}
	plan, e := p.Disassemble(a, budget)
	if e != nil {
		sendFailure(w, e, http.StatusNotFound)
		return
	}
	result := &burr.Result{
		Name:       p.Name(),
		Level:      p.Level(),
		Assembly:   a.String(),
		Candidates: a.Candidates,
		Moves:      plan.Moves,
		States:     plan.States,
	}
	if cacheable {
		storage.SavePuzzle(r.Context(), p.Summary())
		storage.SaveSolution(r.Context(), id, result)
	}
	sendJSON(w, http.StatusOK, result)
}

// puzzlesHandler lists the stored puzzles.
func (srv *server) puzzlesHandler(w http.ResponseWriter, r *http.Request) {
	if !srv.storage {
		http.NotFound(w, r)
		return
	}
	sendJSON(w, http.StatusOK, storage.ListPuzzles(r.Context()))
}

// puzzleHandler returns one stored puzzle by signature.
func (srv *server) puzzleHandler(w http.ResponseWriter, r *http.Request) {
	if !srv.storage {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/puzzles/")
	if summary := storage.LoadPuzzle(r.Context(), id); summary != nil {
		sendJSON(w, http.StatusOK, summary)
		return
	}
	http.NotFound(w, r)
}

/*

Utilities

*/

func postOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != "POST" {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// assemble resolves a request's assembly the same way the
// package handlers do, preferring an explicit selection.
func assemble(p *burr.Puzzle, selection string) (*burr.Assembly, error) {
	if selection != "" {
		return p.Place(selection)
	}
	return p.Solve()
}

// decodeSolveRequest reads the posted request and builds its
// puzzle, sending the 400 responses itself.
func decodeSolveRequest(w http.ResponseWriter, r *http.Request) (*burr.SolveRequest, *burr.Puzzle, bool) {
	var req burr.SolveRequest
	if e := json.NewDecoder(r.Body).Decode(&req); e != nil {
		sendFailure(w, burr.Error{
			Scope:     burr.RequestScope,
			Structure: burr.AttributeStructure,
			Attribute: burr.DecodeAttribute,
			Condition: burr.GeneralCondition,
			Values:    burr.ErrorData{e.Error()},
		}, http.StatusBadRequest)
		return nil, nil, false
	}
	p, e := burr.New(&req.Puzzle)
	if e != nil {
		sendFailure(w, e, http.StatusBadRequest)
		return nil, nil, false
	}
	return &req, p, true
}

// sendFailure sends a domain Error with the given status.
func sendFailure(w http.ResponseWriter, e error, status int) {
	err, ok := e.(burr.Error)
	if !ok {
		err = burr.Error{
			Scope:     burr.InternalScope,
			Structure: burr.AttributeStructure,
			Attribute: burr.LocationAttribute,
			Condition: burr.GeneralCondition,
			Values:    burr.ErrorData{e.Error()},
		}
	}
	err.Message = err.Error()
	sendJSON(w, status, err)
}

func sendJSON(w http.ResponseWriter, status int, obj interface{}) {
	bytes, e := json.Marshal(obj)
	if e != nil {
		http.Error(w, e.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
