package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/matajoh/burr-solver/burr"
)

func sampleSummary(t *testing.T, name string) *burr.Summary {
	summary, ok := burr.Sample(name)
	if !ok {
		t.Fatalf("No bundled puzzle named %q", name)
	}
	return summary
}

// newTestServer builds a burrd with storage off, wrapped in the
// production middleware.
func newTestServer() *httptest.Server {
	srv := &server{budget: burr.DefaultBudget}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/solve", srv.solveHandler)
	mux.HandleFunc("/api/disassemble", srv.disassembleHandler)
	mux.HandleFunc("/api/puzzles", srv.puzzlesHandler)
	return httptest.NewServer(requestLogger(recovery(mux)))
}

func postRequest(t *testing.T, url string, req *burr.SolveRequest) *http.Response {
	body, e := json.Marshal(req)
	if e != nil {
		t.Fatalf("Couldn't encode request: %v", e)
	}
	resp, e := http.Post(url, "application/json", bytes.NewReader(body))
	if e != nil {
		t.Fatalf("Request to %s failed: %v", url, e)
	}
	return resp
}

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("BURRD_CONFIG")
	cfg, e := loadConfig("")
	if e != nil {
		t.Fatalf("Default config failed: %v", e)
	}
	if cfg.Addr != "localhost:8080" || !cfg.Storage || cfg.Budget != 0 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burrd.yaml")
	content := "addr: \":9090\"\nbudget: 500\nstorage: false\n"
	if e := os.WriteFile(path, []byte(content), 0644); e != nil {
		t.Fatalf("Couldn't write config: %v", e)
	}
	os.Unsetenv("PORT")
	cfg, e := loadConfig(path)
	if e != nil {
		t.Fatalf("Config load failed: %v", e)
	}
	if cfg.Addr != ":9090" || cfg.Budget != 500 || cfg.Storage {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadConfigPortOverride(t *testing.T) {
	os.Setenv("PORT", "1234")
	defer os.Unsetenv("PORT")
	cfg, e := loadConfig("")
	if e != nil {
		t.Fatalf("Config load failed: %v", e)
	}
	if cfg.Addr != ":1234" {
		t.Errorf("PORT not sensed: got addr %q", cfg.Addr)
	}
}

func TestSolveEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := postRequest(t, ts.URL+"/api/solve",
		&burr.SolveRequest{Puzzle: *sampleSummary(t, "oak")})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Solve returned status %d", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-Id"); id == "" {
		t.Errorf("Response carries no request ID")
	}
	var result burr.Result
	if e := json.NewDecoder(resp.Body).Decode(&result); e != nil {
		t.Fatalf("Couldn't decode result: %v", e)
	}
	if result.Assembly != "A1a B2a C3a D4a E5a F6a" {
		t.Errorf("Unexpected assembly: %q", result.Assembly)
	}
}

func TestDisassembleEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp := postRequest(t, ts.URL+"/api/disassemble",
		&burr.SolveRequest{Puzzle: *sampleSummary(t, "oak")})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Disassemble returned status %d", resp.StatusCode)
	}
	var result burr.Result
	if e := json.NewDecoder(resp.Body).Decode(&result); e != nil {
		t.Fatalf("Couldn't decode result: %v", e)
	}
	if len(result.Moves) != 13 || result.States != 22 {
		t.Errorf("Unexpected plan: %d moves, %d states",
			len(result.Moves), result.States)
	}
}

func TestMethodEnforcement(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, e := http.Get(ts.URL + "/api/solve")
	if e != nil {
		t.Fatalf("Request failed: %v", e)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET solve returned status %d", resp.StatusCode)
	}
}

func TestPuzzlesWithoutStorage(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, e := http.Get(ts.URL + "/api/puzzles")
	if e != nil {
		t.Fatalf("Request failed: %v", e)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Puzzle list without storage returned status %d", resp.StatusCode)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("cache failure")
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/puzzles", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Panic returned status %d", w.Code)
	}
	var err burr.Error
	if e := json.Unmarshal(w.Body.Bytes(), &err); e != nil {
		t.Fatalf("Couldn't decode error body: %v", e)
	}
	if err.Scope != burr.InternalScope {
		t.Errorf("Unexpected error scope: %v", err.Scope)
	}
}
