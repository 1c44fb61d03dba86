package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTMDB creates an httptest.Server that answers TMDB paths.
// It provides a fluent API for routing paths to JSON bodies or statuses.
type fakeTMDB struct {
	t      *testing.T
	routes map[string]http.HandlerFunc

	mu   sync.Mutex
	hits map[string]int
}

// newFakeTMDB creates a new fake server builder.
// Call .Build() to create the actual httptest.Server.
func newFakeTMDB(t *testing.T) *fakeTMDB {
	t.Helper()
	return &fakeTMDB{t: t, routes: make(map[string]http.HandlerFunc), hits: make(map[string]int)}
}

// RespondJSON answers path with JSON-encoded v.
func (f *fakeTMDB) RespondJSON(path string, v any) *fakeTMDB {
	f.routes[path] = func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(f.t, w, v)
	}
	return f
}

// RespondStatus answers path with just a status code.
func (f *fakeTMDB) RespondStatus(path string, code int) *fakeTMDB {
	f.routes[path] = func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(code)
	}
	return f
}

// Handler sets a custom handler for path.
func (f *fakeTMDB) Handler(path string, h http.HandlerFunc) *fakeTMDB {
	f.routes[path] = h
	return f
}

// Hits returns how many requests reached path.
func (f *fakeTMDB) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

// Build creates the server and registers its cleanup.
func (f *fakeTMDB) Build() *httptest.Server {
	f.t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(f.t, http.MethodGet, r.Method, "unexpected request method")
		assert.Equal(f.t, "test-key", r.URL.Query().Get("api_key"), "missing api key")

		f.mu.Lock()
		f.hits[r.URL.Path]++
		f.mu.Unlock()

		h, ok := f.routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	f.t.Cleanup(srv.Close)
	return srv
}

// respondJSON writes a JSON response with proper content-type header.
// Fails the test if JSON encoding fails instead of silently ignoring.
func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

// results wraps movies the way TMDB list endpoints do.
func results(movies ...map[string]any) map[string]any {
	if movies == nil {
		movies = []map[string]any{}
	}
	return map[string]any{"page": 1, "results": movies}
}

func movie(id int, title, date string, rating float64) map[string]any {
	return map[string]any{
		"id":           id,
		"title":        title,
		"release_date": date,
		"vote_average": rating,
		"poster_path":  fmt.Sprintf("/p%d.jpg", id),
	}
}

// writeTestConfig writes a config pointing at baseURL and returns its path.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf(`[tmdb]
api_key = "test-key"
base_url = %q
image_base_url = "https://img.test/t/p/"
timeout = "2s"

[ui]
preview_size = 2

[log]
level = "error"
`, baseURL)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// resetFlags clears flag globals left over from a previous run.
func resetFlags() {
	configPath = ""
	jsonOutput = false
	logLevel = ""
	darkMode = false
	genrePreview = false
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
