package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apriori/api"
	"github.com/katalvlaran/apriori/store"
)

// newTestServer spins up the API over a fresh temp store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "apriori.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.EnsureTables(context.Background(), db))

	r := mux.NewRouter()
	require.NoError(t, api.RegisterRoutes(r, db))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// postJSON posts body to path and decodes the JSON response into out.
func postJSON(t *testing.T, srv *httptest.Server, path string, body, out any) int {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

// getJSON fetches path and decodes the JSON response into out.
func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

// mineBrowsing writes the worked dataset to disk and mines it through the
// API, returning the new run ID.
func mineBrowsing(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "browsing.txt")
	require.NoError(t, os.WriteFile(path, []byte("A B C\nA B\nA B D\nA C\n"), 0o600))

	var resp struct {
		RunID        string `json:"run_id"`
		TotalBaskets int    `json:"total_baskets"`
		Itemsets     int    `json:"itemsets"`
		Rules        int    `json:"rules"`
	}
	code := postJSON(t, srv, "/mine", api.MineRequest{Path: path, Threshold: 2}, &resp)
	require.Equal(t, http.StatusCreated, code)
	require.NotEmpty(t, resp.RunID)
	assert.Equal(t, 4, resp.TotalBaskets)
	assert.Equal(t, 5, resp.Itemsets)
	assert.Equal(t, 4, resp.Rules)
	return resp.RunID
}

// TestHealth verifies the liveness endpoint.
func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	var out map[string]string
	code := getJSON(t, srv, "/health", &out)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", out["status"])
}

// TestMineAndGetRun verifies the mine → fetch round trip.
func TestMineAndGetRun(t *testing.T) {
	srv := newTestServer(t)
	runID := mineBrowsing(t, srv)

	var run store.Run
	code := getJSON(t, srv, "/runs/"+runID, &run)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, 2, run.Threshold)
	assert.Equal(t, 4, run.TotalBaskets)
}

// TestMine_BadRequests covers missing path, bad JSON and missing files.
func TestMine_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	var out map[string]string
	code := postJSON(t, srv, "/mine", api.MineRequest{}, &out)
	assert.Equal(t, http.StatusBadRequest, code, "path is required")

	resp, err := http.Post(srv.URL+"/mine", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "malformed JSON")

	code = postJSON(t, srv, "/mine",
		api.MineRequest{Path: filepath.Join(t.TempDir(), "nope.txt"), Threshold: 2}, &out)
	assert.Equal(t, http.StatusInternalServerError, code, "unreadable basket file")
}

// TestGetRun_NotFound verifies unknown runs return 404.
func TestGetRun_NotFound(t *testing.T) {
	srv := newTestServer(t)
	var out map[string]string
	code := getJSON(t, srv, "/runs/no-such-run", &out)
	assert.Equal(t, http.StatusNotFound, code)
}

// TestGetTopRules verifies ranked reads, defaults and repeated (cached)
// queries agree.
func TestGetTopRules(t *testing.T) {
	srv := newTestServer(t)
	runID := mineBrowsing(t, srv)

	var out struct {
		RunID string          `json:"run_id"`
		Rules []store.RuleRow `json:"rules"`
	}
	path := fmt.Sprintf("/runs/%s/rules?metric=confidence&size=2&limit=10", runID)
	code := getJSON(t, srv, path, &out)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out.Rules, 4)
	assert.Equal(t, "B", out.Rules[0].Antecedent)
	assert.InDelta(t, 1.0, out.Rules[0].Confidence, 1e-12)

	// Second read is served from cache and must match exactly.
	var again struct {
		Rules []store.RuleRow `json:"rules"`
	}
	code = getJSON(t, srv, path, &again)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, out.Rules, again.Rules)

	// Defaults: metric=confidence, size=2, limit=10.
	var def struct {
		Rules []store.RuleRow `json:"rules"`
	}
	code = getJSON(t, srv, "/runs/"+runID+"/rules", &def)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, out.Rules, def.Rules)
}

// TestGetTopRules_BadParams covers metric, size and limit validation.
func TestGetTopRules_BadParams(t *testing.T) {
	srv := newTestServer(t)
	runID := mineBrowsing(t, srv)

	var out map[string]string
	code := getJSON(t, srv, "/runs/"+runID+"/rules?metric=support", &out)
	assert.Equal(t, http.StatusBadRequest, code, "unknown metric")

	code = getJSON(t, srv, "/runs/"+runID+"/rules?size=9", &out)
	assert.Equal(t, http.StatusBadRequest, code, "size outside 2..3")

	code = getJSON(t, srv, "/runs/"+runID+"/rules?limit=ten", &out)
	assert.Equal(t, http.StatusBadRequest, code, "non-integer limit")
}

// TestGetItemsets verifies the stored itemsets endpoint.
func TestGetItemsets(t *testing.T) {
	srv := newTestServer(t)
	runID := mineBrowsing(t, srv)

	var out struct {
		Itemsets []store.ItemsetRow `json:"itemsets"`
	}
	code := getJSON(t, srv, "/runs/"+runID+"/itemsets", &out)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out.Itemsets, 2)
	assert.Equal(t, "A B", out.Itemsets[0].Items)
}
