// Package api exposes stored mining runs over HTTP and accepts mining
// requests for server-local basket files. Routing follows gorilla/mux;
// ranked-rule reads go through a small LRU cache keyed by query, safe
// because stored runs are immutable.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/apriori/store"
)

// JSON is a generic response body.
type JSON map[string]any

// ruleCacheSize bounds the number of cached top-rule query results.
const ruleCacheSize = 256

// Handler serves the API against one run store.
type Handler struct {
	db    *sql.DB
	cache *lru.Cache[string, []store.RuleRow]
}

// RegisterRoutes wires all endpoints onto r, backed by db.
func RegisterRoutes(r *mux.Router, db *sql.DB) error {
	cache, err := lru.New[string, []store.RuleRow](ruleCacheSize)
	if err != nil {
		return err
	}
	h := &Handler{db: db, cache: cache}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/runs", h.ListRuns).Methods(http.MethodGet)
	r.HandleFunc("/runs/{id}", h.GetRun).Methods(http.MethodGet)
	r.HandleFunc("/runs/{id}/itemsets", h.GetItemsets).Methods(http.MethodGet)
	r.HandleFunc("/runs/{id}/rules", h.GetTopRules).Methods(http.MethodGet)
	r.HandleFunc("/mine", h.PostMine).Methods(http.MethodPost)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
