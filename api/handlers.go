package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/apriori/apriori"
	"github.com/katalvlaran/apriori/basket"
	"github.com/katalvlaran/apriori/rules"
	"github.com/katalvlaran/apriori/store"
)

// mineTimeout bounds one end-to-end mining request.
const mineTimeout = 120 * time.Second

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, JSON{"status": "ok"})
}

func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns(r.Context(), h.db)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, JSON{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, http.StatusOK, JSON{"runs": runs})
}

func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := store.GetRun(r.Context(), h.db, mux.Vars(r)["id"])
	if errors.Is(err, store.ErrRunNotFound) {
		writeJSON(w, http.StatusNotFound, JSON{"error": err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, JSON{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) GetItemsets(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := store.GetRun(r.Context(), h.db, id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrRunNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, JSON{"error": err.Error()})
		return
	}

	sets, err := store.RunItemsets(r.Context(), h.db, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, JSON{"error": err.Error()})
		return
	}
	if sets == nil {
		sets = []store.ItemsetRow{}
	}
	writeJSON(w, http.StatusOK, JSON{"run_id": id, "itemsets": sets})
}

func (h *Handler) GetTopRules(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	metric := rules.Metric(r.URL.Query().Get("metric"))
	if metric == "" {
		metric = rules.MetricConfidence
	}
	size, err := intParam(r, "size", 2)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, JSON{"error": err.Error()})
		return
	}
	limit, err := intParam(r, "limit", 10)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, JSON{"error": err.Error()})
		return
	}

	key := fmt.Sprintf("%s|%s|%d|%d", id, metric, size, limit)
	if cached, ok := h.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, JSON{"run_id": id, "rules": cached})
		return
	}

	if _, err = store.GetRun(r.Context(), h.db, id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrRunNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, JSON{"error": err.Error()})
		return
	}

	top, err := store.TopRules(r.Context(), h.db, id, metric, size, limit)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, rules.ErrBadMetric) || errors.Is(err, rules.ErrBadSize) ||
			errors.Is(err, rules.ErrBadLimit) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, JSON{"error": err.Error()})
		return
	}
	if top == nil {
		top = []store.RuleRow{}
	}
	h.cache.Add(key, top)
	writeJSON(w, http.StatusOK, JSON{"run_id": id, "rules": top})
}

// MineRequest asks the server to mine a server-local basket file.
type MineRequest struct {
	Path      string `json:"path"`
	Threshold int    `json:"threshold"`
	Check     bool   `json:"check"`
}

func (h *Handler) PostMine(w http.ResponseWriter, r *http.Request) {
	var req MineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, JSON{"error": "invalid json"})
		return
	}
	if req.Path == "" {
		writeJSON(w, http.StatusBadRequest, JSON{"error": "path required"})
		return
	}
	if req.Threshold == 0 {
		req.Threshold = apriori.DefaultOptions().SupportThreshold
	}

	src, err := basket.NewFileSource(req.Path)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, JSON{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), mineTimeout)
	defer cancel()

	opts := apriori.DefaultOptions()
	opts.SupportThreshold = req.Threshold
	opts.Check = req.Check

	res, err := apriori.Mine(ctx, src, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apriori.ErrBadThreshold) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, JSON{"error": err.Error()})
		return
	}

	all, err := rules.Generate(res)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, JSON{"error": err.Error()})
		return
	}

	runID, err := store.SaveRun(ctx, h.db, req.Path, req.Threshold, res, all)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, JSON{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, JSON{
		"run_id":        runID,
		"total_baskets": res.TotalBaskets(),
		"itemsets":      res.Len(),
		"rules":         len(all),
	})
}

var errBadParam = errors.New("api: query parameter must be an integer")

// intParam reads an integer query parameter with a default.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errBadParam, name, raw)
	}
	return n, nil
}
