package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/apriori/apriori"
	"github.com/katalvlaran/apriori/rules"
)

// ErrRunNotFound indicates the requested run ID is not in the store.
var ErrRunNotFound = errors.New("store: run not found")

// Run is the stored metadata of one completed mining run.
type Run struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Threshold    int    `json:"threshold"`
	TotalBaskets int    `json:"total_baskets"`
	Itemsets     int    `json:"itemsets"`
	Rules        int    `json:"rules"`
	CreatedAt    int64  `json:"created_at"`
}

// ItemsetRow is one stored frequent itemset: items space-joined in sorted
// order, with its size and support count.
type ItemsetRow struct {
	Items   string `json:"items"`
	Size    int    `json:"size"`
	Support int    `json:"support"`
}

// RuleRow is one stored association rule with its scores.
type RuleRow struct {
	Antecedent string  `json:"antecedent"`
	Consequent string  `json:"consequent"`
	Size       int     `json:"size"`
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
	Conviction float64 `json:"conviction"`
}

// Open opens (creating if needed) the SQLite store at path and applies the
// performance pragmas.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	// Pragmas for better performance
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")

	return db, nil
}

// EnsureTables creates the run tables if they do not exist.
func EnsureTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS apriori_runs (
			run_id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			threshold INTEGER NOT NULL,
			total_baskets INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS apriori_itemsets (
			run_id TEXT NOT NULL,
			itemset TEXT NOT NULL,
			size INTEGER NOT NULL,
			support INTEGER NOT NULL,
			PRIMARY KEY (run_id, itemset)
		);`,
		`CREATE TABLE IF NOT EXISTS apriori_rules (
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			antecedent TEXT NOT NULL,
			consequent TEXT NOT NULL,
			size INTEGER NOT NULL,
			confidence REAL NOT NULL,
			lift REAL NOT NULL,
			conviction REAL NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_apriori_rules_size
			ON apriori_rules(run_id, size);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// joined renders an itemset as its sorted items joined by single spaces.
func joined(s apriori.Itemset) string { return strings.Join(s.Items(), " ") }

// SaveRun writes one completed run transactionally and returns its ID.
// Rules are stored with their generation position so ranked reads can
// reproduce the tie-break order.
func SaveRun(ctx context.Context, db *sql.DB, source string, threshold int, res *apriori.Result, all []rules.Rule) (string, error) {
	if res == nil {
		return "", rules.ErrNilResult
	}
	runID := uuid.NewString()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `INSERT INTO apriori_runs(run_id,source,threshold,total_baskets,created_at)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)`, runID, source, threshold, res.TotalBaskets()); err != nil {
		return "", err
	}

	insItemset, err := tx.PrepareContext(ctx, `INSERT INTO apriori_itemsets(run_id,itemset,size,support)
		VALUES(?,?,?,?)`)
	if err != nil {
		return "", err
	}
	defer insItemset.Close()
	for _, s := range res.Itemsets() {
		n, ok := res.Support(s)
		if !ok {
			return "", fmt.Errorf("%w: %s", apriori.ErrMissingSupport, s)
		}
		if _, err = insItemset.ExecContext(ctx, runID, joined(s), s.Size(), n); err != nil {
			return "", err
		}
	}

	insRule, err := tx.PrepareContext(ctx, `INSERT INTO apriori_rules(run_id,position,antecedent,consequent,size,confidence,lift,conviction)
		VALUES(?,?,?,?,?,?,?,?)`)
	if err != nil {
		return "", err
	}
	defer insRule.Close()
	for i, r := range all {
		if _, err = insRule.ExecContext(ctx, runID, i, joined(r.A), joined(r.B), r.Size(),
			r.Confidence, r.Lift, r.Conviction); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

const runColumns = `r.run_id, r.source, r.threshold, r.total_baskets,
	strftime('%s', r.created_at),
	(SELECT COUNT(*) FROM apriori_itemsets i WHERE i.run_id = r.run_id),
	(SELECT COUNT(*) FROM apriori_rules u WHERE u.run_id = r.run_id)`

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.Source, &run.Threshold, &run.TotalBaskets,
		&run.CreatedAt, &run.Itemsets, &run.Rules)
	return run, err
}

// GetRun loads one run's metadata. Returns ErrRunNotFound for unknown IDs.
func GetRun(ctx context.Context, db *sql.DB, runID string) (Run, error) {
	run, err := scanRun(db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM apriori_runs r WHERE r.run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return run, err
}

// ListRuns returns all stored runs, newest first.
func ListRuns(ctx context.Context, db *sql.DB) ([]Run, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM apriori_runs r ORDER BY r.created_at DESC, r.run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunItemsets returns a run's frequent itemsets of sizes 2 and 3 in
// canonical order, matching the itemsets report.
func RunItemsets(ctx context.Context, db *sql.DB, runID string) ([]ItemsetRow, error) {
	rows, err := db.QueryContext(ctx, `SELECT itemset, size, support FROM apriori_itemsets
		WHERE run_id = ? AND size >= 2 ORDER BY size, itemset`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemsetRow
	for rows.Next() {
		var row ItemsetRow
		if err = rows.Scan(&row.Items, &row.Size, &row.Support); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TopRules returns a run's best rules for one metric and combined itemset
// size, descending, ties broken by stored generation position.
func TopRules(ctx context.Context, db *sql.DB, runID string, metric rules.Metric, size, limit int) ([]RuleRow, error) {
	var col string
	switch metric {
	case rules.MetricConfidence:
		col = "confidence"
	case rules.MetricLift:
		col = "lift"
	case rules.MetricConviction:
		col = "conviction"
	default:
		return nil, fmt.Errorf("%w: %q", rules.ErrBadMetric, metric)
	}
	if size != 2 && size != 3 {
		return nil, fmt.Errorf("%w: got %d", rules.ErrBadSize, size)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", rules.ErrBadLimit, limit)
	}

	rows, err := db.QueryContext(ctx, `SELECT antecedent, consequent, size, confidence, lift, conviction
		FROM apriori_rules WHERE run_id = ? AND size = ?
		ORDER BY `+col+` DESC, position ASC LIMIT ?`, runID, size, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RuleRow
	for rows.Next() {
		var row RuleRow
		if err = rows.Scan(&row.Antecedent, &row.Consequent, &row.Size,
			&row.Confidence, &row.Lift, &row.Conviction); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
