package apriori

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/apriori/basket"
)

// Mine — A-Priori frequent-itemset discovery
//
// Description:
//
//	Mine runs the three counting passes in order (singletons, pairs,
//	triples), each pruned by the previous pass's frequent tier, and merges
//	the tiers into one frequent-itemset table. The source is re-scanned
//	once per pass, so it must be restartable; no pass starts before the
//	previous tier is finalized.
//
// Algorithm outline:
//  1. Scan 1: count item occurrences, keep items with support ≥ T,
//     record the total basket count.
//  2. Scan 2: count unordered pairs whose items are both frequent,
//     keep pairs with support ≥ T.
//  3. Scan 3: count unordered triples whose three pairs are all frequent,
//     keep triples with support ≥ T.
//  4. Union the tiers; keys are disjoint across sizes by construction
//     (Check mode re-verifies and fails with ErrInconsistent otherwise).
//
// Complexity:
//
//	Time   = O(Σ b + Σ b'² + Σ b''³) over baskets, where b', b'' are the
//	         per-basket candidate counts after pruning.
//	Memory = O(candidate itemsets).
//
// Errors:
//   - ErrNilSource, ErrBadThreshold — invalid inputs.
//   - ErrInconsistent — a Check-mode assertion failed.
//   - Source read errors are passed through unchanged.
func Mine(ctx context.Context, src basket.Source, opts Options) (*Result, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log, start := opts.logger(), time.Now()

	singles, total, err := CountSingletons(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	pairs, err := CountPairs(ctx, src, singles, opts)
	if err != nil {
		return nil, err
	}
	triples, err := CountTriples(ctx, src, pairs, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		total:   total,
		support: make(map[string]int, singles.Len()+pairs.Len()+triples.Len()),
	}
	for _, tier := range []Tier{singles, pairs, triples} {
		for k, n := range tier.counts {
			if opts.Check {
				if _, dup := res.support[k]; dup {
					return nil, fmt.Errorf("%w: itemset %s present in two tiers",
						ErrInconsistent, itemsetFromKey(k))
				}
			}
			res.support[k] = n
			res.order = append(res.order, itemsetFromKey(k))
		}
	}

	// Canonical order: size ascending, then lexicographic key. This is the
	// generation order rule ranking uses to break ties.
	sort.Slice(res.order, func(i, j int) bool {
		a, b := res.order[i], res.order[j]
		if a.Size() != b.Size() {
			return a.Size() < b.Size()
		}
		return a.Key() < b.Key()
	})

	log.Info("mining done",
		"baskets", total,
		"singletons", singles.Len(),
		"pairs", pairs.Len(),
		"triples", triples.Len(),
		"elapsed", time.Since(start))

	return res, nil
}
