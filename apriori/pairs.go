package apriori

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/apriori/basket"
)

// pairKey returns the canonical key for the unordered pair {a, b}.
func pairKey(a, b Item) string {
	if a > b {
		a, b = b, a
	}
	return a + keySep + b
}

// CountPairs scans every basket once and counts unordered pairs of distinct
// items, pruned by the frequent singleton tier: a pair is only a candidate
// when both of its items are frequent on their own (anti-monotonicity).
// Pairs with support >= the threshold are returned as the size-2 tier.
//
// Each basket contributes one count per unordered position pair i<j whose
// items differ; the key is order-independent, so "A B" and "B A" feed the
// same candidate.
//
// Time:   O(b²) per basket over the surviving candidates.
// Memory: O(candidate pairs).
func CountPairs(ctx context.Context, src basket.Source, singles Tier, opts Options) (Tier, error) {
	if src == nil {
		return Tier{}, ErrNilSource
	}
	if err := opts.validate(); err != nil {
		return Tier{}, err
	}
	if singles.Size() != 1 {
		return Tier{}, fmt.Errorf("%w: want size 1, got %d", ErrWrongTier, singles.Size())
	}
	log, start := opts.logger(), time.Now()

	counts := make(map[string]int)
	var cand []Item // reused per basket
	err := basket.ForEach(ctx, src, func(b basket.Basket) error {
		// Drop items that cannot appear in a frequent pair before the
		// quadratic sweep; positions keep their relative order.
		cand = cand[:0]
		for _, it := range b {
			if singles.has(it) {
				cand = append(cand, it)
			}
		}
		for i := 0; i < len(cand); i++ {
			for j := i + 1; j < len(cand); j++ {
				if cand[i] == cand[j] {
					continue
				}
				counts[pairKey(cand[i], cand[j])]++
			}
		}
		return nil
	})
	if err != nil {
		return Tier{}, err
	}

	freq := newTier(2)
	for k, n := range counts {
		if n < opts.SupportThreshold {
			continue
		}
		if opts.Check && freq.has(k) {
			return Tier{}, fmt.Errorf("%w: duplicate pair %s", ErrInconsistent, itemsetFromKey(k))
		}
		freq.counts[k] = n
	}

	log.Debug("pair pass done",
		"candidates", len(counts),
		"frequent", freq.Len(),
		"elapsed", time.Since(start))

	return freq, nil
}
