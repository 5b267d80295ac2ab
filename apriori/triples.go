package apriori

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/apriori/basket"
)

// tripleKey returns the canonical key for the unordered triple {a, b, c}.
func tripleKey(a, b, c Item) string {
	t := [3]Item{a, b, c}
	sort.Strings(t[:])
	return t[0] + keySep + t[1] + keySep + t[2]
}

// CountTriples scans every basket once and counts unordered triples of
// distinct items, pruned by the frequent pair tier: a triple is only a
// candidate when all three of its constituent pairs are frequent
// (anti-monotonicity). Triples with support >= the threshold are returned
// as the size-3 tier.
//
// Time:   O(b³) per basket over the surviving candidates.
// Memory: O(candidate triples) plus the pair-membership index.
func CountTriples(ctx context.Context, src basket.Source, pairs Tier, opts Options) (Tier, error) {
	if src == nil {
		return Tier{}, ErrNilSource
	}
	if err := opts.validate(); err != nil {
		return Tier{}, err
	}
	if pairs.Size() != 2 {
		return Tier{}, fmt.Errorf("%w: want size 2, got %d", ErrWrongTier, pairs.Size())
	}
	log, start := opts.logger(), time.Now()

	// Items absent from every frequent pair cannot appear in a frequent
	// triple; index them once instead of re-deriving per basket.
	member := pairs.memberIndex()

	counts := make(map[string]int)
	var cand []Item // reused per basket
	err := basket.ForEach(ctx, src, func(b basket.Basket) error {
		cand = cand[:0]
		for _, it := range b {
			if _, ok := member[it]; ok {
				cand = append(cand, it)
			}
		}
		for i := 0; i < len(cand); i++ {
			for j := i + 1; j < len(cand); j++ {
				if cand[i] == cand[j] || !pairs.has(pairKey(cand[i], cand[j])) {
					continue
				}
				for k := j + 1; k < len(cand); k++ {
					if cand[k] == cand[i] || cand[k] == cand[j] {
						continue
					}
					if !pairs.has(pairKey(cand[i], cand[k])) {
						continue
					}
					if !pairs.has(pairKey(cand[j], cand[k])) {
						continue
					}
					counts[tripleKey(cand[i], cand[j], cand[k])]++
				}
			}
		}
		return nil
	})
	if err != nil {
		return Tier{}, err
	}

	freq := newTier(3)
	for k, n := range counts {
		if n < opts.SupportThreshold {
			continue
		}
		if opts.Check && freq.has(k) {
			return Tier{}, fmt.Errorf("%w: duplicate triple %s", ErrInconsistent, itemsetFromKey(k))
		}
		freq.counts[k] = n
	}

	log.Debug("triple pass done",
		"candidates", len(counts),
		"frequent", freq.Len(),
		"elapsed", time.Since(start))

	return freq, nil
}
