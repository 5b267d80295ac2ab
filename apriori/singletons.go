package apriori

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/apriori/basket"
)

// CountSingletons scans every basket once and counts items, returning the
// frequent size-1 tier together with the total number of baskets scanned.
//
// Counting is per token occurrence: an item appearing twice on one basket
// line contributes two to its count, matching the raw scan semantics of the
// basket format. Empty baskets contribute to the total only.
//
// Time:   O(total tokens). Memory: O(distinct items).
func CountSingletons(ctx context.Context, src basket.Source, opts Options) (Tier, int, error) {
	if src == nil {
		return Tier{}, 0, ErrNilSource
	}
	if err := opts.validate(); err != nil {
		return Tier{}, 0, err
	}
	log, start := opts.logger(), time.Now()

	counts := make(map[string]int)
	total := 0
	err := basket.ForEach(ctx, src, func(b basket.Basket) error {
		total++
		for _, it := range b {
			counts[it]++
		}
		return nil
	})
	if err != nil {
		return Tier{}, 0, err
	}

	freq := newTier(1)
	for it, n := range counts {
		if n < opts.SupportThreshold {
			continue
		}
		if opts.Check && freq.has(it) {
			return Tier{}, 0, fmt.Errorf("%w: duplicate singleton %q", ErrInconsistent, it)
		}
		freq.counts[it] = n
	}

	log.Debug("singleton pass done",
		"baskets", total,
		"distinct_items", len(counts),
		"frequent", freq.Len(),
		"elapsed", time.Since(start))

	return freq, total, nil
}
