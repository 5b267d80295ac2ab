package rules

import (
	"fmt"
	"sort"
)

// Top returns the n best rules with combined itemset size |A|+|B| == size,
// ranked by metric in descending order. The sort is stable, so rules with
// equal scores keep their generation order. Fewer than n matching rules
// returns them all.
//
// Time: O(r log r) over matching rules. Memory: O(r).
func Top(all []Rule, metric Metric, size, n int) ([]Rule, error) {
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrBadMetric, metric)
	}
	if size != 2 && size != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrBadSize, size)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadLimit, n)
	}

	matched := make([]Rule, 0, len(all))
	for _, r := range all {
		if r.Size() == size {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score(metric) > matched[j].Score(metric)
	})

	if len(matched) > n {
		matched = matched[:n]
	}
	return matched, nil
}
