package apriori

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// Item is an opaque item identifier: one whitespace-delimited token from
// basket data. Equality is by value.
type Item = string

// keySep joins sorted items into a canonical map key. It is a control
// character that cannot appear in whitespace-delimited tokens.
const keySep = "\x1f"

// Itemset is an unordered set of 1–3 distinct items. Items are held sorted,
// so two itemsets with the same members always compare and hash alike via
// Key, regardless of construction order.
type Itemset struct {
	items []Item
}

// NewItemset builds an Itemset from the given items.
// Returns ErrItemsetSize for 0 or more than 3 items, ErrEmptyItem for a
// blank identifier and ErrDuplicateItem for repeated members.
func NewItemset(items ...Item) (Itemset, error) {
	if len(items) < 1 || len(items) > 3 {
		return Itemset{}, fmt.Errorf("%w: got %d", ErrItemsetSize, len(items))
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Strings(sorted)
	for i, it := range sorted {
		if it == "" {
			return Itemset{}, ErrEmptyItem
		}
		if i > 0 && sorted[i-1] == it {
			return Itemset{}, fmt.Errorf("%w: %q repeated", ErrDuplicateItem, it)
		}
	}
	return Itemset{items: sorted}, nil
}

// itemsetFromKey rebuilds an Itemset from a canonical key. Keys are
// produced from sorted, distinct items, so no re-validation is needed.
func itemsetFromKey(key string) Itemset {
	return Itemset{items: strings.Split(key, keySep)}
}

// Size reports the number of items in the set.
func (s Itemset) Size() int { return len(s.items) }

// Key returns the canonical map key: sorted items joined by a separator.
// Two itemsets are equal exactly when their keys are equal.
func (s Itemset) Key() string { return strings.Join(s.items, keySep) }

// Items returns a copy of the members in sorted order.
func (s Itemset) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports whether it is a member of the set.
func (s Itemset) Contains(it Item) bool {
	for _, x := range s.items {
		if x == it {
			return true
		}
	}
	return false
}

// Without returns the set with it removed. If it is not a member, the
// receiver is returned unchanged.
func (s Itemset) Without(it Item) Itemset {
	if !s.Contains(it) {
		return s
	}
	rest := make([]Item, 0, len(s.items)-1)
	for _, x := range s.items {
		if x != it {
			rest = append(rest, x)
		}
	}
	return Itemset{items: rest}
}

// Union returns the set union of s and t.
// Returns ErrItemsetSize if the union would exceed 3 items.
func (s Itemset) Union(t Itemset) (Itemset, error) {
	merged := make([]Item, 0, len(s.items)+len(t.items))
	merged = append(merged, s.items...)
	for _, x := range t.items {
		if !s.Contains(x) {
			merged = append(merged, x)
		}
	}
	if len(merged) > 3 {
		return Itemset{}, fmt.Errorf("%w: union of %v and %v", ErrItemsetSize, s, t)
	}
	sort.Strings(merged)
	return Itemset{items: merged}, nil
}

// String renders the set as "{a, b, c}" with members in sorted order.
func (s Itemset) String() string {
	return "{" + strings.Join(s.items, ", ") + "}"
}

// Options configures the mining passes.
//
// Fields:
//   - SupportThreshold — minimum support count for an itemset to be kept
//     as frequent. Must be at least 1.
//   - Check            — enable internal consistency assertions; any
//     violation aborts the run with ErrInconsistent.
//   - Logger           — structured logger for phase progress. nil keeps
//     the passes silent.
type Options struct {
	SupportThreshold int
	Check            bool
	Logger           *slog.Logger
}

// DefaultOptions returns the standard configuration:
// threshold 100, no consistency checks, silent.
func DefaultOptions() Options {
	return Options{SupportThreshold: 100}
}

func (o Options) validate() error {
	if o.SupportThreshold < 1 {
		return fmt.Errorf("%w: got %d", ErrBadThreshold, o.SupportThreshold)
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Tier is the frequent-itemset table for a single itemset size.
type Tier struct {
	size   int
	counts map[string]int
}

func newTier(size int) Tier {
	return Tier{size: size, counts: make(map[string]int)}
}

// Size reports the itemset size this tier holds (1, 2 or 3).
func (t Tier) Size() int { return t.size }

// Len reports the number of frequent itemsets in the tier.
func (t Tier) Len() int { return len(t.counts) }

// Support returns the support count of s and whether s is frequent in this
// tier. Itemsets of a different size are never present.
func (t Tier) Support(s Itemset) (int, bool) {
	n, ok := t.counts[s.Key()]
	return n, ok
}

// Itemsets returns the tier's itemsets in lexicographic key order.
func (t Tier) Itemsets() []Itemset {
	keys := make([]string, 0, len(t.counts))
	for k := range t.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Itemset, len(keys))
	for i, k := range keys {
		out[i] = itemsetFromKey(k)
	}
	return out
}

// has reports membership by canonical key.
func (t Tier) has(key string) bool {
	_, ok := t.counts[key]
	return ok
}

// memberIndex returns the set of items participating in any itemset of the
// tier, for per-basket candidate pre-filtering.
func (t Tier) memberIndex() map[Item]struct{} {
	idx := make(map[Item]struct{}, len(t.counts))
	for k := range t.counts {
		for _, it := range strings.Split(k, keySep) {
			idx[it] = struct{}{}
		}
	}
	return idx
}

// Result is the completed frequent-itemset table for sizes 1–3 plus the
// total basket count. It is built once by Mine and read-only afterward.
//
// Iteration order is canonical (size ascending, then lexicographic key),
// which fixes the "generation order" used for rule tie-breaking.
type Result struct {
	total   int
	support map[string]int
	order   []Itemset
}

// TotalBaskets reports the number of baskets scanned, including empty ones.
func (r *Result) TotalBaskets() int { return r.total }

// Len reports the number of frequent itemsets across all sizes.
func (r *Result) Len() int { return len(r.support) }

// Support returns the support count of s and whether s is frequent.
func (r *Result) Support(s Itemset) (int, bool) {
	n, ok := r.support[s.Key()]
	return n, ok
}

// Itemsets returns all frequent itemsets in canonical order.
func (r *Result) Itemsets() []Itemset {
	out := make([]Itemset, len(r.order))
	copy(out, r.order)
	return out
}
