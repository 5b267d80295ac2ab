// Package apriori discovers frequent itemsets in basket data using the
// A-Priori algorithm, restricted to itemset sizes 1, 2 and 3.
//
// What:
//
//   - Itemset is an unordered set of 1–3 distinct items with a canonical,
//     order-independent key, usable for map lookups.
//   - CountSingletons / CountPairs / CountTriples each perform one full,
//     ordered pass over a basket.Source and emit the frequent tier for
//     their size, pruned by the previous tier (anti-monotonicity: a set
//     cannot be frequent unless every subset is).
//   - Mine runs the three passes in order and merges the tiers into a
//     Result: the complete frequent-itemset table plus the total basket
//     count, immutable afterward.
//
// Why:
//
//   - Market-basket analysis: which items are browsed or bought together.
//   - The Result is the read model for association-rule scoring (see the
//     rules package).
//
// Complexity (per basket, before pruning; b = basket length):
//
//   - CountSingletons: O(b)
//   - CountPairs:      O(b²)
//   - CountTriples:    O(b³)
//
// Pruning cuts the effective b to the number of still-viable items, which
// is what makes the cubic pass tractable on real data.
//
// Options:
//
//   - Options.SupportThreshold: minimum support count to keep an itemset.
//   - Options.Check: enable internal consistency assertions (fatal errors).
//   - Options.Logger: structured logger for per-phase progress.
//
// Errors:
//
//   - ErrNilSource: no basket source supplied.
//   - ErrBadThreshold: support threshold below 1.
//   - ErrItemsetSize, ErrEmptyItem, ErrDuplicateItem: invalid itemset input.
//   - ErrWrongTier: a pruning tier of the wrong itemset size was supplied.
//   - ErrInconsistent: a consistency assertion failed (Check mode).
//   - ErrMissingSupport: a support lookup that must succeed by construction
//     failed; indicates a defect in table assembly, surfaced by the rules
//     package.
package apriori
