// Package rules derives scored association rules from a completed
// frequent-itemset table.
//
// What:
//
//   - Generate enumerates every rule A → B splitting a frequent itemset of
//     size 2 or 3: all (S∖{x}) → {x} splits, plus the {x} → (S∖{x}) splits
//     for size-3 itemsets. Each rule carries three scores computed from
//     support counts:
//     confidence = sup(A∪B) / sup(A)
//     lift       = sup(A∪B) · total / (sup(A) · sup(B))
//     conviction = (1 − sup(B)/total) / (1 − sup(A∪B)/sup(A))
//   - When sup(A∪B) == sup(A) the conviction denominator is zero
//     (confidence is exactly 1); the score is the MaxConviction sentinel
//     instead of a division fault.
//   - Top ranks rules by one metric for one combined itemset size, stably,
//     so ties keep generation order.
//   - WriteRules and WriteItemsets render the fixed-format text reports.
//
// Why:
//
//   - "Customers who took A also took B" with principled strength scores,
//     straight from the mined support counts.
//
// Errors:
//
//   - ErrNilResult: no frequent-itemset table supplied.
//   - ErrBadMetric, ErrBadSize, ErrBadLimit: invalid ranking parameters.
//   - apriori.ErrMissingSupport: the table is missing a support that must
//     exist by construction; a defect in table assembly, not user input.
package rules
