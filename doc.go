// Package apriori is a market-basket analysis toolkit: it mines frequent
// itemsets from basket files with the A-Priori algorithm and derives scored
// association rules from them.
//
// 🚀 What is apriori?
//
//	A small, batch-oriented mining stack built from focused subpackages:
//		• basket/  — restartable basket sources (files, in-memory slices)
//		• apriori/ — frequent-itemset discovery for sizes 1, 2 and 3,
//		  with anti-monotonicity pruning between passes
//		• rules/   — association-rule generation, confidence/lift/conviction
//		  scoring, top-N ranking and fixed-format reports
//		• store/   — SQLite persistence of completed mining runs
//		• api/     — a read API over stored runs (gorilla/mux)
//		• cmd/     — the apriori CLI: mine basket files, serve results
//
// ✨ Why choose apriori?
//
//   - Faithful A-Priori – three ordered passes, each pruned by the
//     previous pass's frequent set, never a false positive or negative
//     relative to brute-force counting
//   - Careful scoring – ratio metrics with an explicit sentinel for the
//     degenerate maximal-confidence conviction case
//   - Deterministic output – canonical itemset ordering makes reports and
//     rule ranks reproducible run to run
//
// Quick ASCII example:
//
//	basket file            frequent itemsets (T=2)
//	  A B C                  {A} {B} {C}
//	  A B          ───▶      {A,B} {A,C}
//	  A B D
//	  A C
//
// Dive into README.md and the package docs for full examples.
//
//	go get github.com/katalvlaran/apriori
package apriori
