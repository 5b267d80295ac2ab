package rules

import (
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/apriori/apriori"
)

// ruleColumns is the per-section column header of the rules report.
const ruleColumns = "#   set_A   set_B   confidence   lift   conviction"

// WriteRules renders the full rules report: six labeled sections in fixed
// order (confidence, lift, conviction — each for combined itemset sizes 2
// and 3), every section holding the top n rules for its metric and size.
// Rule lines show rank, the antecedent and consequent sets, and all three
// scores at fixed 4-decimal precision.
//
// An empty rule list still produces all six section headers.
func WriteRules(w io.Writer, all []Rule, n int) error {
	for _, m := range Metrics {
		for _, size := range []int{2, 3} {
			top, err := Top(all, m, size, n)
			if err != nil {
				return err
			}
			if _, err = fmt.Fprintf(w, "top %d %s rules (itemset size = %d):\n%s\n", n, m, size, ruleColumns); err != nil {
				return err
			}
			for i, r := range top {
				if _, err = fmt.Fprintf(w, "%2d. %s --> %s %9.4f %9.4f %9.4f\n",
					i+1, r.A, r.B, r.Confidence, r.Lift, r.Conviction); err != nil {
					return err
				}
			}
			if _, err = fmt.Fprint(w, "\n\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteItemsets renders the frequent-itemset report: itemsets of sizes 2
// and 3 only, one per line, items whitespace-separated, in the table's
// canonical order. Singletons are part of the table but never reported.
func WriteItemsets(w io.Writer, res *apriori.Result) error {
	if res == nil {
		return ErrNilResult
	}
	for _, s := range res.Itemsets() {
		if s.Size() < 2 {
			continue
		}
		if _, err := fmt.Fprintln(w, strings.Join(s.Items(), " ")); err != nil {
			return err
		}
	}
	return nil
}
