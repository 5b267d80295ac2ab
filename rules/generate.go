package rules

import (
	"fmt"

	"github.com/katalvlaran/apriori/apriori"
)

// Generate enumerates and scores every association rule derivable from the
// frequent itemsets of size 2 and 3 in res.
//
// For each frequent itemset S:
//   - |S| ∈ {2,3}: one rule (S∖{x}) → {x} per member x.
//   - |S| = 3 additionally: one rule {x} → (S∖{x}) per member x.
//
// Size-2 itemsets therefore yield two 1→1 rules; size-3 itemsets yield
// three 2→1 rules and three 1→2 rules. Rules appear in the table's
// canonical itemset order, which is the tie-break order for ranking.
//
// Every A, B and A∪B is a subset of a frequent itemset and so must be in
// the table; a failed lookup returns apriori.ErrMissingSupport and means
// the table itself is defective.
//
// Time: O(rules). Memory: O(rules).
func Generate(res *apriori.Result) ([]Rule, error) {
	if res == nil {
		return nil, ErrNilResult
	}

	var out []Rule
	for _, s := range res.Itemsets() {
		if s.Size() < 2 {
			continue
		}
		for _, x := range s.Items() {
			single, err := apriori.NewItemset(x)
			if err != nil {
				return nil, err
			}

			r, err := score(res, s.Without(x), single)
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		if s.Size() < 3 {
			continue
		}
		for _, x := range s.Items() {
			single, err := apriori.NewItemset(x)
			if err != nil {
				return nil, err
			}

			r, err := score(res, single, s.Without(x))
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}
	return out, nil
}

// score computes the three metrics for the rule a → b from support counts.
func score(res *apriori.Result, a, b apriori.Itemset) (Rule, error) {
	ab, err := a.Union(b)
	if err != nil {
		return Rule{}, err
	}

	supAB, ok := res.Support(ab)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", apriori.ErrMissingSupport, ab)
	}
	supA, ok := res.Support(a)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", apriori.ErrMissingSupport, a)
	}
	supB, ok := res.Support(b)
	if !ok {
		return Rule{}, fmt.Errorf("%w: %s", apriori.ErrMissingSupport, b)
	}

	total := float64(res.TotalBaskets())
	r := Rule{
		A:          a,
		B:          b,
		Confidence: float64(supAB) / float64(supA),
		Lift:       float64(supAB) * total / (float64(supA) * float64(supB)),
	}
	if supAB == supA {
		// Confidence is exactly 1: the conviction denominator is zero and
		// the score diverges, so the sentinel stands in.
		r.Conviction = MaxConviction
	} else {
		r.Conviction = (1 - float64(supB)/total) / (1 - float64(supAB)/float64(supA))
	}
	return r, nil
}
