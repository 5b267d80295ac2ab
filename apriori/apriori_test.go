package apriori_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/apriori/apriori"
	"github.com/katalvlaran/apriori/basket"
)

// mustSet builds an Itemset or fails the test.
func mustSet(t *testing.T, items ...string) apriori.Itemset {
	t.Helper()
	s, err := apriori.NewItemset(items...)
	require.NoError(t, err)
	return s
}

// optsT returns default options with the given threshold.
func optsT(threshold int) apriori.Options {
	o := apriori.DefaultOptions()
	o.SupportThreshold = threshold
	return o
}

// browsing is the worked end-to-end dataset: four baskets of distinct tokens.
var browsing = basket.SliceSource{
	{"A", "B", "C"},
	{"A", "B"},
	{"A", "B", "D"},
	{"A", "C"},
}

// TestNewItemset_Validation covers size, emptiness and duplicate rules.
func TestNewItemset_Validation(t *testing.T) {
	_, err := apriori.NewItemset()
	assert.ErrorIs(t, err, apriori.ErrItemsetSize, "zero items must error")

	_, err = apriori.NewItemset("a", "b", "c", "d")
	assert.ErrorIs(t, err, apriori.ErrItemsetSize, "four items must error")

	_, err = apriori.NewItemset("a", "")
	assert.ErrorIs(t, err, apriori.ErrEmptyItem, "blank identifier must error")

	_, err = apriori.NewItemset("a", "a")
	assert.ErrorIs(t, err, apriori.ErrDuplicateItem, "repeated member must error")
}

// TestItemset_OrderIndependentKey verifies set equality is order-independent.
func TestItemset_OrderIndependentKey(t *testing.T) {
	ab := mustSet(t, "A", "B")
	ba := mustSet(t, "B", "A")

	assert.Equal(t, ab.Key(), ba.Key(), "keys must not depend on construction order")
	assert.Equal(t, "{A, B}", ba.String(), "rendering must be sorted")
}

// TestItemset_SetOperations checks Without, Union and Contains.
func TestItemset_SetOperations(t *testing.T) {
	abc := mustSet(t, "C", "A", "B")

	assert.True(t, abc.Contains("B"))
	assert.Equal(t, mustSet(t, "A", "C"), abc.Without("B"))

	ab, err := mustSet(t, "A").Union(mustSet(t, "B", "A"))
	require.NoError(t, err)
	assert.Equal(t, mustSet(t, "A", "B"), ab, "union must deduplicate")

	_, err = abc.Union(mustSet(t, "D"))
	assert.ErrorIs(t, err, apriori.ErrItemsetSize, "unions above size 3 must error")
}

// TestCountSingletons_Browsing verifies per-occurrence counts, thresholding
// and the basket total on the worked dataset.
func TestCountSingletons_Browsing(t *testing.T) {
	singles, total, err := apriori.CountSingletons(context.Background(), browsing, optsT(2))
	require.NoError(t, err)

	assert.Equal(t, 4, total, "four basket lines scanned")
	assert.Equal(t, 3, singles.Len(), "A, B, C frequent; D below threshold")

	wantCounts := map[string]int{"A": 4, "B": 3, "C": 2}
	for it, want := range wantCounts {
		n, ok := singles.Support(mustSet(t, it))
		require.True(t, ok, "expected frequent singleton %q", it)
		assert.Equal(t, want, n, "support of %q", it)
	}
	_, ok := singles.Support(mustSet(t, "D"))
	assert.False(t, ok, "D has support 1 and must be excluded")
}

// TestCountSingletons_PerOccurrence verifies a token repeated within one
// basket line counts once per occurrence, not once per basket.
func TestCountSingletons_PerOccurrence(t *testing.T) {
	src := basket.SliceSource{{"A", "A", "B"}}
	singles, total, err := apriori.CountSingletons(context.Background(), src, optsT(2))
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	n, ok := singles.Support(mustSet(t, "A"))
	require.True(t, ok)
	assert.Equal(t, 2, n, "two occurrences of A in one basket count twice")
}

// TestCountPairs_Browsing verifies pair support and singleton pruning.
func TestCountPairs_Browsing(t *testing.T) {
	ctx := context.Background()
	singles, _, err := apriori.CountSingletons(ctx, browsing, optsT(2))
	require.NoError(t, err)

	pairs, err := apriori.CountPairs(ctx, browsing, singles, optsT(2))
	require.NoError(t, err)

	assert.Equal(t, 2, pairs.Len())
	n, ok := pairs.Support(mustSet(t, "A", "B"))
	require.True(t, ok)
	assert.Equal(t, 3, n, "{A,B} appears in three baskets")

	n, ok = pairs.Support(mustSet(t, "A", "C"))
	require.True(t, ok)
	assert.Equal(t, 2, n, "{A,C} appears in two baskets")

	_, ok = pairs.Support(mustSet(t, "B", "C"))
	assert.False(t, ok, "{B,C} has support 1 and must be excluded")
}

// TestCountTriples_PrunedByPairs verifies that a triple is dropped when any
// constituent pair is infrequent, even if the triple itself reaches the
// threshold by raw count.
func TestCountTriples_PrunedByPairs(t *testing.T) {
	ctx := context.Background()
	singles, _, err := apriori.CountSingletons(ctx, browsing, optsT(2))
	require.NoError(t, err)
	pairs, err := apriori.CountPairs(ctx, browsing, singles, optsT(2))
	require.NoError(t, err)

	triples, err := apriori.CountTriples(ctx, browsing, pairs, optsT(2))
	require.NoError(t, err)
	assert.Zero(t, triples.Len(), "{A,B,C} must be pruned: {B,C} is infrequent")
}

// TestCountTriples_Frequent verifies a genuinely frequent triple survives.
func TestCountTriples_Frequent(t *testing.T) {
	src := basket.SliceSource{
		{"A", "B", "C"},
		{"A", "B", "C", "D"},
		{"B", "C"},
	}
	ctx := context.Background()
	singles, _, err := apriori.CountSingletons(ctx, src, optsT(2))
	require.NoError(t, err)
	pairs, err := apriori.CountPairs(ctx, src, singles, optsT(2))
	require.NoError(t, err)
	triples, err := apriori.CountTriples(ctx, src, pairs, optsT(2))
	require.NoError(t, err)

	n, ok := triples.Support(mustSet(t, "A", "B", "C"))
	require.True(t, ok, "{A,B,C} appears twice and all its pairs are frequent")
	assert.Equal(t, 2, n)
}

// TestMine_Browsing verifies the assembled table on the worked dataset.
func TestMine_Browsing(t *testing.T) {
	res, err := apriori.Mine(context.Background(), browsing, optsT(2))
	require.NoError(t, err)

	assert.Equal(t, 4, res.TotalBaskets())
	assert.Equal(t, 5, res.Len(), "three singletons plus two pairs")

	n, ok := res.Support(mustSet(t, "A", "B"))
	require.True(t, ok)
	assert.Equal(t, 3, n)

	// Canonical order: singletons first, then pairs, lexicographic within size.
	var rendered []string
	for _, s := range res.Itemsets() {
		rendered = append(rendered, s.String())
	}
	assert.Equal(t,
		[]string{"{A}", "{B}", "{C}", "{A, B}", "{A, C}"},
		rendered)
}

// TestMine_EmptyInput verifies the zero-basket edge case: empty table,
// zero total, no error.
func TestMine_EmptyInput(t *testing.T) {
	res, err := apriori.Mine(context.Background(), basket.SliceSource{}, optsT(2))
	require.NoError(t, err)

	assert.Zero(t, res.TotalBaskets())
	assert.Zero(t, res.Len())
	assert.Empty(t, res.Itemsets())
}

// TestMine_InputValidation covers nil sources and bad thresholds.
func TestMine_InputValidation(t *testing.T) {
	_, err := apriori.Mine(context.Background(), nil, optsT(2))
	assert.ErrorIs(t, err, apriori.ErrNilSource)

	_, err = apriori.Mine(context.Background(), browsing, optsT(0))
	assert.ErrorIs(t, err, apriori.ErrBadThreshold)
}

// TestCountPairs_WrongTier verifies the tier-size guard.
func TestCountPairs_WrongTier(t *testing.T) {
	ctx := context.Background()
	singles, _, err := apriori.CountSingletons(ctx, browsing, optsT(2))
	require.NoError(t, err)
	pairs, err := apriori.CountPairs(ctx, browsing, singles, optsT(2))
	require.NoError(t, err)

	_, err = apriori.CountPairs(ctx, browsing, pairs, optsT(2))
	assert.ErrorIs(t, err, apriori.ErrWrongTier, "pair pass must reject a size-2 pruning tier")

	_, err = apriori.CountTriples(ctx, browsing, singles, optsT(2))
	assert.ErrorIs(t, err, apriori.ErrWrongTier, "triple pass must reject a size-1 pruning tier")
}

// bruteSupport recounts support of s by scanning baskets for subset
// containment. Baskets here hold distinct tokens, so containment counting
// and position counting agree.
func bruteSupport(baskets [][]string, s apriori.Itemset) int {
	n := 0
	for _, b := range baskets {
		present := 0
		for _, want := range s.Items() {
			for _, it := range b {
				if it == want {
					present++
					break
				}
			}
		}
		if present == s.Size() {
			n++
		}
	}
	return n
}

// TestMine_MatchesBruteForce verifies pruning introduces no false positives
// or negatives: every reported support equals a direct recount, and every
// brute-force-frequent pair and triple is reported.
func TestMine_MatchesBruteForce(t *testing.T) {
	baskets := [][]string{
		{"milk", "bread", "eggs"},
		{"milk", "bread"},
		{"milk", "eggs", "beer"},
		{"bread", "eggs", "beer"},
		{"milk", "bread", "eggs", "beer"},
		{"milk", "bread", "eggs"},
		{"beer"},
		{},
	}
	const threshold = 3

	res, err := apriori.Mine(context.Background(), basket.SliceSource(baskets), optsT(threshold))
	require.NoError(t, err)
	assert.Equal(t, len(baskets), res.TotalBaskets())

	// No false positives: reported supports match recounts and reach the threshold.
	for _, s := range res.Itemsets() {
		n, ok := res.Support(s)
		require.True(t, ok)
		assert.Equal(t, bruteSupport(baskets, s), n, "support of %s", s)
		assert.GreaterOrEqual(t, n, threshold, "reported itemset %s below threshold", s)
	}

	// No false negatives: every brute-force-frequent itemset is reported.
	items := []string{"milk", "bread", "eggs", "beer"}
	var all []apriori.Itemset
	for i := range items {
		all = append(all, mustSet(t, items[i]))
		for j := i + 1; j < len(items); j++ {
			all = append(all, mustSet(t, items[i], items[j]))
			for k := j + 1; k < len(items); k++ {
				all = append(all, mustSet(t, items[i], items[j], items[k]))
			}
		}
	}
	for _, s := range all {
		if bruteSupport(baskets, s) >= threshold {
			_, ok := res.Support(s)
			assert.True(t, ok, "brute-force-frequent itemset %s missing", s)
		}
	}
}

// TestMine_AntiMonotonicity verifies every reported itemset has only
// frequent proper subsets.
func TestMine_AntiMonotonicity(t *testing.T) {
	src := basket.SliceSource{
		{"a", "b", "c", "d"},
		{"a", "b", "c"},
		{"a", "b", "d"},
		{"c", "d"},
		{"a", "c", "d"},
	}
	res, err := apriori.Mine(context.Background(), src, optsT(3))
	require.NoError(t, err)

	for _, s := range res.Itemsets() {
		for _, it := range s.Items() {
			if s.Size() == 1 {
				continue
			}
			_, ok := res.Support(s.Without(it))
			assert.True(t, ok, "subset %s of %s must be frequent", s.Without(it), s)
		}
	}
}

// TestMine_Idempotent verifies two runs over identical input agree exactly.
func TestMine_Idempotent(t *testing.T) {
	ctx := context.Background()
	first, err := apriori.Mine(ctx, browsing, optsT(2))
	require.NoError(t, err)
	second, err := apriori.Mine(ctx, browsing, optsT(2))
	require.NoError(t, err)

	assert.Equal(t, first.TotalBaskets(), second.TotalBaskets())
	require.Equal(t, first.Itemsets(), second.Itemsets())
	for _, s := range first.Itemsets() {
		a, _ := first.Support(s)
		b, _ := second.Support(s)
		assert.Equal(t, a, b, "support of %s", s)
	}
}

// TestMine_CheckMode verifies Check mode passes cleanly on healthy input.
func TestMine_CheckMode(t *testing.T) {
	o := optsT(2)
	o.Check = true

	res, err := apriori.Mine(context.Background(), browsing, o)
	require.NoError(t, err, "consistency checks must pass on valid data")
	assert.Equal(t, 5, res.Len())
}
