package apriori_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/apriori/apriori"
	"github.com/katalvlaran/apriori/basket"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleMine
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	Four browsing baskets, support threshold 2. D appears once, so it is
//	pruned in the singleton pass; {B,C} appears once, so pair pruning also
//	removes the only triple candidate {A,B,C}.
//
// Use case:
//
//	The minimal worked example of anti-monotonicity pruning across passes.
//
// Complexity: O(b³) per basket worst case, tiny here.
func ExampleMine() {
	src := basket.SliceSource{
		{"A", "B", "C"},
		{"A", "B"},
		{"A", "B", "D"},
		{"A", "C"},
	}
	opts := apriori.DefaultOptions()
	opts.SupportThreshold = 2

	res, err := apriori.Mine(context.Background(), src, opts)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	fmt.Println("baskets:", res.TotalBaskets())
	for _, s := range res.Itemsets() {
		n, _ := res.Support(s)
		fmt.Printf("%s support=%d\n", s, n)
	}
	// Output:
	// baskets: 4
	// {A} support=4
	// {B} support=3
	// {C} support=2
	// {A, B} support=3
	// {A, C} support=2
}
