package rules

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/apriori/apriori"
)

// MaxConviction is the sentinel conviction score for rules whose confidence
// is exactly 1: the true value diverges, so a fixed maximal score stands in
// for "infinite conviction".
const MaxConviction = 9999.9999

var (
	// ErrNilResult indicates rule generation was started without a table.
	ErrNilResult = errors.New("rules: frequent-itemset result must not be nil")
	// ErrBadMetric indicates an unknown ranking metric.
	ErrBadMetric = errors.New("rules: unknown metric")
	// ErrBadSize indicates a combined itemset size other than 2 or 3.
	ErrBadSize = errors.New("rules: itemset size must be 2 or 3")
	// ErrBadLimit indicates a negative top-N limit.
	ErrBadLimit = errors.New("rules: limit must not be negative")
)

// Rule is one association rule A → B: two disjoint, non-empty itemsets
// whose union is a frequent itemset, plus its three scores. Rules are
// immutable once generated.
type Rule struct {
	A          apriori.Itemset
	B          apriori.Itemset
	Confidence float64
	Lift       float64
	Conviction float64
}

// Size reports the combined itemset size |A| + |B|.
func (r Rule) Size() int { return r.A.Size() + r.B.Size() }

// String renders the rule as "{a} --> {b}".
func (r Rule) String() string {
	return fmt.Sprintf("%s --> %s", r.A, r.B)
}

// Metric selects one of the three rule scores for ranking.
type Metric string

const (
	MetricConfidence Metric = "confidence"
	MetricLift       Metric = "lift"
	MetricConviction Metric = "conviction"
)

// Metrics lists the metrics in fixed report order.
var Metrics = []Metric{MetricConfidence, MetricLift, MetricConviction}

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricConfidence, MetricLift, MetricConviction:
		return true
	}
	return false
}

// Score returns the rule's value for metric m; unknown metrics score zero.
func (r Rule) Score(m Metric) float64 {
	switch m {
	case MetricConfidence:
		return r.Confidence
	case MetricLift:
		return r.Lift
	case MetricConviction:
		return r.Conviction
	}
	return 0
}
