package apriori

import "errors"

var (
	// ErrNilSource indicates a counting pass was started without a basket source.
	ErrNilSource = errors.New("apriori: basket source must not be nil")
	// ErrBadThreshold indicates a support threshold below 1.
	ErrBadThreshold = errors.New("apriori: support threshold must be a positive integer")
	// ErrItemsetSize indicates an itemset outside the supported sizes 1..3.
	ErrItemsetSize = errors.New("apriori: itemset must contain between 1 and 3 items")
	// ErrEmptyItem indicates an empty item identifier.
	ErrEmptyItem = errors.New("apriori: item identifier must not be empty")
	// ErrDuplicateItem indicates a repeated item within one itemset.
	ErrDuplicateItem = errors.New("apriori: itemset items must be distinct")
	// ErrWrongTier indicates a pruning tier whose itemset size does not match the pass.
	ErrWrongTier = errors.New("apriori: pruning tier has the wrong itemset size")
	// ErrInconsistent indicates an internal consistency assertion failed (Check mode).
	ErrInconsistent = errors.New("apriori: consistency check failed")
	// ErrMissingSupport indicates a support lookup that must succeed by
	// construction did not; the frequent-itemset table is defective.
	ErrMissingSupport = errors.New("apriori: support missing from frequent-itemset table")
)
