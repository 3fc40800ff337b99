// Package bloom provides post deduplication using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/forumscope/forumscope"
)

// Ensure Filter implements forumscope.SeenFilter at compile time.
var _ forumscope.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for cross-page post deduplication.
// Sticky threads reappear on every page of a section; the filter
// remembers their keys without holding every key in memory. False
// positives drop a post that was never seen; false negatives never
// happen, so no duplicate survives.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a post key to the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Seen returns true if the key might have been added before.
func (f *Filter) Seen(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
