package bloom_test

import (
	"fmt"
	"testing"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndSeen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Key not yet added should return false
	assert.False(t, f.Seen("general-discussion/post-101"))

	// Add key
	f.Add("general-discussion/post-101")

	// Now it should return true
	assert.True(t, f.Seen("general-discussion/post-101"))

	// Different key should still return false
	assert.False(t, f.Seen("general-discussion/post-102"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Empty filter should have count near 0
	assert.Equal(t, uint(0), f.EstimatedCount())

	// Add some keys
	f.Add("general-discussion/post-101")
	f.Add("general-discussion/post-102")
	f.Add("pregnancy/post-201")

	// Estimated count should be approximately 3
	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	key := "general-discussion/post-101"

	f.Add(key)
	countAfterFirst := f.EstimatedCount()

	// Adding the same key multiple times should not change the filter
	f.Add(key)
	f.Add(key)
	f.Add(key)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Seen(key))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	// Add 10k keys
	for i := range numItems {
		f.Add(fmt.Sprintf("general-discussion/post-%d", i))
	}

	// Probe with 10k keys that were NOT added
	falsePositives := 0
	for i := range testProbes {
		key := fmt.Sprintf("pregnancy/post-%d", i)
		if f.Seen(key) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}

// Compile-time verification that Filter implements forumscope.SeenFilter
var _ forumscope.SeenFilter = (*bloom.Filter)(nil)
