package analyze_test

import (
	"testing"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/analyze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() map[string][]*forumscope.PostRecord {
	return map[string][]*forumscope.PostRecord{
		"general-discussion": {
			{
				Section:      "general-discussion",
				Content:      "Where can I buy the best brand of stroller? Any recommendations?",
				Timestamp:    "2024-03-12T09:15:00",
				Author:       "SXXXh",
				RepliesCount: 8,
				ViewsCount:   120,
				IsQuestion:   true,
			},
			{
				Section:          "general-discussion",
				Content:          "You should try the local support group, it helped me connect with others.",
				Timestamp:        "2024-03-12T21:40:00",
				Author:           "MXXXa",
				RepliesCount:     2,
				ViewsCount:       40,
				IsAnswer:         true,
				ResourceMentions: []string{"group"},
			},
		},
		"pregnancy": {
			{
				Section:      "pregnancy",
				Content:      "aaaa bbbb cccc dddd",
				Timestamp:    "not a timestamp",
				RepliesCount: 1,
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("aggregates counts across sections", func(t *testing.T) {
		t.Parallel()

		stats := analyze.Summarize(sampleData())

		assert.Equal(t, 3, stats.TotalPosts)
		assert.Equal(t, map[string]int{"general-discussion": 2, "pregnancy": 1}, stats.Sections)
		assert.Equal(t, 1, stats.Content.Questions)
		assert.Equal(t, 1, stats.Content.Answers)
		assert.Equal(t, 1, stats.Content.ResourceMentions)
		assert.InDelta(t, 11.0/3.0, stats.Engagement.AvgReplies, 0.001)
		assert.InDelta(t, 160.0/3.0, stats.Engagement.AvgViews, 0.001)
	})

	t.Run("counts only keyword-scored opportunity categories", func(t *testing.T) {
		t.Parallel()

		stats := analyze.Summarize(sampleData())

		// The pregnancy post matches no keywords; its fallback category
		// is not one of the four counted buckets.
		total := 0
		for _, count := range stats.Opportunities {
			total += count
		}
		assert.Equal(t, 2, total)
		assert.Equal(t, 1, stats.Opportunities[forumscope.OpportunityProduct])
	})

	t.Run("buckets posts by hour and weekday, skipping bad timestamps", func(t *testing.T) {
		t.Parallel()

		stats := analyze.Summarize(sampleData())

		// 2024-03-12 is a Tuesday. The pregnancy post's timestamp does
		// not parse and is skipped.
		assert.Equal(t, map[int]int{9: 1, 21: 1}, stats.Temporal.PostsByHour)
		assert.Equal(t, map[string]int{"Tuesday": 2}, stats.Temporal.PostsByDay)
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		stats := analyze.Summarize(map[string][]*forumscope.PostRecord{})
		require.NotNil(t, stats)
		assert.Zero(t, stats.TotalPosts)
		assert.Zero(t, stats.Engagement.AvgReplies)
	})

	t.Run("counts high engagement posts", func(t *testing.T) {
		t.Parallel()

		data := map[string][]*forumscope.PostRecord{
			"s": {
				// (80/100)*100 = 80 > 50
				{Section: "s", Content: "busy thread", RepliesCount: 80, ViewsCount: 100},
				// (1/100)*100 = 1
				{Section: "s", Content: "quiet thread", RepliesCount: 1, ViewsCount: 100},
			},
		}

		stats := analyze.Summarize(data)
		assert.Equal(t, 1, stats.Engagement.HighEngagementPosts)
	})
}
