package analyze_test

import (
	"strings"
	"testing"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/analyze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("renders all sections", func(t *testing.T) {
		t.Parallel()

		data := map[string][]*forumscope.PostRecord{
			"general-discussion": {
				{
					Section:      "general-discussion",
					Content:      "Would you recommend the Baby Bjorn carrier? I am so frustrated shopping for a good one.",
					RepliesCount: 12,
					IsQuestion:   true,
				},
				{
					Section:    "general-discussion",
					Title:      "Where to donate used cribs?",
					Content:    "Does anyone know a place that takes them?",
					IsQuestion: true,
				},
			},
		}

		report := analyze.Report(data, now)

		assert.Contains(t, report, "FORUM BUSINESS INTELLIGENCE REPORT")
		assert.Contains(t, report, "Generated: 2024-03-15 10:30:00")
		assert.Contains(t, report, "Total Posts Analyzed: 2")
		assert.Contains(t, report, "POSTS BY SECTION")
		assert.Contains(t, report, "general-discussion")
		assert.Contains(t, report, "ENGAGEMENT")
		assert.Contains(t, report, "BUSINESS OPPORTUNITIES")
		assert.Contains(t, report, "TOP MENTIONED PRODUCTS")
		assert.Contains(t, report, "Baby Bjorn")
		assert.Contains(t, report, "TOP PAIN POINTS")
		assert.Contains(t, report, "frustrated")
		assert.Contains(t, report, "RESOURCE GAPS BY SECTION")
		assert.Contains(t, report, "Where to donate used cribs?")
	})

	t.Run("aligns stat values past the widest label", func(t *testing.T) {
		t.Parallel()

		data := map[string][]*forumscope.PostRecord{
			"s": {{Section: "s", Content: "quiet post with nothing notable in it"}},
		}

		report := analyze.Report(data, now)

		var avgLine, highLine string
		for _, line := range strings.Split(report, "\n") {
			if strings.Contains(line, "Average replies") {
				avgLine = line
			}
			if strings.Contains(line, "High engagement posts") {
				highLine = line
			}
		}
		require.NotEmpty(t, avgLine)
		require.NotEmpty(t, highLine)
		assert.Equal(t, strings.LastIndex(avgLine, " "), strings.LastIndex(highLine, " "),
			"values should start at the same column")
	})

	t.Run("omits empty listings", func(t *testing.T) {
		t.Parallel()

		data := map[string][]*forumscope.PostRecord{
			"s": {{Section: "s", Content: "quiet post with nothing notable in it"}},
		}

		report := analyze.Report(data, now)

		assert.NotContains(t, report, "TOP MENTIONED PRODUCTS")
		assert.NotContains(t, report, "TOP PAIN POINTS")
		assert.NotContains(t, report, "RESOURCE GAPS")
	})
}
