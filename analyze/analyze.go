// Package analyze aggregates scraped records into business-intelligence
// signals: summary statistics, pain points, resource gaps and a
// plain-text report.
package analyze

import (
	"github.com/forumscope/forumscope"
)

// HighEngagementThreshold is the engagement score above which a post
// counts as high-engagement.
const HighEngagementThreshold = 50

// EngagementStats describe reply and view activity across all posts.
type EngagementStats struct {
	AvgReplies          float64 `json:"avg_replies"`
	AvgViews            float64 `json:"avg_views"`
	HighEngagementPosts int     `json:"high_engagement_posts"`
}

// ContentStats count classified content across all posts.
type ContentStats struct {
	Questions        int `json:"questions"`
	Answers          int `json:"answers"`
	ResourceMentions int `json:"resource_mentions"`
}

// TemporalStats bucket posts by posting hour and weekday. Only posts
// with parseable ISO timestamps are counted.
type TemporalStats struct {
	PostsByHour map[int]int    `json:"posts_by_hour"`
	PostsByDay  map[string]int `json:"posts_by_day"`
}

// SummaryStats is the aggregate view over one export. The JSON keys
// are the summary file format and must stay stable.
type SummaryStats struct {
	TotalPosts    int             `json:"total_posts"`
	Sections      map[string]int  `json:"sections"`
	Engagement    EngagementStats `json:"engagement_stats"`
	Content       ContentStats    `json:"content_analysis"`
	Opportunities map[string]int  `json:"business_opportunities"`
	Temporal      TemporalStats   `json:"temporal_analysis"`
}

// Summarize computes summary statistics over records grouped by
// section. Opportunity counts cover only the four keyword-driven
// categories; section-fallback categories are not counted.
func Summarize(data map[string][]*forumscope.PostRecord) *SummaryStats {
	stats := &SummaryStats{
		Sections: make(map[string]int),
		Opportunities: map[string]int{
			forumscope.OpportunityProduct:     0,
			forumscope.OpportunityService:     0,
			forumscope.OpportunityInformation: 0,
			forumscope.OpportunityCommunity:   0,
		},
		Temporal: TemporalStats{
			PostsByHour: make(map[int]int),
			PostsByDay:  make(map[string]int),
		},
	}

	var all []*forumscope.PostRecord
	for section, posts := range data {
		stats.Sections[section] = len(posts)
		stats.TotalPosts += len(posts)
		all = append(all, posts...)
	}

	if len(all) == 0 {
		return stats
	}

	var totalReplies, totalViews int
	for _, post := range all {
		totalReplies += post.RepliesCount
		totalViews += post.ViewsCount

		if post.IsQuestion {
			stats.Content.Questions++
		}
		if post.IsAnswer {
			stats.Content.Answers++
		}
		stats.Content.ResourceMentions += len(post.ResourceMentions)

		if forumscope.EngagementScore(post) > HighEngagementThreshold {
			stats.Engagement.HighEngagementPosts++
		}

		category := forumscope.CategorizeOpportunity(post.Content, post.Title, post.Section)
		if _, ok := stats.Opportunities[category]; ok {
			stats.Opportunities[category]++
		}

		if ts, ok := forumscope.ParseTimestamp(post.Timestamp); ok {
			stats.Temporal.PostsByHour[ts.Hour()]++
			stats.Temporal.PostsByDay[ts.Weekday().String()]++
		}
	}

	stats.Engagement.AvgReplies = float64(totalReplies) / float64(len(all))
	stats.Engagement.AvgViews = float64(totalViews) / float64(len(all))

	return stats
}
