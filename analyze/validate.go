package analyze

import (
	"fmt"

	"github.com/forumscope/forumscope"
)

// minContentRatio is the share of posts that must carry content for an
// export to pass validation.
const minContentRatio = 0.8

// ValidationStats count field coverage across an export.
type ValidationStats struct {
	TotalPosts         int `json:"total_posts"`
	PostsWithContent   int `json:"posts_with_content"`
	PostsWithTimestamp int `json:"posts_with_timestamps"`
	PostsWithAuthor    int `json:"posts_with_authors"`
}

// Validation is the result of a data-quality pass over an export.
type Validation struct {
	Valid  bool            `json:"valid"`
	Issues []string        `json:"issues"`
	Stats  ValidationStats `json:"stats"`
}

// ValidateRecords checks extraction quality: every post should carry
// content, and most should carry timestamps and authors. The export is
// invalid when fewer than 80% of posts have content.
func ValidateRecords(data map[string][]*forumscope.PostRecord) *Validation {
	result := &Validation{Valid: true}

	for section, posts := range data {
		result.Stats.TotalPosts += len(posts)

		for _, post := range posts {
			if post.Content != "" {
				result.Stats.PostsWithContent++
			} else {
				result.Issues = append(result.Issues, fmt.Sprintf("Post missing content in %s", section))
			}
			if post.Timestamp != "" {
				result.Stats.PostsWithTimestamp++
			}
			if post.Author != "" {
				result.Stats.PostsWithAuthor++
			}
		}
	}

	if result.Stats.TotalPosts > 0 {
		ratio := float64(result.Stats.PostsWithContent) / float64(result.Stats.TotalPosts)
		if ratio < minContentRatio {
			result.Valid = false
			result.Issues = append(result.Issues, "Low content extraction rate")
		}
	}

	return result
}
