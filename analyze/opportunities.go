package analyze

import (
	"regexp"
	"sort"
	"strings"

	"github.com/forumscope/forumscope"
)

// Result caps for ranked listings.
const (
	maxPainPoints        = 20
	maxGapsPerSection    = 10
	maxTopMentions       = 20
	maxLearningTopics    = 15
	painSentencesPerPost = 2
	lowEngagementReplies = 2
	painSnippetLength    = 200
	gapSnippetLength     = 150
	learningTopicLength  = 50
)

var painKeywords = []string{
	"frustrated", "annoyed", "difficult", "hard", "struggle",
	"problem", "issue", "trouble", "worry", "stress",
	"help", "desperate", "confused", "lost",
}

var productPostKeywords = []string{
	"product", "buy", "purchase", "recommend", "brand", "quality",
	"where to find", "best", "review", "comparison", "price", "cost",
	"store", "online", "amazon", "target", "walmart",
}

var learningPostKeywords = []string{
	"information", "learn", "understand", "explain", "guide",
	"tutorial", "how to", "what is", "resource", "book",
	"article", "website", "blog", "video", "course",
}

var (
	capitalizedPhraseRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	howToRe             = regexp.MustCompile(`(?i)how to ([^.!?]+)`)
	whatIsRe            = regexp.MustCompile(`(?i)what is ([^.!?]+)`)
)

// PainPoint is one frustration extracted from a post, ranked by how
// much discussion the post drew.
type PainPoint struct {
	Text       string `json:"text"`
	Section    string `json:"section"`
	Engagement int    `json:"engagement"`
}

// PainPoints extracts sentences containing frustration keywords from
// all posts, at most two per post, ranked by the post's reply count.
func PainPoints(data map[string][]*forumscope.PostRecord) []PainPoint {
	var points []PainPoint
	for _, post := range flatten(data) {
		taken := 0
		for _, sentence := range strings.Split(post.Content, ".") {
			if taken >= painSentencesPerPost {
				break
			}
			if !containsAny(strings.ToLower(sentence), painKeywords) {
				continue
			}
			taken++

			sentence = strings.TrimSpace(sentence)
			if len(sentence) <= 20 {
				continue
			}
			points = append(points, PainPoint{
				Text:       forumscope.Truncate(sentence, painSnippetLength),
				Section:    post.Section,
				Engagement: post.RepliesCount,
			})
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Engagement > points[j].Engagement
	})
	if len(points) > maxPainPoints {
		points = points[:maxPainPoints]
	}
	return points
}

// ResourceGaps finds questions that drew little discussion, per
// section. These are topics the community asks about but nobody
// answers.
func ResourceGaps(data map[string][]*forumscope.PostRecord) map[string][]string {
	gaps := make(map[string][]string)
	for section, posts := range data {
		var sectionGaps []string
		for _, post := range posts {
			if !post.IsQuestion || post.RepliesCount > lowEngagementReplies {
				continue
			}
			if len(sectionGaps) >= maxGapsPerSection {
				break
			}

			snippet := post.Title
			if snippet == "" {
				snippet = forumscope.Truncate(post.Content, gapSnippetLength)
			}
			if snippet != "" {
				sectionGaps = append(sectionGaps, snippet)
			}
		}
		gaps[section] = sectionGaps
	}
	return gaps
}

// Mention is a counted phrase, ranked by frequency.
type Mention struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// TopMentions counts capitalized phrases (candidate brand and product
// names) across posts that discuss products. Ties rank by first
// occurrence.
func TopMentions(data map[string][]*forumscope.PostRecord) []Mention {
	counts := make(map[string]int)
	order := make(map[string]int)

	for _, post := range flatten(data) {
		if !containsAny(strings.ToLower(post.Content), productPostKeywords) {
			continue
		}
		for _, phrase := range capitalizedPhraseRe.FindAllString(post.Content, -1) {
			if _, seen := counts[phrase]; !seen {
				order[phrase] = len(order)
			}
			counts[phrase]++
		}
	}

	return rankMentions(counts, order, maxTopMentions)
}

// LearningTopics extracts the topics people ask to learn about, from
// "how to ..." and "what is ..." clauses in information-seeking posts.
func LearningTopics(data map[string][]*forumscope.PostRecord) []Mention {
	counts := make(map[string]int)
	order := make(map[string]int)

	record := func(topic string) {
		topic = forumscope.Truncate(strings.TrimSpace(topic), learningTopicLength)
		if topic == "" {
			return
		}
		if _, seen := counts[topic]; !seen {
			order[topic] = len(order)
		}
		counts[topic]++
	}

	for _, post := range flatten(data) {
		if !containsAny(strings.ToLower(post.Content), learningPostKeywords) {
			continue
		}
		for _, m := range howToRe.FindAllStringSubmatch(post.Content, -1) {
			record(m[1])
		}
		for _, m := range whatIsRe.FindAllStringSubmatch(post.Content, -1) {
			record(m[1])
		}
	}

	return rankMentions(counts, order, maxLearningTopics)
}

// rankMentions orders counted phrases by count descending, breaking
// ties by first occurrence, and keeps the top n.
func rankMentions(counts map[string]int, order map[string]int, n int) []Mention {
	mentions := make([]Mention, 0, len(counts))
	for phrase, count := range counts {
		mentions = append(mentions, Mention{Phrase: phrase, Count: count})
	}
	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Count != mentions[j].Count {
			return mentions[i].Count > mentions[j].Count
		}
		return order[mentions[i].Phrase] < order[mentions[j].Phrase]
	})
	if len(mentions) > n {
		mentions = mentions[:n]
	}
	return mentions
}

// flatten concatenates all sections' posts in stable section order.
func flatten(data map[string][]*forumscope.PostRecord) []*forumscope.PostRecord {
	sections := make([]string, 0, len(data))
	for section := range data {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	var all []*forumscope.PostRecord
	for _, section := range sections {
		all = append(all, data[section]...)
	}
	return all
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
