package forumscope

import (
	"regexp"
	"sort"
	"strings"
)

// Pattern lists consulted by AnalyzeContent. Order matters: sentiment
// indicators are reported in list order, and the lists are part of the
// observable output format.
var (
	questionPatterns = []string{
		`\?`, `how to`, `what is`, `where can`, `when should`,
		`why does`, `help`, `advice`, `suggestions`, `recommendations`,
	}

	answerPatterns = []string{
		`try this`, `i suggest`, `in my experience`, `you should`,
		`i recommend`, `what worked for me`, `here's what`,
	}

	emotionKeywords = []string{
		"worried", "scared", "excited", "frustrated", "happy",
		"sad", "anxious", "grateful", "confused", "hopeful",
	}

	resourceKeywords = []string{
		"book", "website", "article", "doctor", "specialist",
		"product", "service", "app", "tool", "resource",
	}
)

var (
	questionRes = compilePatterns(questionPatterns)
	answerRes   = compilePatterns(answerPatterns)

	// One matcher per resource keyword: any word containing the keyword
	// as a substring counts as a mention.
	resourceRes = func() []*regexp.Regexp {
		res := make([]*regexp.Regexp, len(resourceKeywords))
		for i, kw := range resourceKeywords {
			res[i] = regexp.MustCompile(`(?i)\b\w*` + kw + `\w*\b`)
		}
		return res
	}()

	wordRe = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
)

func compilePatterns(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

// stopWords are excluded from keyword extraction. Entries of three
// letters are also caught by the length filter; the list is kept whole
// so the two filters can evolve independently.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"day": true, "get": true, "has": true, "him": true, "his": true,
	"how": true, "its": true, "may": true, "new": true, "now": true,
	"old": true, "see": true, "two": true, "who": true, "boy": true,
	"did": true, "she": true, "use": true, "way": true, "oil": true,
	"sit": true, "set": true, "run": true, "eat": true,
}

// ContentAnalysis holds classification signals derived from post content.
type ContentAnalysis struct {
	IsQuestion          bool
	IsAnswer            bool
	SentimentIndicators []string
	ResourceMentions    []string
	Keywords            []string
}

// AnalyzeContent classifies post content with keyword and pattern
// matching. Sentiment indicators are the matched pattern keywords in
// list order; resource mentions are the distinct matched words in
// first-match order; keywords are the ten most frequent content words.
func AnalyzeContent(content string) ContentAnalysis {
	lower := strings.ToLower(content)

	return ContentAnalysis{
		IsQuestion:          matchesAny(questionRes, lower),
		IsAnswer:            matchesAny(answerRes, lower),
		SentimentIndicators: sentimentIndicators(lower),
		ResourceMentions:    resourceMentions(lower),
		Keywords:            ExtractKeywords(content),
	}
}

func matchesAny(res []*regexp.Regexp, content string) bool {
	for _, re := range res {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// sentimentIndicators returns the emotion keywords present in content,
// in keyword-list order. Each keyword is checked once so the result
// cannot contain duplicates.
func sentimentIndicators(content string) []string {
	var indicators []string
	for _, kw := range emotionKeywords {
		if strings.Contains(content, kw) {
			indicators = append(indicators, kw)
		}
	}
	return indicators
}

// resourceMentions returns every distinct word containing a resource
// keyword as a substring, in order of first match.
func resourceMentions(content string) []string {
	seen := make(map[string]bool)
	var mentions []string
	for _, re := range resourceRes {
		for _, m := range re.FindAllString(content, -1) {
			if !seen[m] {
				seen[m] = true
				mentions = append(mentions, m)
			}
		}
	}
	return mentions
}

// ExtractKeywords returns up to ten of the most frequent words in
// content. Words are lowercased alphabetic tokens longer than three
// characters and outside the stop-word list. Ties rank by first
// occurrence.
func ExtractKeywords(content string) []string {
	words := wordRe.FindAllString(strings.ToLower(content), -1)

	counts := make(map[string]int)
	var order []string
	for _, w := range words {
		if stopWords[w] || len(w) <= 3 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 10 {
		order = order[:10]
	}
	return order
}

// ClassifyLink classifies a hyperlink destination by URL substring
// rules, evaluated in fixed precedence: product, document, video,
// email, then external.
func ClassifyLink(rawURL string) string {
	lower := strings.ToLower(rawURL)

	switch {
	case containsAny(lower, "amazon", "ebay", "shop"):
		return LinkProduct
	case containsAny(lower, ".pdf", ".doc", ".docx"):
		return LinkDocument
	case containsAny(lower, "youtube", "vimeo"):
		return LinkVideo
	case strings.HasPrefix(lower, "mailto:"):
		return LinkEmail
	default:
		return LinkExternal
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// EngagementScore computes a 0-100 engagement score for a record:
// reply-to-view ratio as a percentage, plus bonuses for questions,
// answers, and resource mentions. All terms are non-negative so the
// score never drops below zero; it is capped at 100.
func EngagementScore(r *PostRecord) float64 {
	var score float64
	if r.ViewsCount > 0 {
		score = float64(r.RepliesCount) / float64(r.ViewsCount) * 100
	}

	if r.IsQuestion {
		score += 10
	}
	if r.IsAnswer {
		score += 5
	}
	score += float64(len(r.ResourceMentions)) * 2

	if score > 100 {
		score = 100
	}
	return score
}
