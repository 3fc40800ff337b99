package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/forumscope/forumscope"
)

// Per-field selector chains, tried in order; the first selector that
// produces a usable value wins.
var (
	postIDAttrs = []string{"id", "data-post-id", "data-id", "data-message-id"}

	authorSelectors = []string{
		".author", ".username", ".poster", ".user-name",
		`[class*="author"]`, `[class*="user"]`, `[class*="poster"]`,
	}

	timeSelectors = []string{
		".timestamp", ".date", ".time", ".posted-date",
		`[class*="time"]`, `[class*="date"]`, "time",
	}

	contentSelectors = []string{
		".content", ".message-content", ".post-content", ".body",
		`[class*="content"]`, `[class*="message"]`, `[class*="body"]`,
	}

	titleSelectors = []string{
		".title", ".subject", ".topic-title", "h1", "h2", "h3",
		`[class*="title"]`, `[class*="subject"]`,
	}

	replySelectors = []string{".replies", ".reply-count", `[class*="replies"]`}
	viewSelectors  = []string{".views", ".view-count", `[class*="views"]`}
	tagSelectors   = []string{".tag", ".category", ".label", `[class*="tag"]`}
)

var (
	postIDRe   = regexp.MustCompile(`post|message`)
	quoteRe    = regexp.MustCompile(`quote|quoted`)
	sigRe      = regexp.MustCompile(`signature|sig`)
	editRe     = regexp.MustCompile(`edit|modified`)
	digitRunRe = regexp.MustCompile(`\d+`)
)

// Ensure Extractor implements forumscope.PageExtractor at compile time.
var _ forumscope.PageExtractor = (*Extractor)(nil)

// Extractor locates post fragments in forum pages and extracts
// structured records from them.
type Extractor struct {
	locator *Locator
	now     func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithNow sets the clock used for extraction timestamps and
// relative-time resolution. Defaults to time.Now.
func WithNow(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		locator: NewLocator(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractPage locates post fragments in the page and extracts a record
// from each. A fragment that fails extraction yields no record; its
// siblings are unaffected.
func (e *Extractor) ExtractPage(html string, section string) ([]*forumscope.PostRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, forumscope.Errorf(forumscope.EINVALID, "failed to parse HTML: %v", err)
	}

	fragments := e.locator.Locate(doc)

	var records []*forumscope.PostRecord
	for _, frag := range fragments {
		if rec := e.extractRecord(frag.Selection, section); rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// extractRecord extracts a record from one fragment. It returns nil
// when the fragment has no usable content. Panics from unexpected
// markup are swallowed so one bad fragment never aborts the page.
func (e *Extractor) extractRecord(s *goquery.Selection, section string) (rec *forumscope.PostRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
		}
	}()

	rec = &forumscope.PostRecord{
		Section:     section,
		ExtractedAt: e.now().UTC(),
		PostID:      extractPostID(s),
		Author:      extractAuthor(s),
		Timestamp:   e.extractTimestamp(s),
		Content:     extractContent(s),
		Title:       extractTitle(s),
	}
	rec.RepliesCount = extractCount(s, replySelectors)
	rec.ViewsCount = extractCount(s, viewSelectors)
	rec.Tags = extractTags(s)
	rec.Links = extractLinks(s)

	if rec.Content != "" {
		analysis := forumscope.AnalyzeContent(rec.Content)
		rec.IsQuestion = analysis.IsQuestion
		rec.IsAnswer = analysis.IsAnswer
		rec.SentimentIndicators = analysis.SentimentIndicators
		rec.ResourceMentions = analysis.ResourceMentions
		rec.Keywords = analysis.Keywords
	}

	// Only keep posts with meaningful content.
	if len(strings.TrimSpace(rec.Content)) <= forumscope.MinRecordLength {
		return nil
	}
	return rec
}

func extractPostID(s *goquery.Selection) string {
	for _, attr := range postIDAttrs {
		if v, ok := s.Attr(attr); ok && v != "" {
			return v
		}
	}

	// Fall back to a descendant whose id looks post-related.
	id := ""
	s.Find("[id]").EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if v, ok := child.Attr("id"); ok && postIDRe.MatchString(v) {
			id = v
			return false
		}
		return true
	})
	return id
}

func extractAuthor(s *goquery.Selection) string {
	for _, selector := range authorSelectors {
		el := s.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if author := strings.TrimSpace(el.Text()); author != "" {
			return forumscope.AnonymizeUsername(author)
		}
	}
	return ""
}

func (e *Extractor) extractTimestamp(s *goquery.Selection) string {
	for _, selector := range timeSelectors {
		el := s.Find(selector).First()
		if el.Length() == 0 {
			continue
		}

		if v, ok := el.Attr("datetime"); ok && v != "" {
			return v
		}
		if v, ok := el.Attr("title"); ok && v != "" {
			return v
		}
		if text := strings.TrimSpace(el.Text()); text != "" {
			return forumscope.ParseRelativeTime(text, e.now())
		}
	}
	return ""
}

// extractContent finds the post body, stripping quote blocks,
// signatures, and edit notices before reading text. The stripping
// mutates the fragment, so later fields (links in particular) never see
// quoted material either.
func extractContent(s *goquery.Selection) string {
	for _, selector := range contentSelectors {
		el := s.Find(selector).First()
		if el.Length() == 0 {
			continue
		}

		cleanContentElement(el)
		content := forumscope.CleanText(el.Text())
		if len(content) > forumscope.MinContentLength {
			return content
		}
	}

	// Fall back to the fragment's full text.
	content := forumscope.CleanText(s.Text())
	if len(content) > forumscope.MinContentLength {
		return content
	}
	return ""
}

func cleanContentElement(el *goquery.Selection) {
	for _, re := range []*regexp.Regexp{quoteRe, sigRe, editRe} {
		el.Find("[class]").Each(func(_ int, child *goquery.Selection) {
			if class, ok := child.Attr("class"); ok && re.MatchString(class) {
				child.Remove()
			}
		})
	}
}

func extractTitle(s *goquery.Selection) string {
	for _, selector := range titleSelectors {
		el := s.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if title := strings.TrimSpace(el.Text()); title != "" {
			return title
		}
	}
	return ""
}

// extractCount returns the first run of digits found in the first
// matching element's text, or 0 when no selector matches or the text
// has no digits.
func extractCount(s *goquery.Selection, selectors []string) int {
	for _, selector := range selectors {
		el := s.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if m := digitRunRe.FindString(el.Text()); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n
			}
		}
	}
	return 0
}

// extractTags collects the text of every element matching any tag-like
// selector, in document order. The union selector visits each element
// once even when it matches several of the patterns.
func extractTags(s *goquery.Selection) []string {
	var tags []string
	s.Find(strings.Join(tagSelectors, ", ")).Each(func(_ int, el *goquery.Selection) {
		if tag := strings.TrimSpace(el.Text()); tag != "" {
			tags = append(tags, tag)
		}
	})
	return tags
}

func extractLinks(s *goquery.Selection) []forumscope.Link {
	var links []forumscope.Link
	s.Find("a[href]").Each(func(_ int, el *goquery.Selection) {
		href, _ := el.Attr("href")
		text := strings.TrimSpace(el.Text())
		if href == "" || text == "" {
			return
		}
		links = append(links, forumscope.Link{
			URL:  href,
			Text: text,
			Type: forumscope.ClassifyLink(href),
		})
	})
	return links
}
