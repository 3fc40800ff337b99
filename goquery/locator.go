// Package goquery provides goquery-based post location and field
// extraction for forum pages.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// postSelectors are the structural selectors tried in order when
// locating posts. The first selector with at least one match wins and
// the chain stops, even if a later selector would match more elements.
var postSelectors = []string{
	".post",
	".message",
	".forum-post",
	".topic-post",
	`[class*="post"]`,
	`[class*="message"]`,
	".thread-item",
}

// Class patterns used by the fallback heuristic.
var (
	authorClassRe  = regexp.MustCompile(`author|user|poster`)
	dateClassRe    = regexp.MustCompile(`date|time|timestamp`)
	contentClassRe = regexp.MustCompile(`content|body|message`)
)

// Fragment is one candidate post sub-tree together with the name of the
// rule that located it.
type Fragment struct {
	Selection *goquery.Selection
	Source    string
}

// Locator finds the fragments of a page that look like individual forum
// posts.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns the post fragments of doc in document order. It tries
// the structural selectors first; when none match it falls back to a
// heuristic scan over generic containers.
func (l *Locator) Locate(doc *goquery.Document) []Fragment {
	for _, selector := range postSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}

		fragments := make([]Fragment, 0, sel.Length())
		sel.Each(func(_ int, s *goquery.Selection) {
			fragments = append(fragments, Fragment{Selection: s, Source: selector})
		})
		return fragments
	}

	return l.locateFallback(doc)
}

// locateFallback scans generic containers for elements with post-like
// structure: enough text plus at least two of four signals (author-ish
// child, date-ish child, content-ish child, more than ten words).
func (l *Locator) locateFallback(doc *goquery.Document) []Fragment {
	var fragments []Fragment
	doc.Find("div, article, section").Each(func(_ int, s *goquery.Selection) {
		if looksLikePost(s) {
			fragments = append(fragments, Fragment{Selection: s, Source: "fallback"})
		}
	})
	return fragments
}

func looksLikePost(s *goquery.Selection) bool {
	text := strings.TrimSpace(s.Text())

	// Must have substantial text content.
	if len(text) < 50 {
		return false
	}

	signals := 0
	if hasChildWithClass(s, authorClassRe) {
		signals++
	}
	if hasChildWithClass(s, dateClassRe) {
		signals++
	}
	if hasChildWithClass(s, contentClassRe) {
		signals++
	}
	if len(strings.Fields(text)) > 10 {
		signals++
	}

	return signals >= 2
}

// hasChildWithClass reports whether any descendant of s carries a class
// attribute matching re.
func hasChildWithClass(s *goquery.Selection, re *regexp.Regexp) bool {
	found := false
	s.Find("[class]").EachWithBreak(func(_ int, child *goquery.Selection) bool {
		if class, ok := child.Attr("class"); ok && re.MatchString(class) {
			found = true
			return false
		}
		return true
	})
	return found
}
