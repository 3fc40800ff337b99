package mock

import "github.com/forumscope/forumscope"

var _ forumscope.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of forumscope.PageExtractor.
type PageExtractor struct {
	ExtractPageFn func(html string, section string) ([]*forumscope.PostRecord, error)
}

func (e *PageExtractor) ExtractPage(html string, section string) ([]*forumscope.PostRecord, error) {
	return e.ExtractPageFn(html, section)
}
