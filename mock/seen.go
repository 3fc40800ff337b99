package mock

import "github.com/forumscope/forumscope"

var _ forumscope.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of forumscope.SeenFilter.
type SeenFilter struct {
	SeenFn func(key string) bool
	AddFn  func(key string)
}

func (f *SeenFilter) Seen(key string) bool {
	return f.SeenFn(key)
}

func (f *SeenFilter) Add(key string) {
	f.AddFn(key)
}
