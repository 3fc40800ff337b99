package mock

import (
	"context"

	"github.com/forumscope/forumscope"
)

var _ forumscope.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of forumscope.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) bool {
	return p.AllowedFn(ctx, url)
}
