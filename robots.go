package forumscope

import "context"

// RobotsPolicy answers whether a URL may be fetched under the host's
// robots.txt rules.
type RobotsPolicy interface {
	// Allowed reports whether url may be fetched. Implementations fail
	// open: when robots.txt cannot be retrieved or parsed, the URL is
	// treated as allowed.
	Allowed(ctx context.Context, url string) bool
}
