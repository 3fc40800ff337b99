package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/forumscope/forumscope"
	"github.com/temoto/robotstxt"
)

// Ensure RobotsPolicy implements forumscope.RobotsPolicy at compile time.
var _ forumscope.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy checks URLs against each host's robots.txt file. The
// file is fetched once per host and cached for the lifetime of the
// policy. The policy fails open: when robots.txt cannot be fetched or
// parsed, every URL on that host is allowed.
type RobotsPolicy struct {
	client    *http.Client
	userAgent string

	mu    sync.Mutex
	cache map[string]*robotstxt.Group // key is scheme://host
}

// RobotsOption configures a RobotsPolicy.
type RobotsOption func(*RobotsPolicy)

// WithRobotsUserAgent sets the agent name matched against robots.txt
// groups. Defaults to DefaultUserAgent.
func WithRobotsUserAgent(ua string) RobotsOption {
	return func(p *RobotsPolicy) {
		p.userAgent = ua
	}
}

// NewRobotsPolicy creates a RobotsPolicy with an empty cache.
func NewRobotsPolicy(opts ...RobotsOption) *RobotsPolicy {
	p := &RobotsPolicy{
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		userAgent: DefaultUserAgent,
		cache:     make(map[string]*robotstxt.Group),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Allowed reports whether the URL may be fetched according to its
// host's robots.txt. Malformed URLs and unreachable robots.txt files
// are allowed.
func (p *RobotsPolicy) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	group := p.group(ctx, u.Scheme+"://"+u.Host)
	if group == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return group.Test(path)
}

// group returns the cached robots.txt group for the origin, fetching
// it on first use. A nil return means no restrictions apply.
func (p *RobotsPolicy) group(ctx context.Context, origin string) *robotstxt.Group {
	p.mu.Lock()
	defer p.mu.Unlock()

	if group, ok := p.cache[origin]; ok {
		return group
	}

	group := p.fetchGroup(ctx, origin)
	p.cache[origin] = group
	return group
}

func (p *RobotsPolicy) fetchGroup(ctx context.Context, origin string) *robotstxt.Group {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil
	}
	return robots.FindGroup(p.userAgent)
}
