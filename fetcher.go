package forumscope

import "context"

// Fetcher retrieves HTML page bodies from URLs.
type Fetcher interface {
	// Fetch retrieves the page body at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases connection resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
