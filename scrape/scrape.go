// Package scrape provides forum scraping orchestration. It coordinates
// fetching, post extraction, rate limiting, and cross-page
// deduplication for the configured forum sections.
package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/forumscope/forumscope"
	"golang.org/x/sync/errgroup"
)

// Section identifies one forum area to scrape.
type Section struct {
	Name string
	Path string
}

// Scraper orchestrates the scraping of forum sections.
type Scraper struct {
	Fetcher   forumscope.Fetcher
	Extractor forumscope.PageExtractor

	// Robots, when set, is consulted once per section; disallowed
	// sections are skipped.
	Robots forumscope.RobotsPolicy

	// Seen, when set, deduplicates posts across pages. Sticky threads
	// reappear on every page of a section.
	Seen forumscope.SeenFilter

	// Limiter, when set, throttles requests per host.
	Limiter forumscope.DomainLimiter

	// RetryDelays are the waits between fetch attempts.
	// Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration

	// Concurrency limits how many sections scrape at once.
	Concurrency int

	// MaxPostsPerPage is the expected full-page size; a page yielding
	// fewer records is treated as the section's last page.
	MaxPostsPerPage int
}

// SectionResult holds the outcome of scraping one section.
type SectionResult struct {
	Records []*forumscope.PostRecord
	Pages   int
	Failed  int
}

// Result holds the outcome of a full scrape.
type Result struct {
	Records map[string][]*forumscope.PostRecord
	Pages   int
	Failed  int
	Skipped []string // sections disallowed by robots.txt
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressSectionStarted ProgressType = iota
	ProgressPageCompleted
	ProgressPageFailed
	ProgressSectionFinished
	ProgressFinished
)

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type    ProgressType
	Section string
	Page    int
	URL     string
	Records int
	Error   error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// ScrapeSection pages through one section, extracting post records
// until a page yields nothing, a short page signals the end, or
// maxPages is reached. Failed pages are counted and skipped, never
// fatal.
func (s *Scraper) ScrapeSection(ctx context.Context, baseURL string, sec Section, maxPages int, progress ProgressFunc) (*SectionResult, error) {
	sectionURL, err := joinURL(baseURL, sec.Path)
	if err != nil {
		return nil, forumscope.Errorf(forumscope.EINVALID, "invalid section URL: %v", err)
	}

	if s.Robots != nil && !s.Robots.Allowed(ctx, sectionURL) {
		return nil, forumscope.Errorf(forumscope.EUNAVAILABLE, "section %q disallowed by robots.txt", sec.Name)
	}

	host, err := urlHost(sectionURL)
	if err != nil {
		return nil, forumscope.Errorf(forumscope.EINVALID, "invalid section URL: %v", err)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressSectionStarted, Section: sec.Name})
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	result := &SectionResult{}
	for page := 1; page <= maxPages; page++ {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		pageURL := sectionURL + "?page=" + strconv.Itoa(page)

		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, host); err != nil {
				return result, err
			}
		}

		html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, nil, delays)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressPageFailed, Section: sec.Name, Page: page, URL: pageURL, Error: err})
			}
			continue
		}

		records, err := s.Extractor.ExtractPage(html, sec.Name)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressPageFailed, Section: sec.Name, Page: page, URL: pageURL, Error: err})
			}
			continue
		}

		// An empty page means we paged past the section's end.
		if len(records) == 0 {
			break
		}

		kept := s.appendNew(result, records)
		result.Pages++

		if progress != nil {
			progress(ProgressEvent{Type: ProgressPageCompleted, Section: sec.Name, Page: page, URL: pageURL, Records: kept})
		}

		// A short page is the last page.
		if s.MaxPostsPerPage > 0 && len(records) < s.MaxPostsPerPage {
			break
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressSectionFinished, Section: sec.Name, Records: len(result.Records)})
	}
	return result, nil
}

// appendNew appends records not seen before and returns how many were
// kept.
func (s *Scraper) appendNew(result *SectionResult, records []*forumscope.PostRecord) int {
	kept := 0
	for _, rec := range records {
		if s.Seen != nil {
			key := dedupKey(rec)
			if s.Seen.Seen(key) {
				continue
			}
			s.Seen.Add(key)
		}
		result.Records = append(result.Records, rec)
		kept++
	}
	return kept
}

// ScrapeAll scrapes every section, up to Concurrency sections at a
// time. Section order is preserved in the result regardless of
// completion order. Sections disallowed by robots.txt are recorded as
// skipped; other section errors abort the scrape.
func (s *Scraper) ScrapeAll(ctx context.Context, baseURL string, sections []Section, maxPages int, progress ProgressFunc) (*Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]*SectionResult, len(sections))
	skipped := make([]bool, len(sections))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, sec := range sections {
		g.Go(func() error {
			res, err := s.ScrapeSection(gctx, baseURL, sec, maxPages, progress)
			if err != nil {
				if forumscope.ErrorCode(err) == forumscope.EUNAVAILABLE {
					skipped[i] = true
					return nil
				}
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Records: make(map[string][]*forumscope.PostRecord, len(sections))}
	for i, sec := range sections {
		if skipped[i] {
			result.Skipped = append(result.Skipped, sec.Name)
			continue
		}
		result.Records[sec.Name] = results[i].Records
		result.Pages += results[i].Pages
		result.Failed += results[i].Failed
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}
	return result, nil
}

// dedupKey identifies a post across pages: the post ID when present,
// otherwise a hash of the content.
func dedupKey(rec *forumscope.PostRecord) string {
	if rec.PostID != "" {
		return rec.Section + "/" + rec.PostID
	}
	return rec.Section + "/" + fmt.Sprintf("%016x", xxhash.Sum64String(rec.Content))
}

func joinURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	return u.ResolveReference(ref).String(), nil
}

func urlHost(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}
