package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/analyze"
	"github.com/forumscope/forumscope/bloom"
	"github.com/forumscope/forumscope/config"
	"github.com/forumscope/forumscope/fs"
	"github.com/forumscope/forumscope/goquery"
	forumhttp "github.com/forumscope/forumscope/http"
	"github.com/forumscope/forumscope/scrape"
	forumslog "github.com/forumscope/forumscope/slog"
)

// exportPrefix names the JSON/CSV export files.
const exportPrefix = "forum_data"

// Run executes the scrape command: fetch the configured sections,
// archive the records, and export them.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg := deps.Config

	sections, err := selectSections(cfg, c.Sections)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", forumscope.ErrorMessage(err))
		return err
	}

	maxPages := cfg.Scrape.MaxPagesPerSection
	if c.MaxPages > 0 {
		maxPages = c.MaxPages
	}
	outputDir := cfg.Output.Dir
	if c.OutputDir != "" {
		outputDir = c.OutputDir
	}
	concurrency := cfg.Scrape.Concurrency
	if c.Concurrency > 0 {
		concurrency = c.Concurrency
	}

	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "Would scrape %s (up to %d pages per section):\n", cfg.BaseURL, maxPages)
		for _, sec := range sections {
			fmt.Fprintf(deps.Stdout, "  %s (%s)\n", sec.Name, sec.Path)
		}
		return nil
	}

	writer := fs.NewWriter(outputDir)
	if c.Backup || cfg.Output.BackupEnabled {
		backupDir, err := writer.Backup()
		if err != nil && forumscope.ErrorCode(err) != forumscope.ENOTFOUND {
			return err
		}
		if backupDir != "" {
			fmt.Fprintf(deps.Stdout, "Backed up output to %s\n", backupDir)
		}
	}

	scraper, closeFetcher := buildScraper(deps, concurrency)
	defer closeFetcher()

	run := &forumscope.Run{
		BaseURL:  cfg.BaseURL,
		Sections: sectionNames(sections),
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		return err
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressSectionStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %s...\n", event.Section)
		case scrape.ProgressPageFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case scrape.ProgressSectionFinished:
			fmt.Fprintf(deps.Stdout, "  %s: %d posts\n", event.Section, event.Records)
		}
	}

	result, err := scraper.ScrapeAll(deps.Ctx, cfg.BaseURL, sections, maxPages, progress)
	if err != nil {
		return err
	}
	for _, name := range result.Skipped {
		fmt.Fprintf(deps.Stderr, "  skipped %s: disallowed by robots.txt\n", name)
	}

	// Archive to the database before exporting, so a failed export can
	// be re-run from the archive.
	total := 0
	for _, records := range result.Records {
		for _, rec := range records {
			rec.RunID = run.ID
		}
		if len(records) > 0 {
			if err := deps.Records.CreateRecords(deps.Ctx, records); err != nil {
				return err
			}
		}
		total += len(records)
	}

	finished := time.Now().UTC()
	if _, err := deps.Runs.UpdateRun(deps.Ctx, run.ID, forumscope.RunUpdate{
		Pages:      &result.Pages,
		Records:    &total,
		Failed:     &result.Failed,
		FinishedAt: &finished,
	}); err != nil {
		return err
	}

	if err := export(deps, writer, cfg, result.Records); err != nil {
		return err
	}

	validation := analyze.ValidateRecords(result.Records)
	for _, issue := range validation.Issues {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", issue)
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d posts from %d sections (%d pages, %d failed)\n",
		total, len(result.Records), result.Pages, result.Failed)
	return nil
}

// buildScraper wires the scraper from the configuration. The returned
// func closes the fetcher.
func buildScraper(deps *Dependencies, concurrency int) (*scrape.Scraper, func()) {
	cfg := deps.Config

	var fetcherOpts []forumhttp.Option
	if cfg.UserAgent != "" {
		fetcherOpts = append(fetcherOpts, forumhttp.WithUserAgent(cfg.UserAgent))
	}
	fetcher := forumhttp.NewFetcher(fetcherOpts...)

	var robots forumscope.RobotsPolicy
	if cfg.RespectRobots {
		var robotsOpts []forumhttp.RobotsOption
		if cfg.UserAgent != "" {
			robotsOpts = append(robotsOpts, forumhttp.WithRobotsUserAgent(cfg.UserAgent))
		}
		robots = forumhttp.NewRobotsPolicy(robotsOpts...)
	}

	// One request per RequestDelay per host.
	rps := 1.0
	if delay := cfg.Scrape.RequestDelay.Std(); delay > 0 {
		rps = 1.0 / delay.Seconds()
	}

	expected := uint(len(cfg.Sections) * cfg.Scrape.MaxPagesPerSection * cfg.Scrape.MaxPostsPerPage)
	if expected == 0 {
		expected = 10000
	}

	scraper := &scrape.Scraper{
		Fetcher:         forumslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor:       forumslog.NewLoggingExtractor(goquery.NewExtractor(), deps.Logger),
		Robots:          robots,
		Seen:            bloom.NewFilter(expected, 0.01),
		Limiter:         scrape.NewDomainLimiter(rps),
		RetryDelays:     cfg.Scrape.RetryDelays(),
		Concurrency:     concurrency,
		MaxPostsPerPage: cfg.Scrape.MaxPostsPerPage,
	}
	return scraper, func() { _ = fetcher.Close() }
}

// selectSections resolves the --sections flag against the configured
// sections.
func selectSections(cfg *config.Config, names []string) ([]scrape.Section, error) {
	configured := make([]scrape.Section, len(cfg.Sections))
	byName := make(map[string]scrape.Section, len(cfg.Sections))
	for i, s := range cfg.Sections {
		sec := scrape.Section{Name: s.Name, Path: s.Path}
		configured[i] = sec
		byName[s.Name] = sec
	}

	if len(names) == 0 {
		return configured, nil
	}

	selected := make([]scrape.Section, 0, len(names))
	for _, name := range names {
		sec, ok := byName[name]
		if !ok {
			return nil, forumscope.Errorf(forumscope.ENOTFOUND, "unknown section %q (configured: %s)",
				name, strings.Join(cfg.SectionNames(), ", "))
		}
		selected = append(selected, sec)
	}
	return selected, nil
}

func sectionNames(sections []scrape.Section) []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}

// export writes the configured output formats plus a summary stats
// file.
func export(deps *Dependencies, writer *fs.Writer, cfg *config.Config, data map[string][]*forumscope.PostRecord) error {
	for _, format := range cfg.Output.Formats {
		switch format {
		case "json":
			path, err := writer.WriteJSON(data, exportPrefix)
			if err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
		case "csv":
			paths, err := writer.WriteCSV(data, exportPrefix)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
			}
		}
	}

	stats, err := json.MarshalIndent(analyze.Summarize(data), "", "  ")
	if err != nil {
		return err
	}
	path, err := writer.WriteText(exportPrefix+"_summary.json", string(stats))
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
