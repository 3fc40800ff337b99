package slog

import (
	"log/slog"
	"time"

	"github.com/forumscope/forumscope"
)

// Ensure LoggingExtractor implements forumscope.PageExtractor.
var _ forumscope.PageExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PageExtractor with per-page logging.
type LoggingExtractor struct {
	next   forumscope.PageExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next forumscope.PageExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractPage delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractPage(html string, section string) (records []*forumscope.PostRecord, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract page",
			"section", section,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractPage(html, section)
}
