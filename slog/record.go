package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/forumscope/forumscope"
)

// Ensure LoggingRecordService implements forumscope.RecordService.
var _ forumscope.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with per-call logging.
type LoggingRecordService struct {
	next   forumscope.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next forumscope.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// CreateRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CreateRecords(ctx context.Context, records []*forumscope.PostRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecords(ctx, records)
}

// FindRecords delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter forumscope.RecordFilter) (records []*forumscope.PostRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

// CountBySection delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CountBySection(ctx context.Context, runID string) (counts map[string]int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("count records by section",
			"sections", len(counts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CountBySection(ctx, runID)
}

// DeleteRecordsByRun delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) DeleteRecordsByRun(ctx context.Context, runID string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete records by run",
			"run_id", runID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRecordsByRun(ctx, runID)
}
