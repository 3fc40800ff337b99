package mock

import (
	"context"

	"github.com/forumscope/forumscope"
)

var _ forumscope.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of forumscope.RecordService.
type RecordService struct {
	CreateRecordsFn      func(ctx context.Context, records []*forumscope.PostRecord) error
	FindRecordsFn        func(ctx context.Context, filter forumscope.RecordFilter) ([]*forumscope.PostRecord, error)
	CountBySectionFn     func(ctx context.Context, runID string) (map[string]int, error)
	DeleteRecordsByRunFn func(ctx context.Context, runID string) error
}

func (s *RecordService) CreateRecords(ctx context.Context, records []*forumscope.PostRecord) error {
	return s.CreateRecordsFn(ctx, records)
}

func (s *RecordService) FindRecords(ctx context.Context, filter forumscope.RecordFilter) ([]*forumscope.PostRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) CountBySection(ctx context.Context, runID string) (map[string]int, error) {
	return s.CountBySectionFn(ctx, runID)
}

func (s *RecordService) DeleteRecordsByRun(ctx context.Context, runID string) error {
	return s.DeleteRecordsByRunFn(ctx, runID)
}
