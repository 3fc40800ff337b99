package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/mock"
	forumslog "github.com/forumscope/forumscope/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordService_CreateRecords(t *testing.T) {
	t.Parallel()

	t.Run("logs batch size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			CreateRecordsFn: func(_ context.Context, records []*forumscope.PostRecord) error {
				return nil
			},
		}

		svc := forumslog.NewLoggingRecordService(inner, logger)
		err := svc.CreateRecords(context.Background(), []*forumscope.PostRecord{
			{Section: "general_discussion", Content: "a perfectly reasonable forum post"},
			{Section: "general_discussion", Content: "another perfectly reasonable forum post"},
		})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "create records")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs storage errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecordService{
			CreateRecordsFn: func(_ context.Context, _ []*forumscope.PostRecord) error {
				return forumscope.Errorf(forumscope.EINTERNAL, "database is locked")
			},
		}

		svc := forumslog.NewLoggingRecordService(inner, logger)
		err := svc.CreateRecords(context.Background(), nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "database is locked")
	})
}

func TestLoggingRecordService_FindRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.RecordService{
		FindRecordsFn: func(_ context.Context, _ forumscope.RecordFilter) ([]*forumscope.PostRecord, error) {
			return []*forumscope.PostRecord{{Content: "a perfectly reasonable forum post"}}, nil
		},
	}

	svc := forumslog.NewLoggingRecordService(inner, logger)
	records, err := svc.FindRecords(context.Background(), forumscope.RecordFilter{})

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Contains(t, buf.String(), "find records")
	assert.Contains(t, buf.String(), "count=1")
}
