package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/mock"
	forumslog "github.com/forumscope/forumscope/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("logs record count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageExtractor{
			ExtractPageFn: func(html string, section string) ([]*forumscope.PostRecord, error) {
				return []*forumscope.PostRecord{
					{Section: section, Content: "a perfectly reasonable forum post"},
				}, nil
			},
		}

		extractor := forumslog.NewLoggingExtractor(inner, logger)
		records, err := extractor.ExtractPage("<html></html>", "general-discussion")

		require.NoError(t, err)
		assert.Len(t, records, 1)
		output := buf.String()
		assert.Contains(t, output, "extract page")
		assert.Contains(t, output, "section=general-discussion")
		assert.Contains(t, output, "records=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs extraction errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageExtractor{
			ExtractPageFn: func(html string, section string) ([]*forumscope.PostRecord, error) {
				return nil, forumscope.Errorf(forumscope.EINVALID, "cannot parse page")
			},
		}

		extractor := forumslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.ExtractPage("not html", "general-discussion")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "cannot parse page")
	})
}
