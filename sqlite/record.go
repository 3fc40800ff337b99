package sqlite

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/forumscope/forumscope"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ forumscope.RecordService = (*RecordService)(nil)

// RecordService implements forumscope.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateRecords persists a batch of records in a single transaction.
// Any record failing validation aborts the whole batch.
func (s *RecordService) CreateRecords(ctx context.Context, records []*forumscope.PostRecord) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range records {
		r.ID = uuid.New().String()
		if r.ExtractedAt.IsZero() {
			r.ExtractedAt = time.Now().UTC()
		}
		r.ContentHash = hashContent(r.Content)

		tags, links, sentiments, mentions, keywords, err := marshalRecordLists(r)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (
				id, run_id, section, post_id, author, timestamp, title, content, content_hash,
				replies_count, views_count, is_question, is_answer,
				tags, links, sentiment_indicators, resource_mentions, keywords, extracted_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, r.ID, r.RunID, r.Section, r.PostID, r.Author, r.Timestamp, r.Title, r.Content, r.ContentHash,
			r.RepliesCount, r.ViewsCount, r.IsQuestion, r.IsAnswer,
			tags, links, sentiments, mentions, keywords,
			r.ExtractedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRecords retrieves records matching the filter.
func (s *RecordService) FindRecords(ctx context.Context, filter forumscope.RecordFilter) ([]*forumscope.PostRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, run_id, section, post_id, author, timestamp, title, content, content_hash,
		replies_count, views_count, is_question, is_answer,
		tags, links, sentiment_indicators, resource_mentions, keywords, extracted_at
		FROM records WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Section != nil {
		query.WriteString(" AND section = ?")
		args = append(args, *filter.Section)
	}
	if filter.IsQuestion != nil {
		query.WriteString(" AND is_question = ?")
		args = append(args, *filter.IsQuestion)
	}

	switch filter.SortBy {
	case forumscope.SortByReplies:
		query.WriteString(" ORDER BY replies_count DESC")
	default:
		query.WriteString(" ORDER BY extracted_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*forumscope.PostRecord
	for rows.Next() {
		var r forumscope.PostRecord
		var tags, links, sentiments, mentions, keywords, extractedAt string

		if err := rows.Scan(&r.ID, &r.RunID, &r.Section, &r.PostID, &r.Author, &r.Timestamp,
			&r.Title, &r.Content, &r.ContentHash, &r.RepliesCount, &r.ViewsCount,
			&r.IsQuestion, &r.IsAnswer,
			&tags, &links, &sentiments, &mentions, &keywords, &extractedAt); err != nil {
			return nil, err
		}

		if err := unmarshalRecordLists(&r, tags, links, sentiments, mentions, keywords); err != nil {
			return nil, err
		}

		r.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
		if err != nil {
			return nil, err
		}

		records = append(records, &r)
	}

	return records, rows.Err()
}

// CountBySection returns record counts grouped by section, scoped to a
// run when runID is non-empty.
func (s *RecordService) CountBySection(ctx context.Context, runID string) (map[string]int, error) {
	query := "SELECT section, COUNT(*) FROM records"
	var args []any
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}
	query += " GROUP BY section"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var section string
		var n int
		if err := rows.Scan(&section, &n); err != nil {
			return nil, err
		}
		counts[section] = n
	}
	return counts, rows.Err()
}

// DeleteRecordsByRun removes all records for a run.
func (s *RecordService) DeleteRecordsByRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE run_id = ?", runID)
	return err
}

// marshalRecordLists serializes the record's list fields as JSON for
// storage. Nil slices are stored as empty arrays.
func marshalRecordLists(r *forumscope.PostRecord) (tags, links, sentiments, mentions, keywords string, err error) {
	marshal := func(v any) string {
		if err != nil {
			return ""
		}
		var b []byte
		b, err = json.Marshal(v)
		return string(b)
	}

	tags = marshal(orEmpty(r.Tags))
	if r.Links == nil {
		links = marshal([]forumscope.Link{})
	} else {
		links = marshal(r.Links)
	}
	sentiments = marshal(orEmpty(r.SentimentIndicators))
	mentions = marshal(orEmpty(r.ResourceMentions))
	keywords = marshal(orEmpty(r.Keywords))

	if err != nil {
		err = fmt.Errorf("failed to marshal record lists: %w", err)
	}
	return tags, links, sentiments, mentions, keywords, err
}

func unmarshalRecordLists(r *forumscope.PostRecord, tags, links, sentiments, mentions, keywords string) error {
	for _, field := range []struct {
		raw  string
		dest any
		name string
	}{
		{tags, &r.Tags, "tags"},
		{links, &r.Links, "links"},
		{sentiments, &r.SentimentIndicators, "sentiment_indicators"},
		{mentions, &r.ResourceMentions, "resource_mentions"},
		{keywords, &r.Keywords, "keywords"},
	} {
		if err := json.Unmarshal([]byte(field.raw), field.dest); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", field.name, err)
		}
	}
	return nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
