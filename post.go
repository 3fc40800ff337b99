package forumscope

import (
	"context"
	"strings"
	"time"
)

// Extraction thresholds. Shorter values are treated as selector noise
// rather than post content.
const (
	// MinContentLength is the minimum length of an extracted content
	// field. Shorter matches are rejected and the next selector tried.
	MinContentLength = 10

	// MinRecordLength is the minimum content length for a record to be
	// kept at all.
	MinRecordLength = 20
)

// Link types assigned by ClassifyLink.
const (
	LinkProduct  = "product"
	LinkDocument = "document"
	LinkVideo    = "video"
	LinkEmail    = "email"
	LinkExternal = "external"
)

// Link is a hyperlink harvested from a post body, classified by
// destination.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// PostRecord is a single forum post reduced to structured fields.
// Authors are anonymized at extraction time; raw usernames are never
// stored. The JSON keys are the exported file format and must stay
// stable.
type PostRecord struct {
	ID    string `json:"id,omitempty"`
	RunID string `json:"run_id,omitempty"`

	Section     string    `json:"section"`
	ExtractedAt time.Time `json:"extracted_at"`

	PostID    string `json:"post_id"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
	Content   string `json:"content"`

	RepliesCount int `json:"replies_count"`
	ViewsCount   int `json:"views_count"`

	Tags  []string `json:"tags"`
	Links []Link   `json:"links"`

	IsQuestion          bool     `json:"is_question"`
	IsAnswer            bool     `json:"is_answer"`
	SentimentIndicators []string `json:"sentiment_indicators"`
	ResourceMentions    []string `json:"resource_mentions"`
	Keywords            []string `json:"keywords"`

	ContentHash string `json:"content_hash,omitempty"`
}

// Validate returns an error if the record contains invalid fields.
func (r *PostRecord) Validate() error {
	if r.Section == "" {
		return Errorf(EINVALID, "post record section required")
	}
	if len(strings.TrimSpace(r.Content)) <= MinRecordLength {
		return Errorf(EUNPROCESSABLE, "post content too short to keep")
	}
	return nil
}

// RecordService represents a service for managing post records.
type RecordService interface {
	// CreateRecords persists a batch of records. Records failing
	// validation abort the batch.
	CreateRecords(ctx context.Context, records []*PostRecord) error

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*PostRecord, error)

	// CountBySection returns record counts grouped by section, scoped
	// to a run when runID is non-empty.
	CountBySection(ctx context.Context, runID string) (map[string]int, error)

	// DeleteRecordsByRun removes all records for a run.
	DeleteRecordsByRun(ctx context.Context, runID string) error
}

// SortOrder represents the sort order for record queries.
type SortOrder string

// SortOrder constants for RecordFilter.
const (
	SortByExtractedAt SortOrder = "extracted_at"
	SortByReplies     SortOrder = "replies_count"
)

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	RunID      *string `json:"runId"`
	Section    *string `json:"section"`
	IsQuestion *bool   `json:"isQuestion"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// GroupBySection buckets records by their section, preserving record
// order within each bucket.
func GroupBySection(records []*PostRecord) map[string][]*PostRecord {
	grouped := make(map[string][]*PostRecord)
	for _, r := range records {
		grouped[r.Section] = append(grouped[r.Section], r)
	}
	return grouped
}
