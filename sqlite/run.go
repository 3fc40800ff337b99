package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ forumscope.RunService = (*RunService)(nil)

// RunService implements forumscope.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun creates a new run.
func (s *RunService) CreateRun(ctx context.Context, run *forumscope.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	sections, err := json.Marshal(run.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, base_url, sections, started_at, finished_at, pages, records, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.BaseURL, string(sections), run.StartedAt.Format(time.RFC3339),
		formatFinishedAt(run.FinishedAt), run.Pages, run.Records, run.Failed)

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*forumscope.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, sections, started_at, finished_at, pages, records, failed
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, forumscope.Errorf(forumscope.ENOTFOUND, "run not found")
	}
	return run, err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter forumscope.RunFilter) ([]*forumscope.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, base_url, sections, started_at, finished_at, pages, records, failed FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*forumscope.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateRun updates counters and completion time on a run.
func (s *RunService) UpdateRun(ctx context.Context, id string, upd forumscope.RunUpdate) (*forumscope.Run, error) {
	run, err := s.FindRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Pages != nil {
		run.Pages = *upd.Pages
	}
	if upd.Records != nil {
		run.Records = *upd.Records
	}
	if upd.Failed != nil {
		run.Failed = *upd.Failed
	}
	if upd.FinishedAt != nil {
		run.FinishedAt = *upd.FinishedAt
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET pages = ?, records = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`, run.Pages, run.Records, run.Failed, formatFinishedAt(run.FinishedAt), id)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// DeleteRun permanently removes a run and all associated records.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return forumscope.Errorf(forumscope.ENOTFOUND, "run not found")
	}

	return nil
}

// formatFinishedAt renders a completion time for storage. The zero time
// is stored as an empty string so unfinished runs round-trip.
func formatFinishedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// scanRun scans a runs row using the given scan function.
func scanRun(scan func(dest ...any) error) (*forumscope.Run, error) {
	var run forumscope.Run
	var sections, startedAt, finishedAt string

	if err := scan(&run.ID, &run.BaseURL, &sections, &startedAt, &finishedAt,
		&run.Pages, &run.Records, &run.Failed); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sections), &run.Sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}

	var err error
	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	run.FinishedAt, err = parseOptionalRFC3339(finishedAt, "finished_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}
