package forumscope

import (
	"context"
	"time"
)

// Run records one scrape execution: which sections were visited and
// what came back.
type Run struct {
	ID         string    `json:"id"`
	BaseURL    string    `json:"baseUrl"`
	Sections   []string  `json:"sections"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"` // zero until the run finishes
	Pages      int       `json:"pages"`
	Records    int       `json:"records"`
	Failed     int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.BaseURL == "" {
		return Errorf(EINVALID, "run base URL required")
	}
	if !ValidateURL(r.BaseURL) {
		return Errorf(EINVALID, "run base URL %q is not a valid URL", r.BaseURL)
	}
	if len(r.Sections) == 0 {
		return Errorf(EINVALID, "run requires at least one section")
	}
	return nil
}

// RunService represents a service for managing scrape runs.
type RunService interface {
	// CreateRun creates a new run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// UpdateRun updates counters and completion time on a run.
	// Returns ENOTFOUND if the run does not exist.
	UpdateRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// DeleteRun permanently removes a run and all associated records.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunUpdate represents fields that can be updated on a run.
type RunUpdate struct {
	Pages      *int       `json:"pages"`
	Records    *int       `json:"records"`
	Failed     *int       `json:"failed"`
	FinishedAt *time.Time `json:"finishedAt"`
}
