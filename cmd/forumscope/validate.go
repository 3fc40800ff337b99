package main

import (
	"fmt"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/analyze"
)

// Run executes the validate command: check extraction quality of the
// most recent JSON export.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	dir := deps.Config.Output.Dir
	if c.OutputDir != "" {
		dir = c.OutputDir
	}

	path, err := latestExport(dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", forumscope.ErrorMessage(err))
		return err
	}

	data, err := loadExport(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", forumscope.ErrorMessage(err))
		return err
	}

	validation := analyze.ValidateRecords(data)
	fmt.Fprintf(deps.Stdout, "Validating %s\n", path)
	fmt.Fprintf(deps.Stdout, "  total posts:          %d\n", validation.Stats.TotalPosts)
	fmt.Fprintf(deps.Stdout, "  posts with content:   %d\n", validation.Stats.PostsWithContent)
	fmt.Fprintf(deps.Stdout, "  posts with timestamp: %d\n", validation.Stats.PostsWithTimestamp)
	fmt.Fprintf(deps.Stdout, "  posts with author:    %d\n", validation.Stats.PostsWithAuthor)
	for _, issue := range validation.Issues {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", issue)
	}

	if !validation.Valid {
		return forumscope.Errorf(forumscope.EUNPROCESSABLE, "export failed validation")
	}
	fmt.Fprintln(deps.Stdout, "OK")
	return nil
}
