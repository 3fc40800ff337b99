package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/forumscope/forumscope"
	"github.com/forumscope/forumscope/analyze"
)

// Run executes the report command: analyze a JSON export and print the
// business intelligence report.
func (c *ReportCmd) Run(deps *Dependencies) error {
	path := c.Data
	if path == "" {
		var err error
		path, err = latestExport(deps.Config.Output.Dir)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", forumscope.ErrorMessage(err))
			return err
		}
	}

	data, err := loadExport(path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", forumscope.ErrorMessage(err))
		return err
	}

	report := analyze.Report(data, time.Now())
	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(report), 0644); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)
		return nil
	}
	fmt.Fprint(deps.Stdout, report)
	return nil
}

// loadExport reads a JSON export grouped by section.
func loadExport(path string) (map[string][]*forumscope.PostRecord, error) {
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, forumscope.Errorf(forumscope.ENOTFOUND, "export %s does not exist", path)
	} else if err != nil {
		return nil, err
	}

	var data map[string][]*forumscope.PostRecord
	if err := json.Unmarshal(buf, &data); err != nil {
		return nil, forumscope.Errorf(forumscope.EUNPROCESSABLE, "cannot parse export %s: %v", path, err)
	}
	return data, nil
}

// latestExport finds the newest JSON export in dir, ignoring summary
// stats files.
func latestExport(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return "", forumscope.Errorf(forumscope.ENOTFOUND, "output directory %s does not exist", dir)
	} else if err != nil {
		return "", err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, "_summary.json") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", forumscope.Errorf(forumscope.ENOTFOUND, "no JSON exports in %s", dir)
	}

	// Export filenames embed the timestamp, so lexical order is
	// chronological.
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}
