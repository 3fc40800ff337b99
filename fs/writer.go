// Package fs provides file-based export of scraped records.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/forumscope/forumscope"
)

// filenameTimestamp is the layout for timestamps embedded in export
// filenames.
const filenameTimestamp = "20060102_150405"

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	underscoreRuns       = regexp.MustCompile(`_+`)
)

// SanitizeFilename makes a string safe to use as a filename: invalid
// characters become underscores, runs of underscores collapse to one,
// and the result is capped at 200 characters.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) > 200 {
		name = name[:200]
	}
	return name
}

// Ensure Writer implements forumscope.Exporter at compile time.
var _ forumscope.Exporter = (*Writer)(nil)

// Writer exports records as JSON and CSV files in a base directory.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithNow overrides the clock used for timestamped filenames.
func WithNow(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a Writer that writes to the given base directory.
// The directory is created on first write.
func NewWriter(baseDir string, opts ...Option) *Writer {
	w := &Writer{
		baseDir: baseDir,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteJSON writes all records to a single JSON file keyed by section
// name and returns the file path.
func (w *Writer) WriteJSON(data map[string][]*forumscope.PostRecord, prefix string) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.json", SanitizeFilename(prefix), w.now().Format(filenameTimestamp))
	path := filepath.Join(w.baseDir, name)

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCSV writes one CSV file per section. The header is the sorted
// union of all field names present in the section's records; fields
// missing from a record are left empty. Returns the file paths.
func (w *Writer) WriteCSV(data map[string][]*forumscope.PostRecord, prefix string) ([]string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return nil, err
	}

	sections := make([]string, 0, len(data))
	for section := range data {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	stamp := w.now().Format(filenameTimestamp)

	var paths []string
	for _, section := range sections {
		records := data[section]
		if len(records) == 0 {
			continue
		}

		name := fmt.Sprintf("%s_%s_%s.csv", SanitizeFilename(prefix), SanitizeFilename(section), stamp)
		path := filepath.Join(w.baseDir, name)

		if err := writeSectionCSV(path, records); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// WriteText writes a plain-text artifact and returns the file path.
func (w *Writer) WriteText(name string, text string) (string, error) {
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, SanitizeFilename(name))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Backup copies the base directory to a timestamped sibling directory
// and returns its path. Returns ENOTFOUND if there is nothing to back
// up yet.
func (w *Writer) Backup() (string, error) {
	info, err := os.Stat(w.baseDir)
	if os.IsNotExist(err) {
		return "", forumscope.Errorf(forumscope.ENOTFOUND, "output directory %s does not exist", w.baseDir)
	}
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", forumscope.Errorf(forumscope.EINVALID, "output path %s is not a directory", w.baseDir)
	}

	backupDir := fmt.Sprintf("%s_backup_%s", strings.TrimRight(w.baseDir, string(filepath.Separator)), w.now().Format(filenameTimestamp))
	if err := copyDir(w.baseDir, backupDir); err != nil {
		return "", err
	}
	return backupDir, nil
}

// writeSectionCSV writes one section's records to a CSV file.
func writeSectionCSV(path string, records []*forumscope.PostRecord) error {
	rows := make([]map[string]any, 0, len(records))
	keySet := make(map[string]bool)
	for _, r := range records {
		row, err := recordToMap(r)
		if err != nil {
			return err
		}
		for k := range row {
			keySet[k] = true
		}
		rows = append(rows, row)
	}

	header := make([]string, 0, len(keySet))
	for k := range keySet {
		header = append(header, k)
	}
	sort.Strings(header)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, k := range header {
			cells[i] = cellValue(row[k])
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return f.Close()
}

// recordToMap flattens a record to its JSON field names and values.
func recordToMap(r *forumscope.PostRecord) (map[string]any, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// cellValue renders a JSON value as a CSV cell. Scalars render
// directly; lists and objects render as compact JSON.
func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// copyDir recursively copies src to dst.
func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
