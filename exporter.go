package forumscope

// Exporter writes extracted records to output files.
type Exporter interface {
	// WriteJSON writes all records to a single JSON file keyed by
	// section name and returns the file path.
	WriteJSON(data map[string][]*PostRecord, prefix string) (string, error)

	// WriteCSV writes one CSV file per section, with a header covering
	// the union of all record keys, and returns the file paths.
	WriteCSV(data map[string][]*PostRecord, prefix string) ([]string, error)

	// WriteText writes a plain-text artifact such as a report or
	// summary and returns the file path.
	WriteText(name string, text string) (string, error)
}
