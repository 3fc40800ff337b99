package forumscope

// PageExtractor turns one forum page into structured post records.
type PageExtractor interface {
	// ExtractPage locates post fragments in the page HTML and extracts
	// a record from each. Fragments that cannot be extracted or whose
	// content is too short are dropped, never reported as errors; an
	// error is returned only when the page itself cannot be parsed.
	ExtractPage(html string, section string) ([]*PostRecord, error)
}
