package mock

import "github.com/forumscope/forumscope"

var _ forumscope.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of forumscope.Exporter.
type Exporter struct {
	WriteJSONFn func(data map[string][]*forumscope.PostRecord, prefix string) (string, error)
	WriteCSVFn  func(data map[string][]*forumscope.PostRecord, prefix string) ([]string, error)
	WriteTextFn func(name string, text string) (string, error)
}

func (e *Exporter) WriteJSON(data map[string][]*forumscope.PostRecord, prefix string) (string, error) {
	return e.WriteJSONFn(data, prefix)
}

func (e *Exporter) WriteCSV(data map[string][]*forumscope.PostRecord, prefix string) ([]string, error) {
	return e.WriteCSVFn(data, prefix)
}

func (e *Exporter) WriteText(name string, text string) (string, error) {
	return e.WriteTextFn(name, text)
}
