package forumscope

// SeenFilter tracks post identities across pages so sticky threads that
// reappear on later pages are extracted only once.
type SeenFilter interface {
	// Seen returns true if the key might have been added before.
	// Probabilistic implementations may report false positives but
	// never false negatives.
	Seen(key string) bool

	// Add marks the key as seen.
	Add(key string)
}
