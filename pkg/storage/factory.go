package storage

// JournalFactory opens journals
type JournalFactory interface {
	OpenJournal(dir string) (*Journal, error)
}

// DefaultJournalFactory opens pebble journals on disk
type DefaultJournalFactory struct{}

// NewJournalFactory creates a new journal factory
func NewJournalFactory() JournalFactory {
	return &DefaultJournalFactory{}
}

// OpenJournal opens the journal in dir
func (f *DefaultJournalFactory) OpenJournal(dir string) (*Journal, error) {
	return OpenJournal(dir)
}
