package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssargent/frota/pkg/storage"
)

type failingFactory struct{}

func (failingFactory) OpenJournal(string) (*storage.Journal, error) {
	return nil, errors.New("journal unavailable")
}

func TestContainer(t *testing.T) {
	c := NewContainer()
	assert.NotNil(t, c.GetJournalFactory())
	assert.NotNil(t, c.GetMetrics())
	assert.Same(t, c.GetMetrics(), c.GetMetrics())

	c.SetJournalFactory(failingFactory{})
	_, err := c.GetJournalFactory().OpenJournal("ignored")
	assert.EqualError(t, err, "journal unavailable")
}
