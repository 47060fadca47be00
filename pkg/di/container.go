// Package di provides dependency injection container
package di

import (
	"github.com/ssargent/frota/pkg/metrics"
	"github.com/ssargent/frota/pkg/storage"
)

// Container holds all the dependencies for the application
type Container struct {
	journalFactory storage.JournalFactory
	metrics        *metrics.Metrics
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		journalFactory: storage.NewJournalFactory(),
		metrics:        metrics.New(),
	}
}

// GetJournalFactory returns the journal factory
func (c *Container) GetJournalFactory() storage.JournalFactory {
	return c.journalFactory
}

// SetJournalFactory allows overriding the journal factory (for testing)
func (c *Container) SetJournalFactory(factory storage.JournalFactory) {
	c.journalFactory = factory
}

// GetMetrics returns the metrics shared by every command
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}
