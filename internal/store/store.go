// Package store is an in-memory entity store for documents and collections.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/google/uuid"
)

// Store holds documents and collections behind one lock. Documents and
// Collections expose the two halves. Every read returns a copy.
type Store struct {
	mu          sync.RWMutex
	docs        map[string]entity.Document
	collections map[string]entity.Collection
	colOrder    []string

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source for created documents.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		docs:        make(map[string]entity.Document),
		collections: make(map[string]entity.Collection),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Documents returns the document half of the store.
func (s *Store) Documents() *Documents {
	return &Documents{s: s}
}

// Collections returns the collection half of the store.
func (s *Store) Collections() *Collections {
	return &Collections{s: s}
}

func cloneDocument(d entity.Document) entity.Document {
	d.PinnedCollections = slices.Clone(d.PinnedCollections)
	return d
}

// Now returns the current time of the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}
