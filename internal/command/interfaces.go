package command

import (
	"context"

	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/export"
	"github.com/Cyclone1070/folio/internal/importer"
	"github.com/Cyclone1070/folio/internal/router"
)

// The collaborators below are consumer-defined: the registry and the command
// definitions only need these methods, whatever backs them.

// AbilityChecker resolves the permissions the current user holds on an entity.
type AbilityChecker interface {
	Abilities(id string) entity.Abilities
}

// DocumentStore is the document half of the entity store.
type DocumentStore interface {
	Get(id string) (entity.Document, bool)
	// OrderedData returns all live documents, most recently updated first.
	OrderedData() []entity.Document

	Star(ctx context.Context, id string) error
	Unstar(ctx context.Context, id string) error
	// Pin pins to the given collection, or to home when collectionID is empty.
	Pin(ctx context.Context, id, collectionID string) error
	Unpin(ctx context.Context, id string) error
	Publish(ctx context.Context, id, collectionID string) error
	Unpublish(ctx context.Context, id string) error
	Subscribe(ctx context.Context, id string) error
	Unsubscribe(ctx context.Context, id string) error
	Download(ctx context.Context, id string, format entity.ExportFormat) (export.File, error)
	Duplicate(ctx context.Context, id string, opts entity.DuplicateOptions) (entity.Document, error)
	Templatize(ctx context.Context, id string) (entity.Document, error)
	Import(ctx context.Context, collectionID string, drafts []importer.Draft) ([]entity.Document, error)
}

// CollectionStore is the collection half of the entity store.
type CollectionStore interface {
	Get(id string) (entity.Collection, bool)
	All() []entity.Collection
	// NavigationNodes returns the root navigation node of every collection.
	NavigationNodes() []entity.NavigationNode
}

// Router navigates between locations.
type Router interface {
	Push(path string, state map[string]string)
	Location() router.Location
}

// Modal is a dialog opened by a command.
type Modal struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DialogHost opens and closes modals.
type DialogHost interface {
	OpenModal(m Modal)
	CloseAllModals()
}

// Notifier shows transient feedback to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
	// Loading shows a pending message and returns a function that dismisses it.
	Loading(message string) (dismiss func())
}

// MarkdownRenderer renders markdown for display at the given width.
type MarkdownRenderer interface {
	Render(markdown string, width int) (string, error)
}

// Rand is the randomness source used by commands that pick at random.
type Rand interface {
	IntN(n int) int
}
