package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/export"
	"github.com/Cyclone1070/folio/internal/importer"
)

// Documents is the document view of a Store.
type Documents struct {
	s *Store
}

// Create inserts a document. An empty id is generated and zero timestamps are
// set to now.
func (d *Documents) Create(doc entity.Document) (entity.Document, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if doc.ID == "" {
		doc.ID = d.s.newID()
	}
	if _, ok := d.s.docs[doc.ID]; ok {
		return entity.Document{}, fmt.Errorf("create document %s: %w", doc.ID, ErrDuplicateID)
	}
	if doc.CollectionID != "" {
		if _, ok := d.s.collections[doc.CollectionID]; !ok {
			return entity.Document{}, fmt.Errorf("create document %s: %w", doc.ID, ErrCollectionNotFound)
		}
	}
	now := d.s.now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = doc.CreatedAt
	}
	doc = cloneDocument(doc)
	d.s.docs[doc.ID] = doc
	return cloneDocument(doc), nil
}

// Get returns a copy of the document.
func (d *Documents) Get(id string) (entity.Document, bool) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	doc, ok := d.s.docs[id]
	if !ok {
		return entity.Document{}, false
	}
	return cloneDocument(doc), true
}

// OrderedData returns every document that is not deleted, most recently
// updated first.
func (d *Documents) OrderedData() []entity.Document {
	d.s.mu.RLock()
	out := make([]entity.Document, 0, len(d.s.docs))
	for _, doc := range d.s.docs {
		if !doc.IsDeleted {
			out = append(out, cloneDocument(doc))
		}
	}
	d.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b entity.Document) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// update applies fn to a stored document under the write lock and bumps
// UpdatedAt when fn succeeds.
func (d *Documents) update(ctx context.Context, id string, fn func(doc *entity.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	doc, ok := d.s.docs[id]
	if !ok || doc.IsDeleted {
		return fmt.Errorf("document %s: %w", id, ErrDocumentNotFound)
	}
	doc = cloneDocument(doc)
	if err := fn(&doc); err != nil {
		return err
	}
	doc.UpdatedAt = d.s.now()
	d.s.docs[id] = doc
	return nil
}

func (d *Documents) Star(ctx context.Context, id string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		doc.IsStarred = true
		return nil
	})
}

func (d *Documents) Unstar(ctx context.Context, id string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		doc.IsStarred = false
		return nil
	})
}

// Pin pins the document to a collection, or to home when collectionID is
// empty. Pinning twice is a no-op.
func (d *Documents) Pin(ctx context.Context, id, collectionID string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		if collectionID == "" {
			doc.PinnedToHome = true
			return nil
		}
		if _, ok := d.s.collections[collectionID]; !ok {
			return fmt.Errorf("pin %s: %w", id, ErrCollectionNotFound)
		}
		if !doc.IsPinnedTo(collectionID) {
			doc.PinnedCollections = append(doc.PinnedCollections, collectionID)
		}
		return nil
	})
}

// Unpin removes every pin of the document.
func (d *Documents) Unpin(ctx context.Context, id string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		doc.PinnedToHome = false
		doc.PinnedCollections = nil
		return nil
	})
}

// Publish publishes a draft into collectionID, or into the collection the
// draft already belongs to when collectionID is empty.
func (d *Documents) Publish(ctx context.Context, id, collectionID string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		if !doc.IsDraft() {
			return fmt.Errorf("publish %s: %w", id, ErrAlreadyPublished)
		}
		target := cmp.Or(collectionID, doc.CollectionID)
		if target == "" {
			return fmt.Errorf("publish %s: %w", id, ErrCollectionRequired)
		}
		if _, ok := d.s.collections[target]; !ok {
			return fmt.Errorf("publish %s: %w", id, ErrCollectionNotFound)
		}
		doc.CollectionID = target
		doc.PublishedAt = d.s.now()
		return nil
	})
}

// Unpublish turns a published document back into a draft.
func (d *Documents) Unpublish(ctx context.Context, id string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		if doc.IsDraft() {
			return fmt.Errorf("unpublish %s: %w", id, ErrNotPublished)
		}
		doc.PublishedAt = time.Time{}
		return nil
	})
}

func (d *Documents) Subscribe(ctx context.Context, id string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		doc.IsSubscribed = true
		return nil
	})
}

func (d *Documents) Unsubscribe(ctx context.Context, id string) error {
	return d.update(ctx, id, func(doc *entity.Document) error {
		doc.IsSubscribed = false
		return nil
	})
}

// Download renders the document in format.
func (d *Documents) Download(ctx context.Context, id string, format entity.ExportFormat) (export.File, error) {
	if err := ctx.Err(); err != nil {
		return export.File{}, err
	}
	doc, ok := d.Get(id)
	if !ok || doc.IsDeleted {
		return export.File{}, fmt.Errorf("download %s: %w", id, ErrDocumentNotFound)
	}
	return export.Document(doc, format)
}

// Duplicate copies a document, and its descendants when opts.Recursive is
// set. The copy is published only when opts.Publish is set and the source is
// published.
func (d *Documents) Duplicate(ctx context.Context, id string, opts entity.DuplicateOptions) (entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return entity.Document{}, err
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	src, ok := d.s.docs[id]
	if !ok || src.IsDeleted {
		return entity.Document{}, fmt.Errorf("duplicate %s: %w", id, ErrDocumentNotFound)
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Copy of " + src.Title
	}
	// Descendants are collected before any copy exists, so copies never
	// show up as children of a node still being walked.
	var descendants []entity.Document
	if opts.Recursive {
		visited := map[string]bool{src.ID: true}
		var walk func(parent string)
		walk = func(parent string) {
			for _, child := range d.childrenLocked(parent) {
				if visited[child.ID] {
					continue
				}
				visited[child.ID] = true
				descendants = append(descendants, child)
				walk(child.ID)
			}
		}
		walk(src.ID)
	}

	root := d.copyLocked(src, title, src.ParentDocumentID, opts.Publish)
	copied := map[string]string{src.ID: root.ID}
	for _, child := range descendants {
		cp := d.copyLocked(child, child.Title, copied[child.ParentDocumentID], opts.Publish)
		copied[child.ID] = cp.ID
	}
	return cloneDocument(root), nil
}

func (d *Documents) childrenLocked(parentID string) []entity.Document {
	var out []entity.Document
	for _, doc := range d.s.docs {
		if doc.ParentDocumentID == parentID && !doc.IsDeleted && doc.ID != parentID {
			out = append(out, doc)
		}
	}
	slices.SortFunc(out, func(a, b entity.Document) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (d *Documents) copyLocked(src entity.Document, title, parentID string, publish bool) entity.Document {
	now := d.s.now()
	cp := entity.Document{
		ID:               d.s.newID(),
		Title:            title,
		Text:             src.Text,
		Icon:             src.Icon,
		Color:            src.Color,
		CollectionID:     src.CollectionID,
		ParentDocumentID: parentID,
		IsTemplate:       src.IsTemplate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if publish && !src.IsDraft() {
		cp.PublishedAt = now
	}
	d.s.docs[cp.ID] = cp
	return cp
}

// Templatize creates a published template from the document.
func (d *Documents) Templatize(ctx context.Context, id string) (entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return entity.Document{}, err
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	src, ok := d.s.docs[id]
	if !ok || src.IsDeleted {
		return entity.Document{}, fmt.Errorf("templatize %s: %w", id, ErrDocumentNotFound)
	}
	now := d.s.now()
	tpl := entity.Document{
		ID:           d.s.newID(),
		Title:        src.Title,
		Text:         src.Text,
		Icon:         src.Icon,
		Color:        src.Color,
		CollectionID: src.CollectionID,
		IsTemplate:   true,
		PublishedAt:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	d.s.docs[tpl.ID] = tpl
	return tpl, nil
}

// Import stores drafts in order. Drafts imported into a collection are
// published; without a collection they stay drafts. Either every draft is
// stored or none is.
func (d *Documents) Import(ctx context.Context, collectionID string, drafts []importer.Draft) ([]entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	if collectionID != "" {
		if _, ok := d.s.collections[collectionID]; !ok {
			return nil, fmt.Errorf("import: %w", ErrCollectionNotFound)
		}
	}

	now := d.s.now()
	out := make([]entity.Document, 0, len(drafts))
	for _, draft := range drafts {
		doc := entity.Document{
			ID:           d.s.newID(),
			Title:        draft.Title,
			Text:         draft.Text,
			Icon:         draft.Icon,
			Color:        draft.Color,
			CollectionID: collectionID,
			IsTemplate:   draft.Template,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if collectionID != "" {
			doc.PublishedAt = now
		}
		out = append(out, doc)
	}
	for _, doc := range out {
		d.s.docs[doc.ID] = doc
	}
	return out, nil
}
