package store

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Cyclone1070/folio/internal/entity"
)

// Collections is the collection view of a Store.
type Collections struct {
	s *Store
}

// Add inserts a collection. The id must be unused.
func (c *Collections) Add(col entity.Collection) error {
	if col.ID == "" {
		return fmt.Errorf("add collection: %w", ErrCollectionRequired)
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.collections[col.ID]; ok {
		return fmt.Errorf("add collection %s: %w", col.ID, ErrDuplicateID)
	}
	if col.Permission == "" {
		col.Permission = entity.PermissionReadWrite
	}
	col.Documents = nil
	c.s.collections[col.ID] = col
	c.s.colOrder = append(c.s.colOrder, col.ID)
	return nil
}

// SetSubscribed toggles the collection subscription of the current user.
func (c *Collections) SetSubscribed(id string, subscribed bool) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	col, ok := c.s.collections[id]
	if !ok {
		return fmt.Errorf("collection %s: %w", id, ErrCollectionNotFound)
	}
	col.IsSubscribed = subscribed
	c.s.collections[id] = col
	return nil
}

// Get returns the collection with its navigation tree.
func (c *Collections) Get(id string) (entity.Collection, bool) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	col, ok := c.s.collections[id]
	if !ok {
		return entity.Collection{}, false
	}
	col.Documents = c.s.tree(id)
	return col, true
}

// All returns the collections in insertion order.
func (c *Collections) All() []entity.Collection {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := make([]entity.Collection, 0, len(c.s.colOrder))
	for _, id := range c.s.colOrder {
		col := c.s.collections[id]
		col.Documents = c.s.tree(id)
		out = append(out, col)
	}
	return out
}

// NavigationNodes returns one root node per collection whose children are the
// collection's published documents, nested by parent.
func (c *Collections) NavigationNodes() []entity.NavigationNode {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := make([]entity.NavigationNode, 0, len(c.s.colOrder))
	for _, id := range c.s.colOrder {
		col := c.s.collections[id]
		out = append(out, entity.NavigationNode{
			ID:       col.ID,
			Title:    col.Name,
			URL:      col.URL(),
			Icon:     col.Icon,
			Color:    col.Color,
			Children: c.s.tree(id),
		})
	}
	return out
}

// tree builds the navigation tree of a collection. Callers hold the lock.
func (s *Store) tree(collectionID string) []entity.NavigationNode {
	children := make(map[string][]entity.Document)
	for _, d := range s.docs {
		if d.CollectionID != collectionID || d.IsDraft() || d.IsDeleted || d.IsArchived || d.IsTemplate {
			continue
		}
		parent := d.ParentDocumentID
		if parent != "" {
			if p, ok := s.docs[parent]; !ok || p.CollectionID != collectionID || p.IsDraft() || p.IsDeleted || p.IsArchived || p.IsTemplate {
				parent = ""
			}
		}
		children[parent] = append(children[parent], d)
	}

	var build func(parent string) []entity.NavigationNode
	build = func(parent string) []entity.NavigationNode {
		docs := children[parent]
		slices.SortFunc(docs, func(a, b entity.Document) int {
			if c := a.PublishedAt.Compare(b.PublishedAt); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
		var nodes []entity.NavigationNode
		for _, d := range docs {
			nodes = append(nodes, entity.NavigationNode{
				ID:       d.ID,
				Title:    d.Title,
				URL:      d.URL(),
				Icon:     d.Icon,
				Color:    d.Color,
				Children: build(d.ID),
			})
		}
		return nodes
	}
	return build("")
}
