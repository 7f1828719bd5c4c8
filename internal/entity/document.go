// Package entity holds the document workspace model shared by the stores,
// the policy checker and the command definitions.
package entity

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Document is a single page in the workspace.
type Document struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Text              string    `json:"text"`
	Icon              string    `json:"icon,omitempty"`
	Color             string    `json:"color,omitempty"`
	CollectionID      string    `json:"collectionId,omitempty"`
	ParentDocumentID  string    `json:"parentDocumentId,omitempty"`
	IsTemplate        bool      `json:"isTemplate"`
	IsDeleted         bool      `json:"isDeleted"`
	IsArchived        bool      `json:"isArchived"`
	IsStarred         bool      `json:"isStarred"`
	IsSubscribed      bool      `json:"isSubscribed"`
	PinnedToHome      bool      `json:"pinnedToHome"`
	PinnedCollections []string  `json:"pinnedCollections,omitempty"`
	PublishedAt       time.Time `json:"publishedAt,omitzero"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// IsDraft reports whether the document was never published.
func (d Document) IsDraft() bool {
	return d.PublishedAt.IsZero()
}

// IsPinnedTo reports whether the document is pinned to the given collection.
func (d Document) IsPinnedTo(collectionID string) bool {
	return collectionID != "" && slices.Contains(d.PinnedCollections, collectionID)
}

// IsPinned reports whether the document is pinned anywhere.
func (d Document) IsPinned() bool {
	return d.PinnedToHome || len(d.PinnedCollections) > 0
}

// URL returns the document's canonical path.
func (d Document) URL() string {
	return DocumentURL(d.ID, d.Title)
}

// DocumentURL builds the canonical path of a document from its id and title.
// The slug is cosmetic; routing only looks at the id suffix.
func DocumentURL(id, title string) string {
	slug := Slugify(title)
	if slug == "" {
		return fmt.Sprintf("/doc/%s", id)
	}
	return fmt.Sprintf("/doc/%s-%s", slug, id)
}

// Slugify lowercases s and collapses every run of non-alphanumerics into a
// single dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// DuplicateOptions controls how a document is copied.
type DuplicateOptions struct {
	Title     string
	Publish   bool
	Recursive bool
}
