package command

import (
	"maps"

	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/i18n"
	"github.com/Cyclone1070/folio/internal/router"
	"golang.org/x/text/language"
)

// Context is the snapshot of application state a command is evaluated
// against. It is built fresh for every interaction and treated as a value:
// the With methods return modified copies.
type Context struct {
	CurrentTeamID      string
	ActiveCollectionID string
	ActiveDocumentID   string
	SidebarContext     string
	Location           router.Location
	Locale             language.Tag
	// Args carries invocation arguments such as "query", "format" or "path".
	Args map[string]string

	Documents   DocumentStore
	Collections CollectionStore
	Policies    AbilityChecker
	Router      Router
	Dialogs     DialogHost
	Notifier    Notifier
	Renderer    MarkdownRenderer
	Rand        Rand
}

// WithArgs returns a copy whose Args are args merged over the current ones.
func (c Context) WithArgs(args map[string]string) Context {
	merged := maps.Clone(c.Args)
	if merged == nil {
		merged = make(map[string]string, len(args))
	}
	maps.Copy(merged, args)
	c.Args = merged
	return c
}

// WithArg returns a copy with a single argument set.
func (c Context) WithArg(key, value string) Context {
	return c.WithArgs(map[string]string{key: value})
}

// WithActiveDocument returns a copy focused on another document.
func (c Context) WithActiveDocument(id string) Context {
	c.ActiveDocumentID = id
	return c
}

// WithActiveCollection returns a copy focused on another collection.
func (c Context) WithActiveCollection(id string) Context {
	c.ActiveCollectionID = id
	return c
}

// WithLocation returns a copy at another router location.
func (c Context) WithLocation(loc router.Location) Context {
	c.Location = loc
	return c
}

// Arg returns an invocation argument, or "" when unset.
func (c Context) Arg(key string) string {
	return c.Args[key]
}

// T localises key for the context's locale.
func (c Context) T(key string, args ...any) string {
	return i18n.T(c.Locale, key, args...)
}

// ActiveDocument looks up the active document.
func (c Context) ActiveDocument() (entity.Document, bool) {
	if c.ActiveDocumentID == "" || c.Documents == nil {
		return entity.Document{}, false
	}
	return c.Documents.Get(c.ActiveDocumentID)
}

// ActiveCollection looks up the active collection.
func (c Context) ActiveCollection() (entity.Collection, bool) {
	if c.ActiveCollectionID == "" || c.Collections == nil {
		return entity.Collection{}, false
	}
	return c.Collections.Get(c.ActiveCollectionID)
}

// Abilities returns the current user's abilities on an entity. Without a
// checker, or for an empty id, nothing is granted.
func (c Context) Abilities(id string) entity.Abilities {
	if id == "" || c.Policies == nil {
		return entity.Abilities{}
	}
	if a := c.Policies.Abilities(id); a != nil {
		return a
	}
	return entity.Abilities{}
}

// Can is shorthand for Abilities(id).Can(ability).
func (c Context) Can(id, ability string) bool {
	return c.Abilities(id).Can(ability)
}

// AtLocation returns a copy positioned at loc, with the active document and
// collection taken from the route. A document route also activates the
// document's collection.
func (c Context) AtLocation(loc router.Location) Context {
	c.Location = loc
	c.ActiveDocumentID = ""
	c.ActiveCollectionID = ""

	route, ok := loc.Route()
	if !ok {
		return c
	}
	if id := route.DocumentID(); id != "" {
		c.ActiveDocumentID = id
		if doc, ok := c.ActiveDocument(); ok {
			c.ActiveCollectionID = doc.CollectionID
		}
	}
	if id := route.CollectionID(); id != "" {
		c.ActiveCollectionID = id
	}
	return c
}
