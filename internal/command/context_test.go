package command

import (
	"errors"
	"testing"

	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

type fakeAbilities map[string]entity.Abilities

func (f fakeAbilities) Abilities(id string) entity.Abilities { return f[id] }

func TestContext_WithArgsCopies(t *testing.T) {
	base := Context{Args: map[string]string{"a": "1"}}

	next := base.WithArgs(map[string]string{"b": "2"}).WithArg("a", "3")

	assert.Equal(t, "1", base.Arg("a"))
	assert.Empty(t, base.Arg("b"))
	assert.Equal(t, "3", next.Arg("a"))
	assert.Equal(t, "2", next.Arg("b"))
}

func TestContext_WithActive(t *testing.T) {
	base := Context{ActiveDocumentID: "d1"}

	next := base.WithActiveDocument("d2").WithActiveCollection("c1")

	assert.Equal(t, "d1", base.ActiveDocumentID)
	assert.Equal(t, "d2", next.ActiveDocumentID)
	assert.Equal(t, "c1", next.ActiveCollectionID)
}

func TestContext_LookupsWithoutCollaborators(t *testing.T) {
	ctx := Context{ActiveDocumentID: "d1", ActiveCollectionID: "c1"}

	_, ok := ctx.ActiveDocument()
	assert.False(t, ok)
	_, ok = ctx.ActiveCollection()
	assert.False(t, ok)
	assert.False(t, ctx.Can("d1", entity.AbilityRead))
}

func TestContext_Can(t *testing.T) {
	ctx := Context{Policies: fakeAbilities{"d1": {entity.AbilityStar: true}}}

	assert.True(t, ctx.Can("d1", entity.AbilityStar))
	assert.False(t, ctx.Can("d1", entity.AbilityUnstar))
	assert.False(t, ctx.Can("d2", entity.AbilityStar))
	assert.False(t, ctx.Can("", entity.AbilityStar))
}

func TestContext_T(t *testing.T) {
	assert.Equal(t, "Open document", Context{}.T("command.openDocument"))
	assert.Equal(t, "Dokument öffnen", Context{Locale: language.German}.T("command.openDocument"))
	assert.Equal(t, "Current document", SectionActiveDocument.Label(Context{Locale: language.English}))
}

func TestHandlerError_UserMessage(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  string
	}{
		{"plain", errors.New("boom"), "boom"},
		{"wrapped", &wrapped{msg: "outer", err: errors.New("inner")}, "inner"},
		{"own message", &friendly{}, "try again later"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&HandlerError{ID: "x", Cause: tt.cause}).UserMessage())
		})
	}
}

type friendly struct{}

func (*friendly) Error() string       { return "upstream returned 503" }
func (*friendly) UserMessage() string { return "try again later" }

// docGetter implements only the lookup half of DocumentStore.
type docGetter struct {
	DocumentStore
	docs map[string]entity.Document
}

func (d docGetter) Get(id string) (entity.Document, bool) {
	doc, ok := d.docs[id]
	return doc, ok
}

func TestContext_AtLocation(t *testing.T) {
	base := Context{
		ActiveDocumentID: "stale",
		Documents:        docGetter{docs: map[string]entity.Document{"d1": {ID: "d1", CollectionID: "eng"}}},
	}

	tests := []struct {
		path       string
		document   string
		collection string
	}{
		{"/doc/plan-d1", "d1", "eng"},
		{"/doc/plan-d1/history", "d1", "eng"},
		{"/doc/unknown-d9", "d9", ""},
		{"/collection/ops", "", "ops"},
		{"/collection/ops/new", "", "ops"},
		{"/home", "", ""},
		{"/nowhere/at/all", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ctx := base.AtLocation(router.ParseLocation(tt.path, nil))
			assert.Equal(t, tt.path, ctx.Location.Pathname)
			assert.Equal(t, tt.document, ctx.ActiveDocumentID)
			assert.Equal(t, tt.collection, ctx.ActiveCollectionID)
		})
	}
}
