// Package workspace loads the team, collections and documents folio works on
// from a TOML seed file.
package workspace

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/policy"
	"github.com/Cyclone1070/folio/internal/store"
)

//go:embed demo.toml
var demoSeed string

// Workspace is a loaded seed: the store, the policy checker evaluated against
// it and the identity of the current user.
type Workspace struct {
	TeamID string
	UserID string
	Store  *store.Store
	Policy *policy.Checker
}

// Documents returns the document store.
func (w *Workspace) Documents() *store.Documents { return w.Store.Documents() }

// Collections returns the collection store.
func (w *Workspace) Collections() *store.Collections { return w.Store.Collections() }

// Load reads the seed at path.
func Load(path string, opts ...store.Option) (*Workspace, error) {
	var seed Seed
	md, err := toml.DecodeFile(path, &seed)
	if err != nil {
		return nil, fmt.Errorf("read workspace %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("read workspace %s: %w", path, err)
	}
	return Build(seed, opts...)
}

// Parse decodes a seed from TOML text.
func Parse(data string, opts ...store.Option) (*Workspace, error) {
	var seed Seed
	md, err := toml.Decode(data, &seed)
	if err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	return Build(seed, opts...)
}

// Demo returns the built-in sample workspace.
func Demo(opts ...store.Option) *Workspace {
	w, err := Parse(demoSeed, opts...)
	if err != nil {
		panic(fmt.Sprintf("demo workspace: %v", err))
	}
	return w
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return &InvalidSeedError{Entry: strings.Join(keys, ", "), Reason: "unknown key"}
}

// Build creates a workspace from a decoded seed.
func Build(seed Seed, opts ...store.Option) (*Workspace, error) {
	if err := seed.validate(); err != nil {
		return nil, err
	}
	role, err := policy.ParseRole(seed.Role)
	if err != nil {
		return nil, &InvalidSeedError{Entry: "role", Reason: err.Error()}
	}

	s := store.New(opts...)
	for _, c := range seed.Collections {
		col := entity.Collection{
			ID:           c.ID,
			Name:         c.Name,
			Icon:         c.Icon,
			Color:        c.Color,
			Permission:   entity.CollectionPermission(c.Permission),
			IsSubscribed: c.Subscribed,
		}
		if err := s.Collections().Add(col); err != nil {
			return nil, err
		}
	}

	now := s.Now()
	for _, d := range seed.Documents {
		doc := entity.Document{
			ID:                d.ID,
			Title:             d.Title,
			Text:              d.Text,
			Icon:              d.Icon,
			Color:             d.Color,
			CollectionID:      d.Collection,
			ParentDocumentID:  d.Parent,
			IsTemplate:        d.Template,
			IsStarred:         d.Starred,
			IsSubscribed:      d.Subscribed,
			PinnedToHome:      d.PinnedToHome,
			PinnedCollections: d.Pinned,
			CreatedAt:         d.UpdatedAt,
			UpdatedAt:         d.UpdatedAt,
		}
		if !d.Draft {
			doc.PublishedAt = d.UpdatedAt
			if doc.PublishedAt.IsZero() {
				doc.PublishedAt = now
			}
		}
		if _, err := s.Documents().Create(doc); err != nil {
			return nil, err
		}
	}

	checker := policy.NewChecker(policy.Policy{
		TeamID: seed.Team,
		UserID: seed.User,
		Role:   role,
		Deny:   seed.Deny,
	}, s.Documents(), s.Collections())

	return &Workspace{TeamID: seed.Team, UserID: seed.User, Store: s, Policy: checker}, nil
}
