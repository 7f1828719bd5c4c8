package workspace

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Seed is the TOML description of a workspace.
type Seed struct {
	Team        string           `toml:"team"`
	User        string           `toml:"user"`
	Role        string           `toml:"role"`
	Deny        []string         `toml:"deny"`
	Collections []CollectionSeed `toml:"collections"`
	Documents   []DocumentSeed   `toml:"documents"`
}

// CollectionSeed describes one collection.
type CollectionSeed struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	Icon       string `toml:"icon"`
	Color      string `toml:"color"`
	Permission string `toml:"permission"`
	Subscribed bool   `toml:"subscribed"`
}

// DocumentSeed describes one document. Documents are published unless Draft
// is set.
type DocumentSeed struct {
	ID           string    `toml:"id"`
	Title        string    `toml:"title"`
	Collection   string    `toml:"collection"`
	Parent       string    `toml:"parent"`
	Icon         string    `toml:"icon"`
	Color        string    `toml:"color"`
	Template     bool      `toml:"template"`
	Draft        bool      `toml:"draft"`
	Starred      bool      `toml:"starred"`
	Subscribed   bool      `toml:"subscribed"`
	PinnedToHome bool      `toml:"pinned_to_home"`
	Pinned       []string  `toml:"pinned"`
	UpdatedAt    time.Time `toml:"updated_at"`
	Text         string    `toml:"text"`
}

// InvalidSeedError reports an entry of the seed that cannot be loaded.
type InvalidSeedError struct {
	Entry  string
	Reason string
}

func (e *InvalidSeedError) Error() string {
	return fmt.Sprintf("invalid seed entry %s: %s", e.Entry, e.Reason)
}

func (e *InvalidSeedError) InvalidInput() bool { return true }

// validID rejects ids that would not survive the trip through a document
// path, where the id follows the last dash of the slug.
func validID(id string) bool {
	if id == "" || strings.ContainsAny(id, "/?# ") {
		return false
	}
	if strings.Contains(id, "-") {
		_, err := uuid.Parse(id)
		return err == nil
	}
	return true
}

func (s Seed) validate() error {
	if s.Team == "" {
		return &InvalidSeedError{Entry: "team", Reason: "must not be empty"}
	}
	for i, c := range s.Collections {
		if !validID(c.ID) {
			return &InvalidSeedError{Entry: fmt.Sprintf("collections[%d]", i), Reason: fmt.Sprintf("id %q must be a uuid or contain no dashes", c.ID)}
		}
		if c.Name == "" {
			return &InvalidSeedError{Entry: "collection " + c.ID, Reason: "name must not be empty"}
		}
	}
	for i, d := range s.Documents {
		if !validID(d.ID) {
			return &InvalidSeedError{Entry: fmt.Sprintf("documents[%d]", i), Reason: fmt.Sprintf("id %q must be a uuid or contain no dashes", d.ID)}
		}
		if d.Parent == d.ID {
			return &InvalidSeedError{Entry: "document " + d.ID, Reason: "document is its own parent"}
		}
	}
	parents := make(map[string]string, len(s.Documents))
	for _, d := range s.Documents {
		parents[d.ID] = d.Parent
	}
	for _, d := range s.Documents {
		seen := map[string]bool{d.ID: true}
		for p := parents[d.ID]; p != ""; p = parents[p] {
			if seen[p] {
				return &InvalidSeedError{Entry: "document " + d.ID, Reason: "parent chain forms a cycle"}
			}
			seen[p] = true
		}
	}
	return nil
}
