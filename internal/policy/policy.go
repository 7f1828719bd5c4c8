// Package policy decides which abilities the current user holds on the
// team, its collections and its documents.
package policy

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Cyclone1070/folio/internal/entity"
)

// Role is the user's role in the team.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// ParseRole validates a role name. An empty name is a member.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleMember, RoleViewer:
		return r, nil
	case "":
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Policy is the static input of a Checker.
type Policy struct {
	TeamID string
	UserID string
	Role   Role
	// Deny withholds abilities everywhere, whatever the role grants.
	Deny []string
}

// DocumentSource looks documents up by id.
type DocumentSource interface {
	Get(id string) (entity.Document, bool)
}

// CollectionSource looks collections up by id.
type CollectionSource interface {
	Get(id string) (entity.Collection, bool)
}

// Checker evaluates abilities against the live store on every call.
type Checker struct {
	mu          sync.RWMutex
	policy      Policy
	documents   DocumentSource
	collections CollectionSource
}

// NewChecker creates a Checker.
func NewChecker(p Policy, documents DocumentSource, collections CollectionSource) *Checker {
	if p.Role == "" {
		p.Role = RoleMember
	}
	return &Checker{policy: p, documents: documents, collections: collections}
}

// SetRole changes the user's role.
func (c *Checker) SetRole(r Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.policy.Role = r
}

// Policy returns the current policy.
func (c *Checker) Policy() Policy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p := c.policy
	p.Deny = slices.Clone(p.Deny)
	return p
}

// Abilities returns the abilities on the team, collection or document with the
// id. Unknown ids grant nothing.
func (c *Checker) Abilities(id string) entity.Abilities {
	p := c.Policy()

	var a entity.Abilities
	switch {
	case id == "":
		return entity.Abilities{}
	case id == p.TeamID:
		a = teamAbilities(p.Role)
	default:
		if col, ok := c.collections.Get(id); ok {
			a = collectionAbilities(p.Role, col)
		} else if doc, ok := c.documents.Get(id); ok {
			a = c.documentAbilities(p.Role, doc)
		} else {
			return entity.Abilities{}
		}
	}

	for _, name := range p.Deny {
		delete(a, name)
	}
	return a
}

func teamAbilities(role Role) entity.Abilities {
	canCreate := role != RoleViewer
	return entity.Abilities{
		entity.AbilityRead:           true,
		entity.AbilityCreateDocument: canCreate,
		entity.AbilityCreateTemplate: canCreate,
	}
}

func collectionAbilities(role Role, col entity.Collection) entity.Abilities {
	write := canWrite(role, col)
	return entity.Abilities{
		entity.AbilityRead:           true,
		entity.AbilityUpdate:         write,
		entity.AbilityCreateDocument: write,
		entity.AbilitySubscribe:      !col.IsSubscribed,
		entity.AbilityUnsubscribe:    col.IsSubscribed,
	}
}

func (c *Checker) documentAbilities(role Role, doc entity.Document) entity.Abilities {
	if doc.IsDeleted {
		return entity.Abilities{}
	}

	// Drafts outside a collection belong to the user.
	write := role != RoleViewer
	if doc.CollectionID != "" {
		col, ok := c.collections.Get(doc.CollectionID)
		write = ok && canWrite(role, col)
	}
	published := !doc.IsDraft()

	return entity.Abilities{
		entity.AbilityRead:            true,
		entity.AbilityDownload:        true,
		entity.AbilityShare:           published,
		entity.AbilityStar:            true,
		entity.AbilityUnstar:          true,
		entity.AbilitySubscribe:       published,
		entity.AbilityUnsubscribe:     published,
		entity.AbilityUpdate:          write && !doc.IsArchived,
		entity.AbilityPublish:         write && !published,
		entity.AbilityUnpublish:       write && published,
		entity.AbilityDuplicate:       write,
		entity.AbilityMove:            write,
		entity.AbilityPinToCollection: write && published && doc.CollectionID != "",
		entity.AbilityPinToHome:       role == RoleAdmin && published,
		entity.AbilityUnpin:           write || role == RoleAdmin,
	}
}

func canWrite(role Role, col entity.Collection) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleMember:
		return col.Permission == entity.PermissionReadWrite
	default:
		return false
	}
}
