package entity

import "github.com/Cyclone1070/folio/internal/router"

// CollectionPermission is the default access level members get on a collection.
type CollectionPermission string

const (
	PermissionRead      CollectionPermission = "read"
	PermissionReadWrite CollectionPermission = "read_write"
)

// Collection groups documents under a navigation tree.
type Collection struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Icon         string               `json:"icon,omitempty"`
	Color        string               `json:"color,omitempty"`
	Permission   CollectionPermission `json:"permission"`
	IsSubscribed bool                 `json:"isSubscribed"`
	Documents    []NavigationNode     `json:"documents"`
}

// URL returns the collection's path.
func (c Collection) URL() string {
	return router.CollectionPath(c.ID)
}

// NavigationNode is an entry in a collection's document tree.
type NavigationNode struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	URL      string           `json:"url"`
	Icon     string           `json:"icon,omitempty"`
	Color    string           `json:"color,omitempty"`
	Children []NavigationNode `json:"children,omitempty"`
}

// Walk calls fn for every node in the tree, depth first, parents before
// children.
func Walk(nodes []NavigationNode, fn func(NavigationNode)) {
	for _, n := range nodes {
		fn(n)
		Walk(n.Children, fn)
	}
}
