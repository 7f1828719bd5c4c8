// Package command defines declarative commands and the registry that decides
// which of them are visible and dispatches them.
package command

import "context"

// Section groups commands in menus and the palette.
type Section string

const (
	SectionDocument       Section = "document"
	SectionActiveDocument Section = "activeDocument"
	SectionNavigation     Section = "navigation"
)

// Label returns the localised section title.
func (s Section) Label(ctx Context) string {
	return ctx.T("section." + string(s))
}

// Kind tells leaves from groups.
type Kind int

const (
	KindInvalid Kind = iota
	KindLeaf
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	default:
		return "invalid"
	}
}

// Command is a user-facing action. Exactly one of Perform (a leaf) and
// Children (a group) is set.
type Command struct {
	ID            string
	Name          func(Context) string
	Section       Section
	Shortcut      []string
	Keywords      string
	Icon          string
	Order         int
	AnalyticsName string

	// Visible reports whether the command may be shown and run. Nil means
	// always visible. It must not have side effects.
	Visible func(Context) bool

	Perform  func(context.Context, Context) error
	Children func(Context) []*Command
}

// Kind reports whether the command is a leaf or a group.
func (c *Command) Kind() Kind {
	switch {
	case c.Perform != nil && c.Children == nil:
		return KindLeaf
	case c.Children != nil && c.Perform == nil:
		return KindGroup
	default:
		return KindInvalid
	}
}

// IsVisible evaluates the visibility predicate.
func (c *Command) IsVisible(ctx Context) bool {
	return c.Visible == nil || c.Visible(ctx)
}

// DisplayName evaluates the name, falling back to the id.
func (c *Command) DisplayName(ctx Context) string {
	if c.Name == nil {
		return c.ID
	}
	if name := c.Name(ctx); name != "" {
		return name
	}
	return c.ID
}

// Leaf builds an invokable command.
func Leaf(id string, name func(Context) string, perform func(context.Context, Context) error) *Command {
	return &Command{ID: id, Name: name, Perform: perform}
}

// Group builds a command whose children are resolved when it is expanded.
func Group(id string, name func(Context) string, children func(Context) []*Command) *Command {
	return &Command{ID: id, Name: name, Children: children}
}

// Static adapts a fixed child list into a children resolver.
func Static(children ...*Command) func(Context) []*Command {
	return func(Context) []*Command {
		out := make([]*Command, len(children))
		copy(out, children)
		return out
	}
}

// Text is a name that does not depend on the context.
func Text(s string) func(Context) string {
	return func(Context) string { return s }
}

// Translated is a name looked up in the message catalog.
func Translated(key string) func(Context) string {
	return func(ctx Context) string { return ctx.T(key) }
}
