package command

import (
	"strings"

	"github.com/Cyclone1070/folio/internal/unique"
	"github.com/sahilm/fuzzy"
)

// candidates adapts a command list to fuzzy.Source, matching on name and
// keywords.
type candidates struct {
	ctx  Context
	cmds []*Command
	text []string
}

func newCandidates(ctx Context, cmds []*Command) *candidates {
	c := &candidates{ctx: ctx, cmds: cmds, text: make([]string, len(cmds))}
	for i, cmd := range cmds {
		c.text[i] = strings.TrimSpace(cmd.DisplayName(ctx) + " " + cmd.Keywords)
	}
	return c
}

func (c *candidates) String(i int) string { return c.text[i] }
func (c *candidates) Len() int            { return len(c.cmds) }

// Search fuzzy-matches query against the visible commands and the visible
// children of visible groups, best match first. An empty query returns the
// visible top-level commands.
func (r *Registry) Search(ctx Context, query string) []*Command {
	top := r.ResolveVisible(ctx)
	query = strings.TrimSpace(query)
	if query == "" {
		return top
	}

	pool := make([]*Command, 0, len(top))
	for _, c := range top {
		pool = append(pool, c)
		if c.Kind() == KindGroup {
			pool = append(pool, visibleChildren(c, ctx)...)
		}
	}
	pool = unique.By(pool, func(c *Command) string { return c.ID })
	return Filter(ctx, pool, query)
}

// Filter fuzzy-matches query against cmds, best match first. An empty query
// returns cmds unchanged.
func Filter(ctx Context, cmds []*Command, query string) []*Command {
	query = strings.TrimSpace(query)
	if query == "" {
		return cmds
	}
	matches := fuzzy.FindFrom(query, newCandidates(ctx, cmds))
	out := make([]*Command, len(matches))
	for i, m := range matches {
		out[i] = cmds[m.Index]
	}
	return out
}
