package command

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Cyclone1070/folio/internal/unique"
)

// Registry holds the registered commands. It is built once at start-up and
// shared by every surface; registration may run concurrently with reads.
// In-flight handlers are not coordinated.
type Registry struct {
	mu       sync.RWMutex
	commands []*Command
	byID     map[string]*Command
	logger   *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for dispatch outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		byID:   make(map[string]*Command),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds commands. Either all of them are added or none: a malformed
// descriptor or a taken id rejects the whole batch.
func (r *Registry) Register(cmds ...*Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(cmds))
	for _, c := range cmds {
		if err := validate(c); err != nil {
			return err
		}
		if _, taken := r.byID[c.ID]; taken || seen[c.ID] {
			return &DuplicateIDError{ID: c.ID}
		}
		seen[c.ID] = true
	}

	for _, c := range cmds {
		r.commands = append(r.commands, c)
		r.byID[c.ID] = c
	}
	return nil
}

// MustRegister is Register for start-up wiring; it panics on error.
func (r *Registry) MustRegister(cmds ...*Command) {
	if err := r.Register(cmds...); err != nil {
		panic(err)
	}
}

func validate(c *Command) error {
	if c == nil {
		return &InvalidCommandError{Reason: "command is nil"}
	}
	if c.ID == "" {
		return &InvalidCommandError{Reason: "id is required"}
	}
	if c.Name == nil {
		return &InvalidCommandError{ID: c.ID, Reason: "name is required"}
	}
	switch {
	case c.Perform != nil && c.Children != nil:
		return &InvalidCommandError{ID: c.ID, Reason: "a command cannot both perform and have children"}
	case c.Perform == nil && c.Children == nil:
		return &InvalidCommandError{ID: c.ID, Reason: "a command needs a handler or children"}
	}
	return nil
}

// All returns every top-level command in registration order.
func (r *Registry) All() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.commands)
}

// Lookup returns the top-level command with the id.
func (r *Registry) Lookup(id string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	return c, ok
}

// ResolveVisible returns the top-level commands visible in ctx, ordered by
// Order and then by registration.
func (r *Registry) ResolveVisible(ctx Context) []*Command {
	var visible []*Command
	for _, c := range r.All() {
		if c.IsVisible(ctx) {
			visible = append(visible, c)
		}
	}
	slices.SortStableFunc(visible, func(a, b *Command) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return visible
}

// Children expands a group. Children are resolved on every call, filtered by
// their own visibility and deduplicated by id, first one wins.
func (r *Registry) Children(id string, ctx Context) ([]*Command, error) {
	c, ok := r.Lookup(id)
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	if c.Kind() != KindGroup {
		return nil, &NotGroupError{ID: id}
	}
	if !c.IsVisible(ctx) {
		return nil, &NotVisibleError{ID: id}
	}
	return visibleChildren(c, ctx), nil
}

func visibleChildren(group *Command, ctx Context) []*Command {
	var children []*Command
	for _, child := range group.Children(ctx) {
		if child != nil {
			children = append(children, child)
		}
	}
	// Dedup before filtering: a hidden first occurrence hides its id.
	children = unique.By(children, func(c *Command) string { return c.ID })

	out := children[:0]
	for _, child := range children {
		if child.IsVisible(ctx) {
			out = append(out, child)
		}
	}
	return out
}

// Resolve finds a command by id among the top-level commands and then among
// the children of visible groups. Visibility of the result is not checked.
func (r *Registry) Resolve(id string, ctx Context) (*Command, error) {
	if c, ok := r.Lookup(id); ok {
		return c, nil
	}
	for _, group := range r.All() {
		if group.Kind() != KindGroup || !group.IsVisible(ctx) {
			continue
		}
		for _, child := range group.Children(ctx) {
			if child != nil && child.ID == id {
				return child, nil
			}
		}
	}
	return nil, &NotFoundError{ID: id}
}

// hiddenChild reports whether id is a child of a group that is hidden in ctx.
func (r *Registry) hiddenChild(id string, ctx Context) bool {
	for _, group := range r.All() {
		if group.Kind() != KindGroup || group.IsVisible(ctx) {
			continue
		}
		for _, child := range group.Children(ctx) {
			if child != nil && child.ID == id {
				return true
			}
		}
	}
	return false
}

// Dispatch runs the command with the id. Visibility is re-evaluated against
// cctx first, so a command picked from a stale menu is refused with a
// NotVisibleError; so is a child whose group is hidden. Failures and panics
// raised by the handler are reported through cctx.Notifier and returned as a
// *HandlerError; refusals are only logged.
func (r *Registry) Dispatch(ctx context.Context, id string, cctx Context) error {
	c, err := r.Resolve(id, cctx)
	if err != nil {
		if r.hiddenChild(id, cctx) {
			r.logger.Warn("command not visible", "command", id, "reason", "group hidden")
			return &NotVisibleError{ID: id}
		}
		r.logger.Warn("command not found", "command", id)
		return err
	}
	if !c.IsVisible(cctx) {
		r.logger.Warn("command not visible", "command", id)
		return &NotVisibleError{ID: id}
	}
	if c.Kind() != KindLeaf {
		r.logger.Warn("group dispatched", "command", id)
		return &GroupDispatchError{ID: id}
	}

	start := time.Now()
	if err := perform(ctx, c, cctx); err != nil {
		herr := &HandlerError{ID: id, Cause: err}
		r.logger.Error("command failed", "command", id, "analytics", c.AnalyticsName, "error", err)
		if cctx.Notifier != nil {
			msg := herr.UserMessage()
			if msg == "" {
				msg = cctx.T("error.unknown")
			}
			cctx.Notifier.Error(msg)
		}
		return herr
	}

	r.logger.Info("command performed", "command", id, "analytics", c.AnalyticsName, "duration", time.Since(start))
	return nil
}

func perform(ctx context.Context, c *Command, cctx Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, p)
		}
	}()
	return c.Perform(ctx, cctx)
}

// Shortcut returns the first registered command bound to exactly keys.
func (r *Registry) Shortcut(keys ...string) (*Command, bool) {
	if len(keys) == 0 {
		return nil, false
	}
	for _, c := range r.All() {
		if slices.Equal(c.Shortcut, keys) {
			return c, true
		}
	}
	return nil, false
}

// HasShortcutPrefix reports whether keys start a longer shortcut, meaning the
// caller should wait for more keys.
func (r *Registry) HasShortcutPrefix(keys ...string) bool {
	if len(keys) == 0 {
		return false
	}
	for _, c := range r.All() {
		if len(c.Shortcut) > len(keys) && slices.Equal(c.Shortcut[:len(keys)], keys) {
			return true
		}
	}
	return false
}
