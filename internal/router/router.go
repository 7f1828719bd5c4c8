// Package router keeps an in-memory navigation history and maps locations to
// the documents and collections they point at.
package router

import (
	"maps"
	"net/url"
	"strings"
	"sync"
)

// Location is a point in the navigation history.
type Location struct {
	Pathname string            `json:"pathname"`
	Query    url.Values        `json:"query,omitempty"`
	State    map[string]string `json:"state,omitempty"`
}

// ParseLocation splits a path with an optional query string into a Location.
func ParseLocation(path string, state map[string]string) Location {
	loc := Location{Pathname: path, State: maps.Clone(state)}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		loc.Pathname = path[:i]
		loc.Query, _ = url.ParseQuery(path[i+1:])
	}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	return loc
}

// String renders the location back into a path with query.
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Pathname
	}
	return l.Pathname + "?" + l.Query.Encode()
}

// Route matches the location's pathname.
func (l Location) Route() (Route, bool) {
	return Match(l.Pathname)
}

// History is a browser-like stack of locations. It is safe for concurrent
// use; listeners are called synchronously after every change, outside the lock.
type History struct {
	mu        sync.RWMutex
	entries   []Location
	index     int
	listeners map[int]func(Location)
	nextID    int
}

// New returns a History positioned at start.
func New(start string) *History {
	return &History{
		entries:   []Location{ParseLocation(start, nil)},
		listeners: make(map[int]func(Location)),
	}
}

// Push navigates to path, discarding any forward entries.
func (h *History) Push(path string, state map[string]string) {
	loc := ParseLocation(path, state)

	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
	listeners := h.snapshotListeners()
	h.mu.Unlock()

	notify(listeners, loc)
}

// Back moves one entry back. It returns false at the start of the history.
func (h *History) Back() bool {
	h.mu.Lock()
	if h.index == 0 {
		h.mu.Unlock()
		return false
	}
	h.index--
	loc := h.entries[h.index]
	listeners := h.snapshotListeners()
	h.mu.Unlock()

	notify(listeners, loc)
	return true
}

// Location returns the current location.
func (h *History) Location() Location {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[h.index]
}

// Listen registers fn to be called on every navigation and returns a function
// that removes it.
func (h *History) Listen(fn func(Location)) (unlisten func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *History) snapshotListeners() []func(Location) {
	out := make([]func(Location), 0, len(h.listeners))
	for _, fn := range h.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(Location), loc Location) {
	for _, fn := range listeners {
		fn(loc)
	}
}
