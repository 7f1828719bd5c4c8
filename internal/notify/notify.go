// Package notify provides notification and dialog sinks for surfaces that do
// not render toasts themselves.
package notify

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/Cyclone1070/folio/internal/command"
)

// Kind is the kind of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindLoading Kind = "loading"
)

// Notification is one toast.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Logger writes notifications to a structured log.
type Logger struct {
	Logger *slog.Logger
}

func (l Logger) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l Logger) Success(msg string) { l.logger().Info(msg, "kind", KindSuccess) }
func (l Logger) Error(msg string)   { l.logger().Error(msg, "kind", KindError) }

// Loading logs msg and returns a dismiss function that logs its completion.
func (l Logger) Loading(msg string) func() {
	l.logger().Info(msg, "kind", KindLoading)
	return func() { l.logger().Debug("done", "kind", KindLoading, "message", msg) }
}

// Collector records notifications and modals so they can be returned to a
// caller, for example in an HTTP response. It is safe for concurrent use.
type Collector struct {
	mu            sync.Mutex
	notifications []Notification
	modals        []command.Modal
}

func (c *Collector) add(kind Kind, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, Notification{Kind: kind, Message: msg})
}

func (c *Collector) Success(msg string) { c.add(KindSuccess, msg) }
func (c *Collector) Error(msg string)   { c.add(KindError, msg) }

// Loading records the pending message. Dismissing it is a no-op.
func (c *Collector) Loading(msg string) func() {
	c.add(KindLoading, msg)
	return func() {}
}

// OpenModal records a modal.
func (c *Collector) OpenModal(m command.Modal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modals = append(c.modals, m)
}

// CloseAllModals forgets the recorded modals.
func (c *Collector) CloseAllModals() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modals = nil
}

// Notifications returns the recorded notifications in order.
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.notifications)
}

// Modals returns the modals that are still open.
func (c *Collector) Modals() []command.Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.modals)
}

// Tee forwards every notification to all notifiers.
type Tee []command.Notifier

func (t Tee) Success(msg string) {
	for _, n := range t {
		n.Success(msg)
	}
}

func (t Tee) Error(msg string) {
	for _, n := range t {
		n.Error(msg)
	}
}

func (t Tee) Loading(msg string) func() {
	dismiss := make([]func(), 0, len(t))
	for _, n := range t {
		dismiss = append(dismiss, n.Loading(msg))
	}
	return func() {
		for _, d := range dismiss {
			d()
		}
	}
}
