package command

import (
	"errors"
	"fmt"
)

// ErrHandlerPanic is the cause recorded when a command handler panics.
var ErrHandlerPanic = errors.New("command handler panicked")

// -- Registration errors --

// DuplicateIDError is returned when a command id is registered twice.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("command %q is already registered", e.ID)
}

func (e *DuplicateIDError) Duplicate() bool { return true }

// InvalidCommandError is returned for a malformed command descriptor.
type InvalidCommandError struct {
	ID     string
	Reason string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command %q: %s", e.ID, e.Reason)
}

func (e *InvalidCommandError) InvalidInput() bool { return true }

// -- Dispatch errors --

// NotFoundError is returned when no registered command has the id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command %q not found", e.ID)
}

func (e *NotFoundError) NotFound() bool { return true }

// NotVisibleError is returned when a command is invoked while its visibility
// predicate is false, typically from a stale menu.
type NotVisibleError struct {
	ID string
}

func (e *NotVisibleError) Error() string {
	return fmt.Sprintf("command %q is not available here", e.ID)
}

func (e *NotVisibleError) NotVisible() bool { return true }

// NotGroupError is returned when children are requested from a leaf.
type NotGroupError struct {
	ID string
}

func (e *NotGroupError) Error() string {
	return fmt.Sprintf("command %q has no children", e.ID)
}

func (e *NotGroupError) InvalidInput() bool { return true }

// GroupDispatchError is returned when a group is dispatched. Groups are
// expanded, not run.
type GroupDispatchError struct {
	ID string
}

func (e *GroupDispatchError) Error() string {
	return fmt.Sprintf("command %q is a group and cannot be performed", e.ID)
}

func (e *GroupDispatchError) InvalidInput() bool { return true }

// HandlerError wraps a failure raised by a command's handler.
type HandlerError struct {
	ID    string
	Cause error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("command %q failed: %v", e.ID, e.Cause)
}

func (e *HandlerError) Unwrap() error { return e.Cause }

// UserMessage is the text shown to the user: the cause's own UserMessage if it
// has one, otherwise the message of the innermost wrapped error.
func (e *HandlerError) UserMessage() string {
	var um interface{ UserMessage() string }
	if errors.As(e.Cause, &um) {
		return um.UserMessage()
	}
	err := e.Cause
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
