// Package api holds the JSON helpers shared by the HTTP handlers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// FriendlyError is an error with a human-friendly message.
type FriendlyError struct {
	Err     error
	Message string
}

// Friendly returns a FriendlyError that wraps err with the provided message.
func Friendly(err error, format string, v ...any) error {
	return FriendlyError{
		Err:     err,
		Message: fmt.Sprintf(format, v...),
	}
}

func (err FriendlyError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

func (err FriendlyError) Unwrap() error {
	return err.Err
}

func (err FriendlyError) FriendlyError() string {
	return err.Message
}

// Error writes a JSON error response to w with the error message in an "error" field:
//
//	api.Error(w, r, 404, errors.New("document not found"))
//	// {"error": "document not found"}
func Error(w http.ResponseWriter, r *http.Request, status int, err error) {
	var msg string
	if err != nil {
		msg = err.Error()
		var friendly interface{ FriendlyError() string }
		if errors.As(err, &friendly) {
			msg = friendly.FriendlyError()
		}
	}

	if status != 0 {
		render.Status(r, status)
	}

	render.JSON(w, r, map[string]any{"error": msg})
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if status != 0 {
		render.Status(r, status)
	}
	render.JSON(w, r, v)
}

// Decode reads a JSON body into v. An empty body leaves v untouched.
func Decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return Friendly(err, "Malformed JSON request: %v", err)
	}
	return nil
}

// Status maps an error to an HTTP status through the behaviour methods the
// error implements.
func Status(err error) int {
	var (
		notFound   interface{ NotFound() bool }
		notVisible interface{ NotVisible() bool }
		invalid    interface{ InvalidInput() bool }
		friendly   interface{ FriendlyError() string }
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound) && notFound.NotFound():
		return http.StatusNotFound
	case errors.As(err, &notVisible) && notVisible.NotVisible():
		return http.StatusForbidden
	case errors.As(err, &invalid) && invalid.InvalidInput():
		return http.StatusBadRequest
	case errors.As(err, &friendly):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Logger logs one line per request.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
