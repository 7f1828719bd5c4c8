// Package server exposes the command registry and the document store over
// HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Cyclone1070/folio/internal/api"
	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/i18n"
	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API.
type Server struct {
	chi.Router

	registry *command.Registry
	base     command.Context
	logger   *slog.Logger
}

// Option is a server option.
type Option func(*Server)

// WithLogger sets the logger used for request and dispatch logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New returns the API server. base supplies the stores, the policy checker
// and the renderer; every request fills in its own location, notifier and
// dialogs.
func New(registry *command.Registry, base command.Context, opts ...Option) *Server {
	s := Server{
		Router:   chi.NewRouter(),
		registry: registry,
		base:     base,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.init()
	return &s
}

func (s *Server) init() {
	s.Use(middleware.RequestID)
	s.Use(api.Logger(s.logger))
	s.Use(middleware.Recoverer)

	s.Route("/api", func(r chi.Router) {
		r.Get("/commands", s.listCommands)
		r.Get("/commands/search", s.searchCommands)
		r.Get("/commands/{CommandID}/children", s.listChildren)
		r.Post("/commands/{CommandID}/dispatch", s.dispatch)
		r.Get("/documents", s.listDocuments)
		r.Get("/documents/{DocumentID}", s.showDocument)
	})
}

// ContextParams position a request in the workspace.
type ContextParams struct {
	Team       string `json:"team"`
	Collection string `json:"collection"`
	Document   string `json:"document"`
	Sidebar    string `json:"sidebar"`
	Locale     string `json:"locale"`
	Path       string `json:"path"`
}

func paramsFromQuery(r *http.Request) ContextParams {
	q := r.URL.Query()
	return ContextParams{
		Team:       q.Get("team"),
		Collection: q.Get("collection"),
		Document:   q.Get("document"),
		Sidebar:    q.Get("sidebar"),
		Locale:     q.Get("locale"),
		Path:       q.Get("path"),
	}
}

// session is the per-request state commands act on.
type session struct {
	ctx     command.Context
	history *router.History
	sink    *notify.Collector
}

// newSession builds the command context for a request. The location comes from
// path, explicit document and collection params override what the route
// implies.
func (s *Server) newSession(r *http.Request, p ContextParams) session {
	path := p.Path
	if path == "" {
		path = router.HomePath()
	}
	history := router.New(path)
	sink := &notify.Collector{}

	ctx := s.base
	ctx.Router = history
	ctx.Notifier = sink
	ctx.Dialogs = sink
	ctx = ctx.AtLocation(history.Location())

	if p.Team != "" {
		ctx.CurrentTeamID = p.Team
	}
	if p.Document != "" {
		ctx = ctx.WithActiveDocument(p.Document)
		if doc, ok := ctx.ActiveDocument(); ok && p.Collection == "" {
			ctx = ctx.WithActiveCollection(doc.CollectionID)
		}
	}
	if p.Collection != "" {
		ctx = ctx.WithActiveCollection(p.Collection)
	}
	if p.Sidebar != "" {
		ctx.SidebarContext = p.Sidebar
	}

	locale := p.Locale
	if locale == "" {
		locale = r.Header.Get("Accept-Language")
	}
	if locale != "" {
		ctx.Locale = i18n.Match(locale)
	}

	return session{ctx: ctx, history: history, sink: sink}
}

// CommandView is the JSON shape of a command.
type CommandView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Section  string   `json:"section,omitempty"`
	Icon     string   `json:"icon,omitempty"`
	Shortcut []string `json:"shortcut,omitempty"`
	Kind     string   `json:"kind"`
}

func commandViews(ctx command.Context, cmds []*command.Command) []CommandView {
	out := make([]CommandView, len(cmds))
	for i, c := range cmds {
		out[i] = CommandView{
			ID:       c.ID,
			Name:     c.DisplayName(ctx),
			Section:  c.Section.Label(ctx),
			Icon:     c.Icon,
			Shortcut: c.Shortcut,
			Kind:     c.Kind().String(),
		}
	}
	return out
}

func (s *Server) listCommands(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession(r, paramsFromQuery(r))
	api.JSON(w, r, http.StatusOK, commandViews(sess.ctx, s.registry.ResolveVisible(sess.ctx)))
}

func (s *Server) searchCommands(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession(r, paramsFromQuery(r))
	query := r.URL.Query().Get("q")
	ctx := sess.ctx
	if strings.TrimSpace(query) != "" {
		ctx = ctx.WithArg("query", query)
	}
	api.JSON(w, r, http.StatusOK, commandViews(ctx, s.registry.Search(ctx, query)))
}

func (s *Server) listChildren(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession(r, paramsFromQuery(r))
	children, err := s.registry.Children(chi.URLParam(r, "CommandID"), sess.ctx)
	if err != nil {
		api.Error(w, r, api.Status(err), err)
		return
	}
	api.JSON(w, r, http.StatusOK, commandViews(sess.ctx, children))
}

// DispatchRequest is the body of a dispatch call.
type DispatchRequest struct {
	Context ContextParams     `json:"context"`
	Args    map[string]string `json:"args"`
}

// DispatchResponse reports what a command did.
type DispatchResponse struct {
	OK            bool                  `json:"ok"`
	Notifications []notify.Notification `json:"notifications"`
	Location      router.Location       `json:"location"`
	Modals        []command.Modal       `json:"modals"`
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := api.Decode(r.Body, &req); err != nil {
		api.Error(w, r, http.StatusBadRequest, err)
		return
	}

	id := chi.URLParam(r, "CommandID")
	sess := s.newSession(r, req.Context)
	ctx := sess.ctx
	if len(req.Args) > 0 {
		ctx = ctx.WithArgs(req.Args)
	}

	if err := s.registry.Dispatch(r.Context(), id, ctx); err != nil {
		var herr *command.HandlerError
		if errors.As(err, &herr) {
			msg := herr.UserMessage()
			if msg == "" {
				msg = ctx.T("error.unknown")
			}
			api.Error(w, r, http.StatusUnprocessableEntity, api.Friendly(err, "%s", msg))
			return
		}
		api.Error(w, r, api.Status(err), err)
		return
	}

	api.JSON(w, r, http.StatusOK, DispatchResponse{
		OK:            true,
		Notifications: orEmpty(sess.sink.Notifications()),
		Location:      sess.history.Location(),
		Modals:        orEmpty(sess.sink.Modals()),
	})
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession(r, paramsFromQuery(r))
	if sess.ctx.Documents == nil {
		api.JSON(w, r, http.StatusOK, []entity.Document{})
		return
	}

	docs := []entity.Document{}
	for _, doc := range sess.ctx.Documents.OrderedData() {
		if readable(sess.ctx, doc.ID) {
			docs = append(docs, doc)
		}
	}
	api.JSON(w, r, http.StatusOK, docs)
}

func (s *Server) showDocument(w http.ResponseWriter, r *http.Request) {
	sess := s.newSession(r, paramsFromQuery(r))
	id := chi.URLParam(r, "DocumentID")

	var (
		doc entity.Document
		ok  bool
	)
	if sess.ctx.Documents != nil {
		doc, ok = sess.ctx.Documents.Get(id)
	}
	if !ok || !readable(sess.ctx, id) {
		api.Error(w, r, http.StatusNotFound, api.Friendly(nil, "document %s not found", id))
		return
	}
	api.JSON(w, r, http.StatusOK, doc)
}

// readable reports whether the current user may read the document. Without
// a policy checker everything is readable.
func readable(ctx command.Context, id string) bool {
	return ctx.Policies == nil || ctx.Can(id, entity.AbilityRead)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
