package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Route names.
const (
	RouteHome              = "home"
	RouteSearch            = "search"
	RouteTrash             = "trash"
	RouteCollection        = "collection"
	RouteNewDocument       = "new_document"
	RouteNewNestedDocument = "new_nested_document"
	RouteDocument          = "document"
	RouteDocumentHistory   = "document_history"
	RouteDocumentInsights  = "document_insights"
)

// Route is the result of matching a pathname against the known routes.
type Route struct {
	Name    string
	Pattern string
	Params  map[string]string
}

// DocumentID returns the document id encoded in the route, if any.
func (r Route) DocumentID() string {
	if slug, ok := r.Params["slug"]; ok {
		return DocumentIDFromSlug(slug)
	}
	return ""
}

// CollectionID returns the collection id encoded in the route, if any.
func (r Route) CollectionID() string {
	return r.Params["collectionID"]
}

var routes = map[string]string{
	"/home":                          RouteHome,
	"/search":                        RouteSearch,
	"/trash":                         RouteTrash,
	"/collection/{collectionID}":     RouteCollection,
	"/collection/{collectionID}/new": RouteNewDocument,
	"/doc/new":                       RouteNewDocument,
	"/doc/{slug}":                    RouteDocument,
	"/doc/{slug}/new":                RouteNewNestedDocument,
	"/doc/{slug}/history":            RouteDocumentHistory,
	"/doc/{slug}/insights":           RouteDocumentInsights,
}

var mux = func() *chi.Mux {
	m := chi.NewRouter()
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for pattern := range routes {
		m.Get(pattern, noop)
	}
	return m
}()

// Match resolves a pathname to a Route.
func Match(pathname string) (Route, bool) {
	rctx := chi.NewRouteContext()
	pattern := mux.Find(rctx, http.MethodGet, pathname)
	if pattern == "" {
		return Route{}, false
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}

	return Route{Name: routes[pattern], Pattern: pattern, Params: params}, true
}

// DocumentIDFromSlug extracts the id from a "title-slug-<id>" path segment.
func DocumentIDFromSlug(slug string) string {
	if len(slug) >= 36 {
		if id, err := uuid.Parse(slug[len(slug)-36:]); err == nil {
			return id.String()
		}
	}
	if i := strings.LastIndexByte(slug, '-'); i >= 0 {
		return slug[i+1:]
	}
	return slug
}

// HomePath is the landing page.
func HomePath() string {
	return "/home"
}

// SearchPath returns the search page, optionally pre-filled with a query.
func SearchPath(query string) string {
	if query == "" {
		return "/search"
	}
	return "/search?" + url.Values{"query": {query}}.Encode()
}

// NewDocumentPath returns the path that starts a new document, inside the
// given collection when collectionID is not empty.
func NewDocumentPath(collectionID string, params url.Values) string {
	path := "/doc/new"
	if collectionID != "" {
		path = "/collection/" + collectionID + "/new"
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return path
}

// DocumentHistoryPath returns the revision history of a document.
func DocumentHistoryPath(documentURL string) string {
	return strings.TrimSuffix(documentURL, "/") + "/history"
}

// DocumentInsightsPath returns the insights page of a document.
func DocumentInsightsPath(documentURL string) string {
	return strings.TrimSuffix(documentURL, "/") + "/insights"
}

// CollectionPath returns the path of a collection.
func CollectionPath(collectionID string) string {
	return "/collection/" + collectionID
}
