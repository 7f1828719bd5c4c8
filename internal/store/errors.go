package store

import (
	"errors"

	"github.com/Cyclone1070/folio/internal/export"
)

var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionRequired = errors.New("a collection is required")
	ErrAlreadyPublished   = errors.New("document is already published")
	ErrNotPublished       = errors.New("document is not published")
	ErrDuplicateID        = errors.New("id already exists")
	ErrUnsupportedFormat  = export.ErrUnsupportedFormat
)
