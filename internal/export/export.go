// Package export renders documents into downloadable files.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for formats Document does not know.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// File is a rendered export.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// FrontMatter is the YAML header written above exported markdown. The importer
// reads the same structure back.
type FrontMatter struct {
	ID          string    `yaml:"id,omitempty"`
	Title       string    `yaml:"title"`
	Icon        string    `yaml:"icon,omitempty"`
	Color       string    `yaml:"color,omitempty"`
	Template    bool      `yaml:"template,omitempty"`
	PublishedAt time.Time `yaml:"published_at,omitempty"`
	UpdatedAt   time.Time `yaml:"updated_at,omitempty"`
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Document renders doc in the requested format.
func Document(doc entity.Document, format entity.ExportFormat) (File, error) {
	name := fileName(doc) + format.Extension()

	switch format {
	case entity.FormatMarkdown:
		data, err := Markdown(doc)
		if err != nil {
			return File{}, err
		}
		return File{Name: name, ContentType: "text/markdown; charset=utf-8", Data: data}, nil
	case entity.FormatHTML:
		data, err := HTML(doc)
		if err != nil {
			return File{}, err
		}
		return File{Name: name, ContentType: "text/html; charset=utf-8", Data: data}, nil
	case entity.FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return File{}, fmt.Errorf("encode json: %w", err)
		}
		return File{Name: name, ContentType: "application/json", Data: data}, nil
	default:
		return File{}, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

// Markdown writes the document text below a YAML front matter block.
func Markdown(doc entity.Document) ([]byte, error) {
	fm, err := yaml.Marshal(FrontMatter{
		ID:          doc.ID,
		Title:       doc.Title,
		Icon:        doc.Icon,
		Color:       doc.Color,
		Template:    doc.IsTemplate,
		PublishedAt: doc.PublishedAt,
		UpdatedAt:   doc.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString(doc.Text)
	if len(doc.Text) > 0 && doc.Text[len(doc.Text)-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// HTML converts the document text into a standalone HTML page.
func HTML(doc entity.Document) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(doc.Text), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var buf bytes.Buffer
	title := html.EscapeString(doc.Title)
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n<h1>%s</h1>\n", title, title)
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func fileName(doc entity.Document) string {
	if slug := entity.Slugify(doc.Title); slug != "" {
		return slug
	}
	return doc.ID
}
