// Package i18n holds the localised strings shown by commands and surfaces.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale. Its messages back every other locale.
const BaseLocale = "en"

//go:embed locales/*.yaml
var embedded embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog is a set of locales loaded from YAML files.
type Catalog struct {
	builder   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

var defaultCatalog = mustLoad(embedded)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoad(fsys fs.FS) *Catalog {
	c, err := Load(fsys)
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads locales/*.yaml from fsys. The base locale must be present.
func Load(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	sort.Strings(paths)

	files := make(map[language.Tag]localeFile, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", p, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", p, err)
		}
		tag, err := language.Parse(strings.TrimSpace(f.Locale))
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", p, err)
		}
		files[tag] = f
	}

	base := language.MustParse(BaseLocale)
	baseFile, ok := files[base]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	b := catalog.NewBuilder(catalog.Fallback(base))
	// Und sits at the end of every tag's parent chain, so registering the base
	// messages there gives untranslated keys an English fallback.
	for key, msg := range baseFile.Messages {
		if err := b.SetString(language.Und, key, msg); err != nil {
			return nil, fmt.Errorf("register %s: %w", key, err)
		}
	}

	supported := []language.Tag{base}
	for tag, f := range files {
		if tag != base {
			supported = append(supported, tag)
		}
		for key, msg := range f.Messages {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", tag, key, err)
			}
		}
	}
	sort.Slice(supported[1:], func(i, j int) bool {
		return supported[i+1].String() < supported[j+1].String()
	})

	return &Catalog{
		builder:   b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}, nil
}

// Supported lists the locales of the catalog, base locale first.
func (c *Catalog) Supported() []language.Tag {
	out := make([]language.Tag, len(c.supported))
	copy(out, c.supported)
	return out
}

// Match picks the best supported tag for a locale string such as
// "de-AT" or an Accept-Language header. Unparseable input yields the base.
func (c *Catalog) Match(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return c.supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return c.supported[0]
	}
	_, index, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.supported[0]
	}
	return c.supported[index]
}

// Printer returns a message printer for tag.
func (c *Catalog) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(c.builder))
}

// T formats the message stored under key.
func (c *Catalog) T(tag language.Tag, key string, args ...any) string {
	return c.Printer(tag).Sprintf(key, args...)
}

// T formats key with the default catalog.
func T(tag language.Tag, key string, args ...any) string {
	return defaultCatalog.T(tag, key, args...)
}

// Match resolves a locale string against the default catalog.
func Match(locale string) language.Tag {
	return defaultCatalog.Match(locale)
}
