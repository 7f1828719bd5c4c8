// Package actions defines the document commands offered by every surface.
package actions

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/mitchellh/mapstructure"
)

// ErrNotAllowed is returned when an argument points somewhere the user has no
// access to.
var ErrNotAllowed = errors.New("you do not have permission to do that")

// Options carries the environment the commands run in.
type Options struct {
	// DownloadDir receives exported files.
	DownloadDir string
	// BaseURL prefixes copied links.
	BaseURL string
	// PrintWidth is the word-wrap width of the print preview.
	PrintWidth int
	// Clipboard receives copied links. Nil skips the clipboard.
	Clipboard func(text string) error
	// WriteFile stores downloads. Defaults to os.WriteFile after creating
	// the directory.
	WriteFile func(path string, data []byte) error
}

func (o Options) withDefaults() Options {
	if o.DownloadDir == "" {
		o.DownloadDir = "."
	}
	if o.PrintWidth <= 0 {
		o.PrintWidth = 80
	}
	if o.WriteFile == nil {
		o.WriteFile = writeFile
	}
	return o
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// All returns every document command in menu order.
func All(opts Options) []*command.Command {
	opts = opts.withDefaults()
	return []*command.Command{
		openDocument(),
		createDocument(),
		createDraftDocument(),
		createDocumentFromTemplate(),
		starDocument(),
		unstarDocument(),
		publishDocument(),
		unpublishDocument(),
		subscribeDocument(),
		unsubscribeDocument(),
		downloadDocument(opts),
		duplicateDocument(),
		pinDocument(),
		unpinDocument(),
		searchDocuments(),
		printDocument(opts),
		importDocument(),
		createTemplateFromDocument(),
		openRandomDocument(),
		openDocumentHistory(),
		openDocumentInsights(),
		copyDocumentLink(opts),
	}
}

// Register adds All(opts) to the registry.
func Register(r *command.Registry, opts Options) error {
	return r.Register(All(opts)...)
}

// validator is implemented by argument structs that check themselves.
type validator interface {
	Validate() error
}

// decodeArgs maps the invocation arguments onto T.
func decodeArgs[T any](ctx command.Context) (T, error) {
	var args T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &args,
	})
	if err != nil {
		return args, err
	}
	if err := dec.Decode(ctx.Args); err != nil {
		return args, fmt.Errorf("invalid arguments: %w", err)
	}
	if v, ok := any(&args).(validator); ok {
		if err := v.Validate(); err != nil {
			return args, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	return args, nil
}

// sidebarState is the router state that keeps the sidebar section open
// across navigation.
func sidebarState(ctx command.Context) map[string]string {
	if ctx.SidebarContext == "" {
		return nil
	}
	return map[string]string{"sidebarContext": ctx.SidebarContext}
}

// activeDocumentCan is visible when there is an active document on which the
// user holds ability and which passes every extra check.
func activeDocumentCan(ability string, checks ...func(entity.Document) bool) func(command.Context) bool {
	return func(ctx command.Context) bool {
		doc, ok := ctx.ActiveDocument()
		if !ok || !ctx.Can(doc.ID, ability) {
			return false
		}
		for _, check := range checks {
			if !check(doc) {
				return false
			}
		}
		return true
	}
}

// requireActiveDocument is the perform-time lookup of the active document.
func requireActiveDocument(ctx command.Context) (entity.Document, error) {
	doc, ok := ctx.ActiveDocument()
	if !ok {
		return entity.Document{}, fmt.Errorf("document %s not found", ctx.ActiveDocumentID)
	}
	return doc, nil
}

func intN(ctx command.Context, n int) int {
	if ctx.Rand != nil {
		return ctx.Rand.IntN(n)
	}
	return rand.IntN(n)
}

func success(ctx command.Context, key string, args ...any) {
	if ctx.Notifier != nil {
		ctx.Notifier.Success(ctx.T(key, args...))
	}
}

func loading(ctx command.Context, key string) func() {
	if ctx.Notifier == nil {
		return func() {}
	}
	return ctx.Notifier.Loading(ctx.T(key))
}

func openModal(ctx command.Context, m command.Modal) {
	if ctx.Dialogs != nil {
		ctx.Dialogs.OpenModal(m)
	}
}

func push(ctx command.Context, path string, state map[string]string) {
	if ctx.Router != nil {
		ctx.Router.Push(path, state)
	}
}
