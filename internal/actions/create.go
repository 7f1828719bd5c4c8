package actions

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/importer"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/Cyclone1070/folio/internal/unique"
)

// OpenDocumentChildPrefix prefixes the ids of the openDocument children.
const OpenDocumentChildPrefix = "openDocument:"

type openable struct {
	id    string
	title string
	url   string
	icon  string
	color string
}

func openDocument() *command.Command {
	return &command.Command{
		ID:            "openDocument",
		Name:          command.Translated("command.openDocument"),
		AnalyticsName: "Open document",
		Section:       command.SectionDocument,
		Shortcut:      []string{"o", "d"},
		Keywords:      "go to",
		Icon:          "document",
		Children:      openDocumentChildren,
	}
}

// openDocumentChildren lists the known documents followed by the top level of
// every collection tree, keeping the first entry per id.
func openDocumentChildren(ctx command.Context) []*command.Command {
	var items []openable
	if ctx.Documents != nil {
		for _, d := range ctx.Documents.OrderedData() {
			items = append(items, openable{id: d.ID, title: d.Title, url: d.URL(), icon: d.Icon, color: d.Color})
		}
	}
	if ctx.Collections != nil {
		for _, root := range ctx.Collections.NavigationNodes() {
			for _, n := range root.Children {
				items = append(items, openable{id: n.ID, title: n.Title, url: n.URL, icon: n.Icon, color: n.Color})
			}
		}
	}
	items = unique.By(items, func(o openable) string { return o.id })

	children := make([]*command.Command, 0, len(items))
	for _, item := range items {
		title := item.title
		if title == "" {
			title = ctx.T("document.untitled")
		}
		icon := item.icon
		if icon == "" {
			icon = "document"
		}
		to := item.url
		children = append(children, &command.Command{
			ID:      OpenDocumentChildPrefix + item.id,
			Name:    command.Text(title),
			Section: command.SectionDocument,
			Icon:    icon,
			Perform: func(_ context.Context, ctx command.Context) error {
				push(ctx, to, nil)
				return nil
			},
		})
	}
	return children
}

func teamCanCreate(ctx command.Context) bool {
	return ctx.CurrentTeamID != "" && ctx.Can(ctx.CurrentTeamID, entity.AbilityCreateDocument)
}

func createDocument() *command.Command {
	return &command.Command{
		ID:            "createDocument",
		Name:          command.Translated("command.createDocument"),
		AnalyticsName: "New document",
		Section:       command.SectionDocument,
		Shortcut:      []string{"n"},
		Keywords:      "create",
		Icon:          "new-document",
		Visible: func(ctx command.Context) bool {
			if ctx.ActiveCollectionID != "" && !ctx.Can(ctx.ActiveCollectionID, entity.AbilityCreateDocument) {
				return false
			}
			return teamCanCreate(ctx)
		},
		Perform: func(_ context.Context, ctx command.Context) error {
			push(ctx, router.NewDocumentPath(ctx.ActiveCollectionID, nil), sidebarState(ctx))
			return nil
		},
	}
}

func createDraftDocument() *command.Command {
	return &command.Command{
		ID:            "createDraftDocument",
		Name:          command.Translated("command.createDraftDocument"),
		AnalyticsName: "New draft",
		Section:       command.SectionDocument,
		Keywords:      "create document",
		Icon:          "new-document",
		Visible:       teamCanCreate,
		Perform: func(_ context.Context, ctx command.Context) error {
			push(ctx, router.NewDocumentPath("", nil), sidebarState(ctx))
			return nil
		},
	}
}

func createDocumentFromTemplate() *command.Command {
	return &command.Command{
		ID:            "createDocumentFromTemplate",
		Name:          command.Translated("command.createDocumentFromTemplate"),
		AnalyticsName: "New from template",
		Section:       command.SectionDocument,
		Keywords:      "create",
		Icon:          "new-document",
		Visible: func(ctx command.Context) bool {
			doc, ok := ctx.ActiveDocument()
			if ctx.CurrentTeamID == "" || !ok || !doc.IsTemplate || doc.IsDraft() || doc.IsDeleted {
				return false
			}
			if ctx.ActiveCollectionID != "" {
				return ctx.Can(ctx.ActiveCollectionID, entity.AbilityCreateDocument)
			}
			return ctx.Can(ctx.CurrentTeamID, entity.AbilityCreateDocument)
		},
		Perform: func(_ context.Context, ctx command.Context) error {
			params := url.Values{"templateId": {ctx.ActiveDocumentID}}
			push(ctx, router.NewDocumentPath(ctx.ActiveCollectionID, params), sidebarState(ctx))
			return nil
		},
	}
}

type importArgs struct {
	Path string `mapstructure:"path"`
}

func importDocument() *command.Command {
	return &command.Command{
		ID:            "importDocument",
		Name:          command.Translated("command.importDocument"),
		AnalyticsName: "Import document",
		Section:       command.SectionDocument,
		Keywords:      "upload markdown",
		Icon:          "import",
		Visible: func(ctx command.Context) bool {
			if ctx.ActiveCollectionID != "" {
				return ctx.Can(ctx.ActiveCollectionID, entity.AbilityCreateDocument)
			}
			return teamCanCreate(ctx)
		},
		Perform: func(c context.Context, ctx command.Context) error {
			args, err := decodeArgs[importArgs](ctx)
			if err != nil {
				return err
			}
			if strings.TrimSpace(args.Path) == "" {
				return errors.New(ctx.T("error.noImportPath"))
			}

			done := loading(ctx, "toast.importing")
			drafts, err := importer.ImportPath(args.Path)
			if err != nil {
				done()
				return err
			}
			docs, err := ctx.Documents.Import(c, ctx.ActiveCollectionID, drafts)
			done()
			if err != nil {
				return err
			}

			success(ctx, "toast.imported", len(docs))
			if len(docs) == 1 {
				push(ctx, docs[0].URL(), sidebarState(ctx))
			}
			return nil
		},
	}
}

func createTemplateFromDocument() *command.Command {
	return &command.Command{
		ID:            "createTemplateFromDocument",
		Name:          command.Translated("command.createTemplateFromDocument"),
		AnalyticsName: "Templatize document",
		Section:       command.SectionActiveDocument,
		Keywords:      "template",
		Icon:          "shapes",
		Visible: func(ctx command.Context) bool {
			if ctx.CurrentTeamID == "" || !ctx.Can(ctx.CurrentTeamID, entity.AbilityCreateTemplate) {
				return false
			}
			return activeDocumentCan(entity.AbilityUpdate, func(d entity.Document) bool {
				return !d.IsTemplate && !d.IsDraft() && !d.IsDeleted
			})(ctx)
		},
		Perform: func(c context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			tpl, err := ctx.Documents.Templatize(c, doc.ID)
			if err != nil {
				return err
			}
			success(ctx, "toast.templatized")
			push(ctx, tpl.URL(), sidebarState(ctx))
			return nil
		},
	}
}
