package actions

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/router"
)

func notStarred(d entity.Document) bool    { return !d.IsStarred }
func starred(d entity.Document) bool       { return d.IsStarred }
func draft(d entity.Document) bool         { return d.IsDraft() }
func published(d entity.Document) bool     { return !d.IsDraft() }
func notSubscribed(d entity.Document) bool { return !d.IsSubscribed }

// mutate builds a perform that applies op to the active document and reports
// success with the message stored under key.
func mutate(op func(command.DocumentStore, context.Context, string) error, key string) func(context.Context, command.Context) error {
	return func(c context.Context, ctx command.Context) error {
		doc, err := requireActiveDocument(ctx)
		if err != nil {
			return err
		}
		if err := op(ctx.Documents, c, doc.ID); err != nil {
			return err
		}
		success(ctx, key)
		return nil
	}
}

func starDocument() *command.Command {
	return &command.Command{
		ID:            "starDocument",
		Name:          command.Translated("command.starDocument"),
		AnalyticsName: "Star document",
		Section:       command.SectionActiveDocument,
		Keywords:      "favorite bookmark",
		Icon:          "star",
		Visible:       activeDocumentCan(entity.AbilityStar, notStarred),
		Perform:       mutate(command.DocumentStore.Star, "toast.starred"),
	}
}

func unstarDocument() *command.Command {
	return &command.Command{
		ID:            "unstarDocument",
		Name:          command.Translated("command.unstarDocument"),
		AnalyticsName: "Unstar document",
		Section:       command.SectionActiveDocument,
		Keywords:      "unfavorite",
		Icon:          "unstar",
		Visible:       activeDocumentCan(entity.AbilityUnstar, starred),
		Perform:       mutate(command.DocumentStore.Unstar, "toast.unstarred"),
	}
}

type publishArgs struct {
	CollectionID string `mapstructure:"collectionId"`
}

func publishDocument() *command.Command {
	return &command.Command{
		ID:            "publishDocument",
		Name:          command.Translated("command.publishDocument"),
		AnalyticsName: "Publish document",
		Section:       command.SectionActiveDocument,
		Icon:          "publish",
		Visible:       activeDocumentCan(entity.AbilityPublish, draft),
		Perform: func(c context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			args, err := decodeArgs[publishArgs](ctx)
			if err != nil {
				return err
			}

			target := cmp.Or(args.CollectionID, doc.CollectionID)
			if target == "" {
				openModal(ctx, publishPicker(ctx))
				return nil
			}
			if args.CollectionID != "" && !ctx.Can(args.CollectionID, entity.AbilityCreateDocument) {
				return fmt.Errorf("publish into %s: %w", args.CollectionID, ErrNotAllowed)
			}
			if err := ctx.Documents.Publish(c, doc.ID, target); err != nil {
				return err
			}
			success(ctx, "toast.published")
			return nil
		},
	}
}

// publishPicker lists the collections the document can be published into.
func publishPicker(ctx command.Context) command.Modal {
	var lines []string
	if ctx.Collections != nil {
		for _, col := range ctx.Collections.All() {
			if ctx.Can(col.ID, entity.AbilityCreateDocument) {
				lines = append(lines, fmt.Sprintf("- %s (%s)", col.Name, col.ID))
			}
		}
	}
	content := ctx.T("modal.publish.none")
	if len(lines) > 0 {
		content = ctx.T("modal.publish.body") + "\n\n" + strings.Join(lines, "\n")
	}
	return command.Modal{Title: ctx.T("modal.publish.title"), Content: content}
}

func unpublishDocument() *command.Command {
	return &command.Command{
		ID:            "unpublishDocument",
		Name:          command.Translated("command.unpublishDocument"),
		AnalyticsName: "Unpublish document",
		Section:       command.SectionActiveDocument,
		Icon:          "unpublish",
		Visible:       activeDocumentCan(entity.AbilityUnpublish, published),
		Perform:       mutate(command.DocumentStore.Unpublish, "toast.unpublished"),
	}
}

// documentCollection returns the collection the document belongs to.
func documentCollection(ctx command.Context, doc entity.Document) (entity.Collection, bool) {
	if doc.CollectionID == "" || ctx.Collections == nil {
		return entity.Collection{}, false
	}
	return ctx.Collections.Get(doc.CollectionID)
}

func subscribeDocument() *command.Command {
	return &command.Command{
		ID:            "subscribeDocument",
		Name:          command.Translated("command.subscribeDocument"),
		AnalyticsName: "Subscribe to document",
		Section:       command.SectionActiveDocument,
		Keywords:      "notify follow",
		Icon:          "subscribe",
		Visible: func(ctx command.Context) bool {
			return activeDocumentCan(entity.AbilitySubscribe, notSubscribed, func(d entity.Document) bool {
				col, ok := documentCollection(ctx, d)
				return !ok || !col.IsSubscribed
			})(ctx)
		},
		Perform: mutate(command.DocumentStore.Subscribe, "toast.subscribed"),
	}
}

func unsubscribeDocument() *command.Command {
	return &command.Command{
		ID:            "unsubscribeDocument",
		Name:          command.Translated("command.unsubscribeDocument"),
		AnalyticsName: "Unsubscribe from document",
		Section:       command.SectionActiveDocument,
		Keywords:      "mute unfollow",
		Icon:          "unsubscribe",
		// A subscribed collection shows the command whatever the document's
		// own state and the user's abilities.
		Visible: func(ctx command.Context) bool {
			doc, ok := ctx.ActiveDocument()
			if !ok {
				return false
			}
			col, hasCollection := documentCollection(ctx, doc)
			return (hasCollection && col.IsSubscribed) ||
				(doc.IsSubscribed && ctx.Can(doc.ID, entity.AbilityUnsubscribe))
		},
		Perform: mutate(command.DocumentStore.Unsubscribe, "toast.unsubscribed"),
	}
}

func downloadDocument(opts Options) *command.Command {
	children := make([]*command.Command, 0, len(entity.Formats))
	for _, format := range entity.Formats {
		children = append(children, downloadAs(opts, format))
	}
	return &command.Command{
		ID:            "downloadDocument",
		Name:          command.Translated("command.downloadDocument"),
		AnalyticsName: "Download document",
		Section:       command.SectionActiveDocument,
		Keywords:      "export",
		Icon:          "download",
		Visible:       activeDocumentCan(entity.AbilityDownload),
		Children:      command.Static(children...),
	}
}

var formatIDs = map[entity.ExportFormat]string{
	entity.FormatMarkdown: "downloadDocumentAsMarkdown",
	entity.FormatHTML:     "downloadDocumentAsHTML",
	entity.FormatJSON:     "downloadDocumentAsJSON",
}

func downloadAs(opts Options, format entity.ExportFormat) *command.Command {
	id := formatIDs[format]
	return &command.Command{
		ID:            id,
		Name:          command.Translated("command." + id),
		AnalyticsName: "Download document",
		Section:       command.SectionActiveDocument,
		Keywords:      string(format),
		Icon:          "download",
		Visible:       activeDocumentCan(entity.AbilityDownload),
		Perform: func(c context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			done := loading(ctx, "toast.downloading")
			file, err := ctx.Documents.Download(c, doc.ID, format)
			if err != nil {
				done()
				return err
			}
			path := filepath.Join(opts.DownloadDir, file.Name)
			err = opts.WriteFile(path, file.Data)
			done()
			if err != nil {
				return fmt.Errorf("save %s: %w", file.Name, err)
			}
			success(ctx, "toast.downloaded", path)
			return nil
		},
	}
}

type duplicateArgs struct {
	Title     string `mapstructure:"title"`
	Recursive bool   `mapstructure:"recursive"`
	Publish   bool   `mapstructure:"publish"`
}

func duplicateDocument() *command.Command {
	return &command.Command{
		ID:            "duplicateDocument",
		Name:          command.Translated("command.duplicateDocument"),
		AnalyticsName: "Duplicate document",
		Section:       command.SectionActiveDocument,
		Keywords:      "copy",
		Icon:          "duplicate",
		Visible:       activeDocumentCan(entity.AbilityDuplicate),
		Perform: func(c context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			args, err := decodeArgs[duplicateArgs](ctx)
			if err != nil {
				return err
			}
			cp, err := ctx.Documents.Duplicate(c, doc.ID, entity.DuplicateOptions{
				Title:     args.Title,
				Publish:   args.Publish,
				Recursive: args.Recursive,
			})
			if err != nil {
				return err
			}
			success(ctx, "toast.duplicated")
			push(ctx, cp.URL(), sidebarState(ctx))
			return nil
		},
	}
}

func pinDocumentToCollection() *command.Command {
	return &command.Command{
		ID:            "pinDocumentToCollection",
		Name:          command.Translated("command.pinDocumentToCollection"),
		AnalyticsName: "Pin document to collection",
		Section:       command.SectionActiveDocument,
		Icon:          "pin",
		Visible: func(ctx command.Context) bool {
			if ctx.ActiveCollectionID == "" {
				return false
			}
			return activeDocumentCan(entity.AbilityPinToCollection, func(d entity.Document) bool {
				return !d.IsPinnedTo(ctx.ActiveCollectionID)
			})(ctx)
		},
		Perform: func(c context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			if err := ctx.Documents.Pin(c, doc.ID, ctx.ActiveCollectionID); err != nil {
				return err
			}
			success(ctx, "toast.pinnedCollection")
			return nil
		},
	}
}

func pinDocumentToHome() *command.Command {
	return &command.Command{
		ID:            "pinDocumentToHome",
		Name:          command.Translated("command.pinDocumentToHome"),
		AnalyticsName: "Pin document to home",
		Section:       command.SectionActiveDocument,
		Icon:          "pin",
		Visible: func(ctx command.Context) bool {
			if ctx.CurrentTeamID == "" {
				return false
			}
			return activeDocumentCan(entity.AbilityPinToHome, func(d entity.Document) bool {
				return !d.PinnedToHome
			})(ctx)
		},
		Perform: func(c context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			if err := ctx.Documents.Pin(c, doc.ID, ""); err != nil {
				return err
			}
			success(ctx, "toast.pinnedHome")
			return nil
		},
	}
}

func pinDocument() *command.Command {
	children := []*command.Command{pinDocumentToCollection(), pinDocumentToHome()}
	return &command.Command{
		ID:            "pinDocument",
		Name:          command.Translated("command.pinDocument"),
		AnalyticsName: "Pin document",
		Section:       command.SectionActiveDocument,
		Icon:          "pin",
		Visible: func(ctx command.Context) bool {
			for _, c := range children {
				if c.IsVisible(ctx) {
					return true
				}
			}
			return false
		},
		Children: command.Static(children...),
	}
}

func unpinDocument() *command.Command {
	return &command.Command{
		ID:            "unpinDocument",
		Name:          command.Translated("command.unpinDocument"),
		AnalyticsName: "Unpin document",
		Section:       command.SectionActiveDocument,
		Icon:          "unpin",
		Visible:       activeDocumentCan(entity.AbilityUnpin, entity.Document.IsPinned),
		Perform:       mutate(command.DocumentStore.Unpin, "toast.unpinned"),
	}
}

func printDocument(opts Options) *command.Command {
	return &command.Command{
		ID:            "printDocument",
		Name:          command.Translated("command.printDocument"),
		AnalyticsName: "Print document",
		Section:       command.SectionActiveDocument,
		Icon:          "print",
		Visible:       activeDocumentCan(entity.AbilityDownload),
		Perform: func(_ context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			md := "# " + doc.Title + "\n\n" + doc.Text
			content := md
			if ctx.Renderer != nil {
				if content, err = ctx.Renderer.Render(md, opts.PrintWidth); err != nil {
					return fmt.Errorf("render %s: %w", doc.ID, err)
				}
			}
			openModal(ctx, command.Modal{Title: ctx.T("modal.print.title"), Content: content})
			return nil
		},
	}
}

func openDocumentHistory() *command.Command {
	return &command.Command{
		ID:            "openDocumentHistory",
		Name:          command.Translated("command.openDocumentHistory"),
		AnalyticsName: "Open document history",
		Section:       command.SectionActiveDocument,
		Keywords:      "revisions versions",
		Icon:          "history",
		Visible:       activeDocumentCan(entity.AbilityRead),
		Perform: func(_ context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			push(ctx, router.DocumentHistoryPath(doc.URL()), nil)
			return nil
		},
	}
}

func openDocumentInsights() *command.Command {
	return &command.Command{
		ID:            "openDocumentInsights",
		Name:          command.Translated("command.openDocumentInsights"),
		AnalyticsName: "Open document insights",
		Section:       command.SectionActiveDocument,
		Keywords:      "stats views",
		Icon:          "graph",
		Visible:       activeDocumentCan(entity.AbilityRead, published),
		Perform: func(_ context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			push(ctx, router.DocumentInsightsPath(doc.URL()), nil)
			return nil
		},
	}
}

func copyDocumentLink(opts Options) *command.Command {
	return &command.Command{
		ID:            "copyDocumentLink",
		Name:          command.Translated("command.copyDocumentLink"),
		AnalyticsName: "Copy document link",
		Section:       command.SectionActiveDocument,
		Keywords:      "share url clipboard",
		Icon:          "copy",
		Visible:       activeDocumentCan(entity.AbilityShare),
		Perform: func(_ context.Context, ctx command.Context) error {
			doc, err := requireActiveDocument(ctx)
			if err != nil {
				return err
			}
			link := strings.TrimSuffix(opts.BaseURL, "/") + doc.URL()
			if opts.Clipboard != nil {
				if err := opts.Clipboard(link); err != nil {
					return fmt.Errorf("copy link: %w", err)
				}
			}
			openModal(ctx, command.Modal{Title: ctx.T("modal.link.title"), Content: link})
			success(ctx, "toast.linkCopied")
			return nil
		},
	}
}
