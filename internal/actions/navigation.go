package actions

import (
	"context"
	"strings"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/entity"
	"github.com/Cyclone1070/folio/internal/router"
)

type searchArgs struct {
	Query string `mapstructure:"query"`
}

func searchDocuments() *command.Command {
	return &command.Command{
		ID: "searchDocuments",
		Name: func(ctx command.Context) string {
			if q := strings.TrimSpace(ctx.Arg("query")); q != "" {
				return ctx.T("command.searchDocumentsFor", q)
			}
			return ctx.T("command.searchDocuments")
		},
		AnalyticsName: "Search documents",
		Section:       command.SectionNavigation,
		Shortcut:      []string{"/"},
		Keywords:      "find",
		Icon:          "search",
		Visible: func(ctx command.Context) bool {
			return ctx.Location.Pathname != router.SearchPath("")
		},
		Perform: func(_ context.Context, ctx command.Context) error {
			args, err := decodeArgs[searchArgs](ctx)
			if err != nil {
				return err
			}
			push(ctx, router.SearchPath(strings.TrimSpace(args.Query)), nil)
			return nil
		},
	}
}

// randomCandidates lists every document in the collection trees except the
// active one.
func randomCandidates(ctx command.Context) []entity.NavigationNode {
	if ctx.Collections == nil {
		return nil
	}
	var out []entity.NavigationNode
	for _, root := range ctx.Collections.NavigationNodes() {
		entity.Walk(root.Children, func(n entity.NavigationNode) {
			if n.ID != ctx.ActiveDocumentID {
				out = append(out, n)
			}
		})
	}
	return out
}

func openRandomDocument() *command.Command {
	return &command.Command{
		ID:            "openRandomDocument",
		Name:          command.Translated("command.openRandomDocument"),
		AnalyticsName: "Open random document",
		Section:       command.SectionNavigation,
		Keywords:      "shuffle surprise",
		Icon:          "shuffle",
		Perform: func(_ context.Context, ctx command.Context) error {
			candidates := randomCandidates(ctx)
			if len(candidates) == 0 {
				return nil
			}
			push(ctx, candidates[intN(ctx, len(candidates))].URL, nil)
			return nil
		},
	}
}
