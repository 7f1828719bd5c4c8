package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/notify"
	"github.com/Cyclone1070/folio/internal/router"
	"github.com/Cyclone1070/folio/internal/server"
	"github.com/Cyclone1070/folio/internal/ui"
	"github.com/Cyclone1070/folio/internal/ui/services"
	"github.com/Cyclone1070/folio/internal/ui/views"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Command palette for a document workspace",
		Long: `folio opens a document workspace behind a command palette.

Without a subcommand it starts the interactive palette. The workspace is
read from --workspace, the workspace.file config key or FOLIO_WORKSPACE;
without one the built-in demo workspace is used.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ~/.config/folio/config.json)")
	root.PersistentFlags().StringVarP(&opts.workspacePath, "workspace", "w", "", "workspace seed file (TOML)")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "interface language, e.g. en or de")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newTUICmd(opts),
		newServeCmd(opts),
		newCommandsCmd(opts),
		newRunCmd(opts),
	)
	return root
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive command palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere
	logOut := io.Discard
	if cfg.UI.LogFile != "" {
		f, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a, err := newApp(cfg, opts, logger, clipboard.WriteAll)
	if err != nil {
		return err
	}

	views.SetTheme(cfg.UI.ColorPrimary, cfg.UI.ColorMuted, cfg.UI.ColorError, cfg.UI.ColorSuccess)

	userInterface := ui.NewUI(ui.NewUIChannels(), ui.Dependencies{
		Registry:        a.registry,
		Base:            a.baseContext(),
		History:         router.New(router.HomePath()),
		ShortcutTimeout: time.Duration(cfg.UI.ShortcutTimeoutMs) * time.Millisecond,
		PaletteHeight:   cfg.UI.PaletteHeight,
		Logger:          logger,
	}, services.NewGlamourRenderer(""), services.DotSpinner)

	if err := userInterface.Start(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the command API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			if opts.verbose {
				logger = stderrLogger(cmd.ErrOrStderr(), true)
			}
			a, err := newApp(cfg, opts, logger, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api := server.New(a.registry, a.baseContext(), server.WithLogger(logger))
			return server.ListenAndServe(ctx, server.NewHTTPServer(cfg.Server, api), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// position are the flags that place a one-shot command in the workspace.
type position struct {
	document   string
	collection string
	path       string
}

func (p *position) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.document, "document", "d", "", "active document id")
	cmd.Flags().StringVarP(&p.collection, "collection", "c", "", "active collection id")
	cmd.Flags().StringVar(&p.path, "path", "", "current location (default: the document or /home)")
}

// context positions base the way the palette would when p's location is on
// screen.
func (p *position) context(base command.Context, history *router.History) command.Context {
	ctx := base
	ctx.Router = history
	ctx = ctx.AtLocation(history.Location())
	if p.document != "" {
		ctx = ctx.WithActiveDocument(p.document)
		if doc, ok := ctx.ActiveDocument(); ok {
			ctx = ctx.WithActiveCollection(doc.CollectionID)
		}
	}
	if p.collection != "" {
		ctx = ctx.WithActiveCollection(p.collection)
	}
	return ctx
}

func (p *position) start(base command.Context) string {
	if p.path != "" {
		return p.path
	}
	if p.document != "" && base.Documents != nil {
		if doc, ok := base.Documents.Get(p.document); ok {
			return doc.URL()
		}
	}
	return router.HomePath()
}

func newCommandsCmd(opts *rootOptions) *cobra.Command {
	var (
		pos   position
		query string
	)
	cmd := &cobra.Command{
		Use:   "commands [group]",
		Short: "List the commands available at a location",
		Long: `Lists the visible commands, or the visible children of a group.

Examples:
  folio commands
  folio commands --document runbook
  folio commands openDocument
  folio commands --query star --document runbook`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a, err := newApp(cfg, opts, stderrLogger(cmd.ErrOrStderr(), opts.verbose), nil)
			if err != nil {
				return err
			}

			base := a.baseContext()
			ctx := pos.context(base, router.New(pos.start(base)))

			var cmds []*command.Command
			switch {
			case len(args) == 1:
				children, err := a.registry.Children(args[0], ctx)
				if err != nil {
					return err
				}
				cmds = command.Filter(ctx, children, query)
			case query != "":
				ctx = ctx.WithArg("query", query)
				cmds = a.registry.Search(ctx, query)
			default:
				cmds = a.registry.ResolveVisible(ctx)
			}

			fmt.Fprintln(cmd.OutOrStdout(), commandTable(ctx, cmds))
			return nil
		},
	}
	pos.register(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", "", "fuzzy filter")
	return cmd
}

func commandTable(ctx command.Context, cmds []*command.Command) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "SECTION", "KIND", "SHORTCUT")
	for _, c := range cmds {
		t.Row(c.ID, c.DisplayName(ctx), c.Section.Label(ctx), c.Kind().String(), strings.Join(c.Shortcut, " "))
	}
	return t.String()
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		pos  position
		args map[string]string
	)
	cmd := &cobra.Command{
		Use:   "run <command-id>",
		Short: "Run one command and print what it did",
		Long: `Runs a command against the workspace and prints its notifications,
dialogs and the location it navigated to.

Examples:
  folio run starDocument --document welcome
  folio run duplicateDocument --document runbook --arg title="Runbook v2"
  folio run downloadDocumentAsHTML --document runbook`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			cfg, err := loadConfig(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger := stderrLogger(cmd.ErrOrStderr(), opts.verbose)
			a, err := newApp(cfg, opts, logger, nil)
			if err != nil {
				return err
			}

			base := a.baseContext()
			history := router.New(pos.start(base))
			sink := &notify.Collector{}
			ctx := pos.context(base, history)
			ctx.Notifier = notify.Tee{sink, notify.Logger{Logger: logger}}
			ctx.Dialogs = sink
			ctx.Renderer = services.NewGlamourRenderer("notty")
			if len(args) > 0 {
				ctx = ctx.WithArgs(args)
			}

			before := history.Location()
			dispatchErr := a.registry.Dispatch(context.Background(), argv[0], ctx)
			printOutcome(cmd.OutOrStdout(), sink, before, history.Location())
			return dispatchErr
		},
	}
	pos.register(cmd)
	cmd.Flags().StringToStringVar(&args, "arg", nil, "command argument as key=value (repeatable)")
	return cmd
}

func printOutcome(w io.Writer, sink *notify.Collector, before, after router.Location) {
	for _, n := range sink.Notifications() {
		switch n.Kind {
		case notify.KindSuccess:
			fmt.Fprintf(w, "✔ %s\n", n.Message)
		case notify.KindError:
			fmt.Fprintf(w, "✘ %s\n", n.Message)
		case notify.KindLoading:
			fmt.Fprintf(w, "… %s\n", n.Message)
		}
	}
	for _, m := range sink.Modals() {
		fmt.Fprintf(w, "── %s ──\n%s\n", m.Title, m.Content)
	}
	if after.String() != before.String() {
		fmt.Fprintf(w, "→ %s\n", after.String())
	}
}
