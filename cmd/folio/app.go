package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Cyclone1070/folio/internal/actions"
	"github.com/Cyclone1070/folio/internal/command"
	"github.com/Cyclone1070/folio/internal/config"
	"github.com/Cyclone1070/folio/internal/i18n"
	"github.com/Cyclone1070/folio/internal/workspace"
	"golang.org/x/text/language"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath    string
	workspacePath string
	locale        string
	verbose       bool
}

// app holds the components every subcommand needs.
type app struct {
	cfg       *config.Config
	workspace *workspace.Workspace
	registry  *command.Registry
	locale    language.Tag
	logger    *slog.Logger
}

// loadConfig reads defaults, the config file and the environment. A missing
// or broken default config falls back to the defaults; an explicit --config
// must load.
func loadConfig(opts *rootOptions, stderr io.Writer) (*config.Config, error) {
	loader := config.NewLoader()
	if opts.configPath != "" {
		loader = loader.WithPath(opts.configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		if opts.configPath != "" {
			return nil, err
		}
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}
	return cfg, nil
}

func newApp(cfg *config.Config, opts *rootOptions, logger *slog.Logger, clipboard func(string) error) (*app, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ws, err := loadWorkspace(opts.workspacePath, cfg.Workspace.File)
	if err != nil {
		return nil, err
	}

	registry := command.NewRegistry(command.WithLogger(logger))
	err = actions.Register(registry, actions.Options{
		DownloadDir: cfg.Workspace.DownloadDir,
		BaseURL:     cfg.Workspace.BaseURL,
		PrintWidth:  cfg.UI.PrintWidth,
		Clipboard:   clipboard,
	})
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	locale := opts.locale
	if locale == "" {
		locale = cfg.UI.Locale
	}

	return &app{
		cfg:       cfg,
		workspace: ws,
		registry:  registry,
		locale:    i18n.Match(locale),
		logger:    logger,
	}, nil
}

// loadWorkspace loads the seed named by the flag or the config, or the
// built-in demo when neither names one.
func loadWorkspace(flagPath, configPath string) (*workspace.Workspace, error) {
	path := flagPath
	if path == "" {
		path = configPath
	}
	if path == "" {
		return workspace.Demo(), nil
	}
	ws, err := workspace.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	return ws, nil
}

// baseContext is the command context without location, notifier and dialogs.
func (a *app) baseContext() command.Context {
	return command.Context{
		CurrentTeamID: a.workspace.TeamID,
		Locale:        a.locale,
		Documents:     a.workspace.Documents(),
		Collections:   a.workspace.Collections(),
		Policies:      a.workspace.Policy,
	}
}

func stderrLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
