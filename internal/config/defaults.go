package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile,
// then via FOLIO_* environment variables.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Workspace WorkspaceConfig `json:"workspace"`
	UI        UIConfig        `json:"ui"`
	Server    ServerConfig    `json:"server"`
}

type WorkspaceConfig struct {
	// Seed file; empty uses the built-in demo workspace
	File        string `json:"file" env:"FOLIO_WORKSPACE"`
	DownloadDir string `json:"download_dir" env:"FOLIO_DOWNLOAD_DIR"` // Default: "."
	BaseURL     string `json:"base_url" env:"FOLIO_BASE_URL"`         // Default: "http://localhost:8080"
}

type UIConfig struct {
	Locale            string `json:"locale" env:"FOLIO_LOCALE"` // Default: "en"
	ShortcutTimeoutMs int    `json:"shortcut_timeout_ms"`       // Default: 1000
	PaletteHeight     int    `json:"palette_height"`            // Default: 12
	PrintWidth        int    `json:"print_width"`               // Default: 80
	LogFile           string `json:"log_file" env:"FOLIO_LOG_FILE"`

	// Colors (lipgloss color strings)
	ColorPrimary string `json:"color_primary"` // Default: "63"
	ColorMuted   string `json:"color_muted"`   // Default: "241"
	ColorError   string `json:"color_error"`   // Default: "196"
	ColorSuccess string `json:"color_success"` // Default: "42"
}

type ServerConfig struct {
	Addr           string `json:"addr" env:"FOLIO_HTTP_ADDR"` // Default: ":8080"
	ReadTimeoutMs  int    `json:"read_timeout_ms"`            // Default: 5000
	WriteTimeoutMs int    `json:"write_timeout_ms"`           // Default: 10000
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			DownloadDir: ".",
			BaseURL:     "http://localhost:8080",
		},
		UI: UIConfig{
			Locale:            "en",
			ShortcutTimeoutMs: 1000,
			PaletteHeight:     12,
			PrintWidth:        80,
			ColorPrimary:      "63",
			ColorMuted:        "241",
			ColorError:        "196",
			ColorSuccess:      "42",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeoutMs:  5000,
			WriteTimeoutMs: 10000,
		},
	}
}
