package config

import (
	"fmt"

	"golang.org/x/text/language"
)

// Validate checks config values for life correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Workspace validation
	if c.Workspace.DownloadDir == "" {
		errs = append(errs, "workspace.download_dir must not be empty")
	}

	// UI validation
	if _, err := language.Parse(c.UI.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("ui.locale %q is not a BCP 47 tag", c.UI.Locale))
	}
	if c.UI.ShortcutTimeoutMs < 1 {
		errs = append(errs, "ui.shortcut_timeout_ms must be >= 1")
	}
	if c.UI.PaletteHeight < 3 {
		errs = append(errs, "ui.palette_height must be >= 3")
	}
	if c.UI.PrintWidth < 20 {
		errs = append(errs, "ui.print_width must be >= 20")
	}

	// Server validation
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if c.Server.ReadTimeoutMs < 1 {
		errs = append(errs, "server.read_timeout_ms must be >= 1")
	}
	if c.Server.WriteTimeoutMs < 1 {
		errs = append(errs, "server.write_timeout_ms must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
