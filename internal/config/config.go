// Package config loads cc2md settings from an optional TOML file over
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all user-tunable settings.
type Config struct {
	// VaultDir is where converted notes land.
	VaultDir string `toml:"vault_dir"`

	// ExportDir is scanned for transcript exports. Empty means the
	// current working directory at invocation time.
	ExportDir string `toml:"export_dir"`

	// LedgerPath is the sqlite database tracking conversions.
	LedgerPath string `toml:"ledger_path"`

	// GuardLogPath receives the hook's audit records.
	GuardLogPath string `toml:"guard_log"`

	// Editor overrides $EDITOR for the --open flag.
	Editor string `toml:"editor"`
}

// Load reads the config file if present and fills in defaults otherwise.
// The file location is $CC2MD_CONFIG or ~/.config/cc2md/config.toml.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}

	cfg := &Config{
		VaultDir:     filepath.Join(home, "Documents", "notes", "claude"),
		LedgerPath:   filepath.Join(home, ".config", "cc2md", "cc2md.db"),
		GuardLogPath: filepath.Join(home, ".config", "cc2md", "guard.log"),
	}

	cfgPath := os.Getenv("CC2MD_CONFIG")
	if cfgPath == "" {
		cfgPath = filepath.Join(home, ".config", "cc2md", "config.toml")
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.VaultDir = expandHome(cfg.VaultDir, home)
	cfg.ExportDir = expandHome(cfg.ExportDir, home)
	cfg.LedgerPath = expandHome(cfg.LedgerPath, home)
	cfg.GuardLogPath = expandHome(cfg.GuardLogPath, home)

	return cfg, nil
}

// ResolveExportDir returns the directory to scan for exports, defaulting to
// the current working directory.
func (c *Config) ResolveExportDir() (string, error) {
	if c.ExportDir != "" {
		return c.ExportDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working dir: %w", err)
	}
	return dir, nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
