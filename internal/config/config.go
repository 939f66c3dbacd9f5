package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabStop      int    `toml:"tab-stop"`
	IndentWidth  int    `toml:"indent-width"`
	WrapColumn   int    `toml:"wrap-column"`
	SoftWrap     bool   `toml:"soft-wrap"`
	CenterScroll bool   `toml:"center-scroll"`
	LineNumbers  bool   `toml:"line-numbers"`
	MenuBar      bool   `toml:"menu-bar"`
	Theme        string `toml:"theme"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabStop:      8,
			IndentWidth:  4,
			WrapColumn:   80,
			SoftWrap:     false,
			CenterScroll: true,
			LineNumbers:  true,
			MenuBar:      true,
			Theme:        "monochrome-dark",
		},
	}
}

// Load reads config.toml from the config dir over the defaults.
// A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, err
	}
	if cfg.Editor.TabStop <= 0 {
		cfg.Editor.TabStop = 8
	}
	if cfg.Editor.IndentWidth <= 0 {
		cfg.Editor.IndentWidth = 4
	}
	return cfg, nil
}

// Save writes the config back, creating the directory if needed.
// Used to persist theme and line-number choices made at runtime.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func Path() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QUILL_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "quill"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quill"), nil
}
