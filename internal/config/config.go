// Package config loads the editor settings shared by the CLI and the TUI.
package config

import (
	"os"
	"regexp"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ionut-t/previewedit/core"
)

const currentVersion = "v1"

type Config struct {
	Version string `yaml:"version"`

	// Safe controls whether raw HTML is stripped from the preview.
	Safe bool `yaml:"safe"`
	// Theme is a chroma style name used for source and preview highlighting.
	Theme string `yaml:"theme"`

	Stamps   []string `yaml:"stamps"`
	Palette  []string `yaml:"palette"`
	Sizes    []int    `yaml:"sizes"`
	Snippets []string `yaml:"snippets"`

	Log ConfigLog `yaml:"log"`
}

type ConfigLog struct {
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

var stampRe = regexp.MustCompile(`^[a-z0-9_+-]+$`)

// ParseYAML decodes data over the defaults, so a file only needs the keys it
// changes.
func ParseYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal yaml")
	}

	if cfg.Version != "" && cfg.Version != currentVersion {
		return nil, errors.Errorf("unknown version: %s", cfg.Version)
	}
	cfg.Version = currentVersion

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to validate config")
	}
	return cfg, nil
}

// Load reads the file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %q", path)
	}
	return ParseYAML(data)
}

func (c *Config) Validate() error {
	if _, ok := styles.Registry[c.Theme]; !ok {
		return errors.Errorf("unknown theme %q", c.Theme)
	}

	if len(c.Stamps) == 0 {
		return errors.New("at least one stamp is required")
	}
	for _, s := range c.Stamps {
		if !stampRe.MatchString(s) {
			return errors.Errorf("invalid stamp token %q", s)
		}
	}

	if len(c.Palette) == 0 {
		return errors.New("palette is empty")
	}
	for _, color := range c.Palette {
		if err := (core.ColorSize{Color: color, Size: core.MinFontSize}).Validate(); err != nil {
			return err
		}
	}

	if len(c.Sizes) == 0 {
		return errors.New("sizes is empty")
	}
	for _, size := range c.Sizes {
		if err := (core.ColorSize{Color: c.Palette[0], Size: size}).Validate(); err != nil {
			return err
		}
	}

	return nil
}

// SurfaceOptions converts the settings that the editing surface understands.
func (c *Config) SurfaceOptions() []core.Option {
	return []core.Option{
		core.WithSafe(c.Safe),
		core.WithStamps(c.Stamps),
	}
}
