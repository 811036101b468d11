package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/piconlink/pkg/errors"
)

// Config holds the user-tunable knobs of a piconlink run. Everything has an
// embedded default; see embedded/defaults.toml.
type Config struct {
	ImageExt       string            `koanf:"image_ext" toml:"image_ext"`
	ChannelDir     string            `koanf:"channel_dir" toml:"channel_dir"`
	GalleryColumns int               `koanf:"gallery_columns" toml:"gallery_columns"`
	SourceTags     []string          `koanf:"source_tags" toml:"source_tags"`
	Placeholders   []string          `koanf:"placeholders" toml:"placeholders"`
	SetTitles      map[string]string `koanf:"set_titles" toml:"set_titles"`
}

const envPrefix = "PICONLINK_"

// Load builds the effective configuration: embedded defaults, then the first
// piconlink.toml/piconlink.yaml found in the XDG config directory or the
// current directory, then PICONLINK_* environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	if path, parser := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are compiled in; failing to parse them is
		// a programming error.
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if c.ImageExt == "" || !strings.HasPrefix(c.ImageExt, ".") {
		return errors.Newf(errors.ErrConfigValid, "image_ext must start with a dot, got %q", c.ImageExt)
	}
	if c.ChannelDir == "" || strings.ContainsRune(c.ChannelDir, filepath.Separator) {
		return errors.Newf(errors.ErrConfigValid, "channel_dir must be a bare directory name, got %q", c.ChannelDir)
	}
	if c.GalleryColumns < 1 {
		return errors.Newf(errors.ErrConfigValid, "gallery_columns must be positive, got %d", c.GalleryColumns)
	}
	return nil
}

// IsSourceTag reports whether tag is a recognized source-indicator suffix.
func (c *Config) IsSourceTag(tag string) bool {
	for _, t := range c.SourceTags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsPlaceholder reports whether an icon key is a "to be advised" sentinel.
func (c *Config) IsPlaceholder(key string) bool {
	for _, p := range c.Placeholders {
		if p == key {
			return true
		}
	}
	return false
}

// Title returns the gallery title for a picon set directory name.
func (c *Config) Title(setName string) string {
	if title, ok := c.SetTitles[setName]; ok {
		return title
	}
	return setName
}

// findConfigFile locates the first user config file, preferring the XDG
// config directory over the current directory and TOML over YAML.
func findConfigFile() (string, koanf.Parser) {
	candidates := []struct {
		path   string
		parser koanf.Parser
	}{
		{filepath.Join(xdg.ConfigHome, "piconlink", "piconlink.toml"), toml.Parser()},
		{filepath.Join(xdg.ConfigHome, "piconlink", "piconlink.yaml"), yaml.Parser()},
		{"piconlink.toml", toml.Parser()},
		{"piconlink.yaml", yaml.Parser()},
	}
	for _, c := range candidates {
		if _, err := os.Stat(c.path); err == nil {
			return c.path, c.parser
		}
	}
	return "", nil
}

// envTransform maps PICONLINK_IMAGE_EXT to image_ext and so on. Nested keys
// use double underscores: PICONLINK_SET_TITLES__PICON.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
