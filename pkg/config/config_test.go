package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/piconlink/pkg/config"
	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, ".png", cfg.ImageExt)
	assert.Equal(t, "channel_picons", cfg.ChannelDir)
	assert.Equal(t, 6, cfg.GalleryColumns)
	assert.Contains(t, cfg.SourceTags, "_sbs")
	assert.Contains(t, cfg.SourceTags, "_wp")
	assert.Contains(t, cfg.Placeholders, "tba")
	assert.Contains(t, cfg.Placeholders, "tobeadvised")
}

func TestLoadUsesDefaults(t *testing.T) {
	setConfigHome(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFileOverride(t *testing.T) {
	configHome := t.TempDir()
	setConfigHome(t, configHome)

	dir := filepath.Join(configHome, "piconlink")
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "gallery_columns = 4\nchannel_dir = \"icons\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "piconlink.toml"), []byte(content), 0644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.GalleryColumns)
	assert.Equal(t, "icons", cfg.ChannelDir)
	// Untouched keys keep their defaults
	assert.Equal(t, ".png", cfg.ImageExt)
}

func TestLoadEnvOverride(t *testing.T) {
	setConfigHome(t, t.TempDir())
	t.Setenv("PICONLINK_GALLERY_COLUMNS", "8")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.GalleryColumns)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"image ext without dot", func(c *config.Config) { c.ImageExt = "png" }},
		{"empty image ext", func(c *config.Config) { c.ImageExt = "" }},
		{"channel dir with separator", func(c *config.Config) { c.ChannelDir = "a/b" }},
		{"zero gallery columns", func(c *config.Config) { c.GalleryColumns = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestHelpers(t *testing.T) {
	cfg := config.Default()

	assert.True(t, cfg.IsSourceTag("_sbs"))
	assert.False(t, cfg.IsSourceTag("_hd"))

	assert.True(t, cfg.IsPlaceholder("tba"))
	assert.False(t, cfg.IsPlaceholder("abc"))

	assert.Equal(t, "Australian Front Panel picons", cfg.Title("lcdPicons"))
	assert.Equal(t, "myPicons", cfg.Title("myPicons"))
}

func setConfigHome(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}
