// Package seed resets and repopulates an output directory's source image
// directory from a master picon directory before linking begins.
package seed

import (
	"path/filepath"

	"github.com/arthur-debert/piconlink/pkg/config"
	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/logging"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// CopyImages clears the image files from piconDir's channel directory
// (creating it if absent) and copies every image from fromDir's channel
// directory into it. Any failure is fatal for the directory run. Returns
// the number of images copied.
func CopyImages(fsys types.FS, fromDir, piconDir string, cfg *config.Config) (int, error) {
	logger := logging.GetLogger("seed")

	chanPath := filepath.Join(piconDir, cfg.ChannelDir)
	srcPath := filepath.Join(fromDir, cfg.ChannelDir)

	if fi, err := fsys.Stat(chanPath); err == nil && fi.IsDir() {
		entries, err := fsys.ReadDir(chanPath)
		if err != nil {
			return 0, errors.Wrapf(err, errors.ErrSeedImages, "can't access %s", chanPath)
		}
		for _, entry := range entries {
			if filepath.Ext(entry.Name()) != cfg.ImageExt {
				continue
			}
			path := filepath.Join(chanPath, entry.Name())
			if err := fsys.Remove(path); err != nil {
				return 0, errors.Wrapf(err, errors.ErrSeedImages, "can't remove %s", path)
			}
		}
	} else {
		if err := fsys.MkdirAll(chanPath, 0755); err != nil {
			return 0, errors.Wrapf(err, errors.ErrSeedImages, "can't create %s", chanPath)
		}
	}

	entries, err := fsys.ReadDir(srcPath)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrSeedImages, "can't access %s", srcPath)
	}

	copied := 0
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != cfg.ImageExt {
			continue
		}
		src := filepath.Join(srcPath, entry.Name())
		data, err := fsys.ReadFile(src)
		if err != nil {
			return copied, errors.Wrapf(err, errors.ErrSeedImages, "can't copy %s to %s", src, chanPath)
		}
		dst := filepath.Join(chanPath, entry.Name())
		if err := fsys.WriteFile(dst, data, 0644); err != nil {
			return copied, errors.Wrapf(err, errors.ErrSeedImages, "can't copy %s to %s", src, chanPath)
		}
		copied++
	}

	logger.Info().
		Str("from", srcPath).
		Str("to", chanPath).
		Int("images", copied).
		Msg("Seeded channel picons")
	return copied, nil
}
