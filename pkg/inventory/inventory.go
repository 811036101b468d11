// Package inventory builds the icon inventory: a mapping from canonical
// icon keys to the image files serving them.
package inventory

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/piconlink/pkg/config"
	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/logging"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// Scan lists the source image directory once, non-recursively, and returns
// the inventory keyed by canonical icon key.
//
// The key for a suffixed file ("abc_sbs.png") is its base name with the
// source-indicator suffix stripped; a suffixed file always claims its key,
// logging a rename when it displaces an earlier file. A file without a
// suffix owns its base name only if no earlier file claimed it; otherwise
// the name is ambiguous and the earlier entry is kept.
//
// Scan failures are fatal for the run of the output directory the source
// directory belongs to.
func Scan(fsys types.FS, dir string, cfg *config.Config) (map[string]types.IconEntry, error) {
	logger := logging.GetLogger("inventory")

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInventoryScan, "can't process image directory %s", dir)
	}

	icons := make(map[string]types.IconEntry)
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != cfg.ImageExt {
			continue
		}
		path := filepath.Join(dir, name)

		// Follows symlinks: a link into another picon set is a valid
		// inventory source, a dangling one is not.
		fi, err := fsys.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		base := strings.TrimSuffix(name, cfg.ImageExt)
		key := base
		suffixed := false
		if i := strings.LastIndexByte(base, '_'); i > 0 && cfg.IsSourceTag(base[i:]) {
			key = base[:i]
			suffixed = true
		}

		if prev, claimed := icons[key]; claimed {
			if !suffixed {
				logger.Warn().
					Str("key", key).
					Str("file", name).
					Str("owner", prev.FileName).
					Msg("Ambiguous icon name; keeping earlier entry")
				continue
			}
			logger.Warn().
				Str("key", key).
				Str("from", prev.FileName).
				Str("to", name).
				Msg("Icon file renamed")
		}

		identity, err := fsys.Identity(path)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInventoryScan, "can't stat image file %s", path)
		}
		icons[key] = types.IconEntry{FileName: name, Identity: identity}
	}

	return icons, nil
}
