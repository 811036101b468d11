package links

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/logging"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// Baseline maps existing link names of the desired kind to their link
// identities. Entries are claimed (removed) by the reconciler as targets
// are revisited; whatever remains at the end of a run is stale.
type Baseline map[string]types.LinkIdentity

// ScanExisting lists the image-extension entries of the output directory
// and partitions the link entries by kind: links matching the desired kind
// (hard for a hard-link run, symbolic otherwise) become the baseline, links
// of the wrong kind are returned for up-front removal. Plain files are left
// untouched; they may become overrides later. Dangling symbolic links can
// carry no identity and are scheduled for removal as well.
func ScanExisting(fsys types.FS, dir string, hardLinks bool, imageExt string) (Baseline, []string, error) {
	logger := logging.GetLogger("links")

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrLinkScan, "can't process link directory %s to get current link list", dir)
	}

	wantKind := types.LinkKindSym
	if hardLinks {
		wantKind = types.LinkKindHard
	}

	baseline := make(Baseline)
	var removals []string
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != imageExt {
			continue
		}
		path := filepath.Join(dir, name)

		kind := fsys.Classify(path)
		if kind != types.LinkKindSym && kind != types.LinkKindHard {
			continue
		}
		if kind != wantKind {
			removals = append(removals, name)
			continue
		}

		identity, err := fsys.Identity(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				logger.Debug().Str("link", name).Msg("Dangling symlink scheduled for removal")
				removals = append(removals, name)
				continue
			}
			return nil, nil, errors.Wrapf(err, errors.ErrLinkScan, "can't stat link %s", path)
		}
		baseline[name] = identity
	}

	return baseline, removals, nil
}
