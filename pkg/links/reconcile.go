package links

import (
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/piconlink/pkg/config"
	"github.com/arthur-debert/piconlink/pkg/logging"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// Reconciler drives one output directory's link set towards the desired
// set. It is handed the icon inventory and the baseline once, then fed
// (target, icon key) pairs in record order; Cleanup removes whatever part
// of the baseline was never reasserted.
type Reconciler struct {
	fsys      types.FS
	dir       string
	hardLinks bool
	cfg       *config.Config

	icons    map[string]types.IconEntry
	baseline Baseline

	// overrides memoizes target paths confirmed to hold manually placed
	// image files; once marked, a path is never touched again this run.
	overrides map[string]bool

	// claimed is the desired link set accumulated so far: target name to
	// icon key. First writer wins; later conflicting claims are reported.
	claimed map[string]string

	used      map[string]bool
	linksMade int
	removed   int
	logger    zerolog.Logger
}

// NewReconciler creates a reconciler over an output directory. icons and
// baseline are owned by the reconciler from here on.
func NewReconciler(fsys types.FS, dir string, hardLinks bool, cfg *config.Config, icons map[string]types.IconEntry, baseline Baseline) *Reconciler {
	return &Reconciler{
		fsys:      fsys,
		dir:       dir,
		hardLinks: hardLinks,
		cfg:       cfg,
		icons:     icons,
		baseline:  baseline,
		overrides: make(map[string]bool),
		claimed:   make(map[string]string),
		used:      make(map[string]bool),
		logger:    logging.GetLogger("reconcile"),
	}
}

// Reconcile processes one expanded target for a record. ref is the source
// service reference, used only for diagnostics.
func (r *Reconciler) Reconcile(target, iconKey, ref string) {
	if prev, ok := r.claimed[target]; ok {
		if prev != iconKey {
			r.logger.Warn().
				Str("ref", ref).
				Str("target", target).
				Str("linked", prev).
				Str("requested", iconKey).
				Msg("Link exists for different icon; first entry wins")
		}
		return
	}

	path := filepath.Join(r.dir, target)

	if r.isOverride(path, iconKey, target) {
		return
	}

	entry, ok := r.icons[iconKey]
	if !ok {
		if !r.cfg.IsPlaceholder(iconKey) {
			r.logger.Warn().
				Str("icon", iconKey).
				Str("ref", ref).
				Msg("No picon for service")
		}
		return
	}

	linked := false
	if identity, inBaseline := r.baseline[target]; inBaseline {
		// Claimed either way; on identity mismatch the entry is relinked
		// below rather than removed as stale at cleanup.
		delete(r.baseline, target)
		if identity == entry.Identity {
			linked = true
		}
	}

	if !linked {
		if _, err := r.fsys.Lstat(path); err == nil {
			if err := r.fsys.Remove(path); err != nil {
				r.logger.Error().Err(err).
					Str("target", target).
					Msg("Can't remove existing entry")
				return
			}
		}

		iconPath := filepath.Join(r.cfg.ChannelDir, entry.FileName)
		var err error
		if r.hardLinks {
			// Hard links need a real path, not one relative to the
			// link's own directory.
			err = r.fsys.Link(filepath.Join(r.dir, iconPath), path)
		} else {
			err = r.fsys.Symlink(iconPath, path)
		}
		if err != nil {
			r.logger.Error().Err(err).
				Str("icon", entry.FileName).
				Str("target", target).
				Bool("hardLinks", r.hardLinks).
				Msg("Link failed")
			return
		}
		r.linksMade++
		linked = true
	}

	r.used[entry.FileName] = true
	r.claimed[target] = iconKey
}

// isOverride reports whether path is a manually placed image file. The
// answer is memoized: a path confirmed as an override stays one for the
// rest of the run, logged once.
func (r *Reconciler) isOverride(path, iconKey, target string) bool {
	if r.overrides[path] {
		return true
	}
	if r.fsys.Classify(path) == types.LinkKindFile {
		r.overrides[path] = true
		r.logger.Warn().
			Str("icon", iconKey).
			Str("target", target).
			Msg("Picon over-ridden by specific servref icon")
		return true
	}
	return false
}

// Cleanup removes every baseline entry never claimed during the run and
// empties the baseline. It returns the number of entries removed.
func (r *Reconciler) Cleanup() int {
	names := make([]string, 0, len(r.baseline))
	for name := range r.baseline {
		names = append(names, name)
	}
	r.baseline = make(Baseline)
	return r.RemoveNames(names)
}

// RemoveNames unlinks the named entries from the output directory, logging
// each failure and returning the number actually removed.
func (r *Reconciler) RemoveNames(names []string) int {
	sort.Strings(names)
	r.logger.Info().Int("count", len(names)).Msg("Removing links")
	removed := 0
	for _, name := range names {
		path := filepath.Join(r.dir, name)
		if err := r.fsys.Remove(path); err != nil {
			r.logger.Error().Err(err).Str("path", path).Msg("Can't remove link")
			continue
		}
		removed++
	}
	r.removed += removed
	return removed
}

// LinksMade returns the number of links created so far.
func (r *Reconciler) LinksMade() int { return r.linksMade }

// Removed returns the number of entries removed so far, including
// wrong-kind and stale cleanups.
func (r *Reconciler) Removed() int { return r.removed }

// Used returns the set of inventory icon filenames actually linked this
// run.
func (r *Reconciler) Used() map[string]bool { return r.used }
