package core

import (
	"bufio"
	"bytes"
	"path/filepath"

	"github.com/arthur-debert/piconlink/pkg/config"
	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/filesystem"
	"github.com/arthur-debert/piconlink/pkg/inventory"
	"github.com/arthur-debert/piconlink/pkg/links"
	"github.com/arthur-debert/piconlink/pkg/logging"
	"github.com/arthur-debert/piconlink/pkg/report"
	"github.com/arthur-debert/piconlink/pkg/seed"
	"github.com/arthur-debert/piconlink/pkg/servref"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// RunOptions configures one output-directory run.
type RunOptions struct {
	// DefsPath is the picon definitions file.
	DefsPath string

	// PiconDir is the output directory; empty means the current directory.
	PiconDir string

	// Options carries the rule set and run mode.
	Options types.Options

	// FS defaults to the OS filesystem when nil.
	FS types.FS

	// Config defaults to the loaded layered configuration when nil.
	Config *config.Config
}

// RunResult summarizes what one run did.
type RunResult struct {
	PiconSet     string
	Records      int
	LinksMade    int
	LinksRemoved int
	IconsTotal   int
	UnusedIcons  []string
}

// NormalizeRules validates and defaults a rule set: fold and addfold are
// mutually exclusive, and when no rule is requested, full is assumed.
func NormalizeRules(rules types.RuleSet) (types.RuleSet, error) {
	if rules.Fold && rules.AddFold {
		return rules, errors.New(errors.ErrConfigValid, "fold and addfold are mutually exclusive")
	}
	if !rules.Any() {
		rules.Full = true
	}
	return rules, nil
}

// Run processes one output directory fully and sequentially. Only
// fatal-to-run failures return an error; per-record and per-target
// problems are logged and skipped.
func Run(opts RunOptions) (*RunResult, error) {
	logger := logging.GetLogger("core.run")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	rules, err := NormalizeRules(opts.Options.Rules)
	if err != nil {
		return nil, err
	}

	piconDir := opts.PiconDir
	if piconDir == "" {
		piconDir = "."
	}
	setName := filepath.Base(filepath.Clean(piconDir))

	logger.Info().Str("set", setName).Str("defs", opts.DefsPath).Msg("Processing picon set")
	done := logging.LogOperationStart(logger, "run "+setName)
	defer done()

	if opts.Options.CopyImagesFrom != "" {
		if _, err := seed.CopyImages(fsys, opts.Options.CopyImagesFrom, piconDir, cfg); err != nil {
			return nil, err
		}
	}

	defs, err := fsys.ReadFile(opts.DefsPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDefsOpen, "can't open service reference file %s", opts.DefsPath)
	}

	icons, err := inventory.Scan(fsys, filepath.Join(piconDir, cfg.ChannelDir), cfg)
	if err != nil {
		return nil, err
	}

	baseline, wrongKind, err := links.ScanExisting(fsys, piconDir, opts.Options.HardLinks, cfg.ImageExt)
	if err != nil {
		return nil, err
	}

	reconciler := links.NewReconciler(fsys, piconDir, opts.Options.HardLinks, cfg, icons, baseline)

	// Wrong-kind entries go before any link is created, so a leftover of
	// the other mode can't be mistaken for an already correct link.
	reconciler.RemoveNames(wrongKind)
	if opts.Options.CleanAll {
		reconciler.Cleanup()
	}

	expander := servref.NewExpander(rules, cfg.ImageExt)

	records := 0
	scanner := bufio.NewScanner(bytes.NewReader(defs))
	for scanner.Scan() {
		record, err := servref.ParseLine(scanner.Text())
		if err != nil {
			logger.Warn().Err(err).Msg("Skipping record")
			continue
		}
		if record == nil {
			continue
		}
		records++

		targets, errs := expander.Expand(record)
		for _, err := range errs {
			logger.Error().Err(err).Str("ref", record.Ref.String()).Msg("Rule expansion failed")
		}
		for _, target := range targets {
			reconciler.Reconcile(target, record.IconKey, record.Ref.String())
		}
	}

	unused := report.UnusedIcons(icons, reconciler.Used())

	if err := report.WriteGallery(fsys, piconDir, cfg.Title(setName), icons, cfg); err != nil {
		return nil, err
	}

	reconciler.Cleanup()

	result := &RunResult{
		PiconSet:     setName,
		Records:      records,
		LinksMade:    reconciler.LinksMade(),
		LinksRemoved: reconciler.Removed(),
		IconsTotal:   len(icons),
		UnusedIcons:  unused,
	}

	logger.Info().
		Str("set", result.PiconSet).
		Int("records", result.Records).
		Int("linksMade", result.LinksMade).
		Int("linksRemoved", result.LinksRemoved).
		Int("unusedIcons", len(result.UnusedIcons)).
		Msg("Picon set processed")
	return result, nil
}
