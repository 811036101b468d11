package report

import (
	"sort"

	"github.com/arthur-debert/piconlink/pkg/logging"
	"github.com/arthur-debert/piconlink/pkg/types"
)

// UnusedIcons returns the inventory icon filenames that were never linked
// this run, sorted, logging each one.
func UnusedIcons(icons map[string]types.IconEntry, used map[string]bool) []string {
	logger := logging.GetLogger("report")

	var unused []string
	seen := make(map[string]bool)
	for _, entry := range icons {
		if seen[entry.FileName] {
			continue
		}
		seen[entry.FileName] = true
		if !used[entry.FileName] {
			unused = append(unused, entry.FileName)
		}
	}
	sort.Strings(unused)

	for _, name := range unused {
		logger.Warn().Str("icon", name).Msg("Picon unused")
	}
	return unused
}
