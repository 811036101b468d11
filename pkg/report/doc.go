// Package report emits the end-of-run reports: the unused-icon listing and
// the HTML gallery of the icon inventory.
package report
