// Package core orchestrates one output-directory run: seeding, inventory
// and baseline scans, the expansion/reconciliation pass over the picon
// definitions file, reporting, and final cleanup.
package core
