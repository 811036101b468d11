// Package links owns the link state of an output directory: scanning the
// existing link set into a baseline, deciding per expanded target whether to
// create, keep, or replace a link, and removing stale entries at the end of
// a run.
package links
