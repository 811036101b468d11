package main

// Short messages (one-liners)
const (
	MsgRootShort = "Derive picon link farms from service references"

	MsgRootLong = `piconlink reads a picon definitions file and, for each output
directory given, creates links from service-reference file names to the
icon images under its channel directory. Existing links are reconciled in
place: correct links are left alone, wrong ones replaced, and links for
services no longer defined are removed.

Hand-placed regular files at a link name are treated as overrides and
never touched.`

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFull         = "Link the full service reference name"
	MsgFlagShort        = "Link the shortened service reference name"
	MsgFlagFold         = "Fold foldable service types instead of linking them as-is"
	MsgFlagAddFold      = "Link both the full name and the folded or aliased name"
	MsgFlagServiceNames = "Link the service name as well"
	MsgFlagHardLinks    = "Create hard links instead of symbolic links"
	MsgFlagCleanAll     = "Remove all existing links before linking"
	MsgFlagCopyImages   = "Reset channel images from this master picon directory first"

	// Notices
	MsgShortRuleNotice = "note: short names are not yet supported by receiver firmware"

	// Summary formats
	MsgSummaryFormat   = "%s: %d records, %d links made, %d removed\n"
	MsgUnusedFormat    = "  unused: %s\n"
	MsgDirFailedFormat = "%s: %v\n"
)
