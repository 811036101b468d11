// Package servref parses broadcast service-reference records and expands
// them into picon link target names.
//
// A record is one line of the picon definitions file:
//
//	serviceReference serviceName iconKey
//
// The service reference is up to 10 colon-separated fields. field[0] is a
// decimal reference-type flag, field[2] a hex service-type code; other
// numeric fields are hex. The expansion engine turns one record into the
// target link names requested by the active rule set (full, short, fold,
// addfold, service names).
package servref
