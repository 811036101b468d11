// Package types defines the core types shared across piconlink packages.
//
// This includes the filesystem abstraction (FS), link classification types
// (LinkKind, LinkIdentity), the icon inventory value type (IconEntry), and
// the run configuration types (RuleSet, Options).
package types
