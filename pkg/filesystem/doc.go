// Package filesystem provides filesystem implementations for piconlink.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem, and an afero-backed filesystem that simulates
// symlink and hard-link identity semantics for tests.
package filesystem
