package types

import "io/fs"

// LinkKind classifies what kind of filesystem entry sits at a path.
type LinkKind int

const (
	// LinkKindFile is a regular file with a single hard-link reference.
	LinkKindFile LinkKind = iota

	// LinkKindHard is a regular file with more than one hard-link reference.
	LinkKindHard

	// LinkKindSym is a symbolic link, valid or dangling.
	LinkKindSym

	// LinkKindOther is an existing entry that is none of the above
	// (directory, device node, socket, ...).
	LinkKindOther

	// LinkKindError means the path is absent or could not be examined.
	// Callers treat this as "cannot safely act" and skip the entry.
	LinkKindError
)

// String implements fmt.Stringer for log output.
func (k LinkKind) String() string {
	switch k {
	case LinkKindFile:
		return "file"
	case LinkKindHard:
		return "hardlink"
	case LinkKindSym:
		return "symlink"
	case LinkKindOther:
		return "other"
	default:
		return "error"
	}
}

// LinkIdentity identifies the underlying storage object behind a path.
// Two paths with equal identities refer to the same object, so an existing
// link can be recognized as already correct without recreating it.
type LinkIdentity struct {
	Dev uint64
	Ino uint64
}

// IconEntry is the resolved inventory value for an icon key: the on-disk
// image filename and the identity of that image file.
type IconEntry struct {
	FileName string
	Identity LinkIdentity
}

// RuleSet selects which target-name expansion rules are active for a run.
// Rules are additive; every active rule contributes its own targets for
// each record.
type RuleSet struct {
	Full         bool
	Short        bool
	Fold         bool
	AddFold      bool
	ServiceNames bool
}

// Any reports whether at least one expansion rule is active.
func (r RuleSet) Any() bool {
	return r.Full || r.Short || r.Fold || r.AddFold || r.ServiceNames
}

// Options configures one output-directory run.
type Options struct {
	Rules          RuleSet
	HardLinks      bool
	CleanAll       bool
	CopyImagesFrom string
}

// FS is the filesystem surface piconlink operates on. The OS implementation
// lives in pkg/filesystem; tests use an afero-backed implementation that
// simulates link identity in memory.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Link(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// Classify reports what kind of entry sits at name. It never returns
	// an error; absent or unreadable paths classify as LinkKindError.
	Classify(name string) LinkKind

	// Identity returns the link identity of the object behind name,
	// following symbolic links. The path must exist.
	Identity(name string) (LinkIdentity, error)
}
