package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/piconlink/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) Symlink(oldname, newname string) error {
	return os.Symlink(oldname, newname)
}

func (o *osFS) Link(oldname, newname string) error {
	return os.Link(oldname, newname)
}

func (o *osFS) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

func (o *osFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Classify reports the kind of entry at name. Symbolic links are detected
// with Lstat so dangling links still classify as symlinks. Regular files
// with more than one hard-link reference classify as hard links.
func (o *osFS) Classify(name string) types.LinkKind {
	fi, err := os.Lstat(name)
	if err != nil {
		return types.LinkKindError
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return types.LinkKindSym
	}
	if fi.Mode().IsRegular() {
		if statNlink(fi) > 1 {
			return types.LinkKindHard
		}
		return types.LinkKindFile
	}
	return types.LinkKindOther
}

// Identity returns the device and inode of the object behind name,
// following symbolic links.
func (o *osFS) Identity(name string) (types.LinkIdentity, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return types.LinkIdentity{}, err
	}
	return statIdentity(fi), nil
}
