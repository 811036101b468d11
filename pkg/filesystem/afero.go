package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/piconlink/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero. Afero's MemMapFs supports neither
// symlinks nor hard links, so both are simulated: symlinks are marker files
// plus a target map, and hard links share a synthetic link identity. This is
// sufficient to exercise the classifier and reconciler without touching the
// real filesystem.
type aferoFS struct {
	fs       afero.Fs
	symlinks map[string]string
	idents   map[string]types.LinkIdentity
	counts   map[types.LinkIdentity]int
	nextIno  uint64
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(afs afero.Fs) types.FS {
	return &aferoFS{
		fs:       afs,
		symlinks: make(map[string]string),
		idents:   make(map[string]types.LinkIdentity),
		counts:   make(map[types.LinkIdentity]int),
	}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	resolved, err := a.resolve(name)
	if err != nil {
		return nil, err
	}
	return a.fs.Stat(resolved)
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(filepath.Clean(name))
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	resolved, err := a.resolve(name)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(a.fs, resolved)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, filepath.Clean(name), data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Symlink(oldname, newname string) error {
	newname = filepath.Clean(newname)
	if _, err := a.fs.Stat(newname); err == nil {
		return &fs.PathError{Op: "symlink", Path: newname, Err: fs.ErrExist}
	}
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0777); err != nil {
		return err
	}
	a.symlinks[newname] = oldname
	return nil
}

func (a *aferoFS) Link(oldname, newname string) error {
	oldname = filepath.Clean(oldname)
	newname = filepath.Clean(newname)
	if _, err := a.fs.Stat(newname); err == nil {
		return &fs.PathError{Op: "link", Path: newname, Err: fs.ErrExist}
	}
	data, err := afero.ReadFile(a.fs, oldname)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(a.fs, newname, data, 0644); err != nil {
		return err
	}
	id := a.identityFor(oldname)
	a.idents[newname] = id
	a.counts[id]++
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	if target, ok := a.symlinks[filepath.Clean(name)]; ok {
		return target, nil
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
}

func (a *aferoFS) Remove(name string) error {
	name = filepath.Clean(name)
	if err := a.fs.Remove(name); err != nil {
		return err
	}
	delete(a.symlinks, name)
	if id, ok := a.idents[name]; ok {
		a.counts[id]--
		delete(a.idents, name)
	}
	return nil
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	oldpath = filepath.Clean(oldpath)
	newpath = filepath.Clean(newpath)
	if err := a.fs.Rename(oldpath, newpath); err != nil {
		return err
	}
	if target, ok := a.symlinks[oldpath]; ok {
		delete(a.symlinks, oldpath)
		a.symlinks[newpath] = target
	}
	if id, ok := a.idents[oldpath]; ok {
		delete(a.idents, oldpath)
		a.idents[newpath] = id
	}
	return nil
}

func (a *aferoFS) Classify(name string) types.LinkKind {
	name = filepath.Clean(name)
	if _, ok := a.symlinks[name]; ok {
		return types.LinkKindSym
	}
	fi, err := a.fs.Stat(name)
	if err != nil {
		return types.LinkKindError
	}
	if fi.IsDir() {
		return types.LinkKindOther
	}
	if a.counts[a.identityFor(name)] > 1 {
		return types.LinkKindHard
	}
	return types.LinkKindFile
}

func (a *aferoFS) Identity(name string) (types.LinkIdentity, error) {
	resolved, err := a.resolve(name)
	if err != nil {
		return types.LinkIdentity{}, err
	}
	if _, err := a.fs.Stat(resolved); err != nil {
		return types.LinkIdentity{}, err
	}
	return a.identityFor(resolved), nil
}

// identityFor returns the synthetic identity for a resolved path, assigning
// a fresh inode number on first sight.
func (a *aferoFS) identityFor(name string) types.LinkIdentity {
	name = filepath.Clean(name)
	if id, ok := a.idents[name]; ok {
		return id
	}
	a.nextIno++
	id := types.LinkIdentity{Dev: 0, Ino: a.nextIno}
	a.idents[name] = id
	a.counts[id] = 1
	return id
}

// resolve follows the simulated symlink chain, interpreting relative targets
// against the directory of the link.
func (a *aferoFS) resolve(name string) (string, error) {
	name = filepath.Clean(name)
	for i := 0; i < 8; i++ {
		target, ok := a.symlinks[name]
		if !ok {
			return name, nil
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(name), target)
		}
		name = filepath.Clean(target)
	}
	return "", errors.New("too many levels of symbolic links: " + name)
}
