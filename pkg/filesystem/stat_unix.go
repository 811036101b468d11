//go:build !windows

package filesystem

import (
	"io/fs"
	"syscall"

	"github.com/arthur-debert/piconlink/pkg/types"
)

// statIdentity extracts the device and inode pair from a FileInfo.
func statIdentity(fi fs.FileInfo) types.LinkIdentity {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return types.LinkIdentity{}
	}
	return types.LinkIdentity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}
}

// statNlink extracts the hard-link count from a FileInfo.
func statNlink(fi fs.FileInfo) uint64 {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 1
	}
	return uint64(st.Nlink)
}
