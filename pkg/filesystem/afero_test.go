package filesystem_test

import (
	"testing"

	"github.com/arthur-debert/piconlink/pkg/filesystem"
	"github.com/arthur-debert/piconlink/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

func TestAferoSymlinkSimulation(t *testing.T) {
	fsys := newMemFS()
	require.NoError(t, fsys.MkdirAll("/out/channel_picons", 0755))
	require.NoError(t, fsys.WriteFile("/out/channel_picons/abc.png", []byte("img"), 0644))

	require.NoError(t, fsys.Symlink("channel_picons/abc.png", "/out/target.png"))

	assert.Equal(t, types.LinkKindSym, fsys.Classify("/out/target.png"))

	target, err := fsys.Readlink("/out/target.png")
	require.NoError(t, err)
	assert.Equal(t, "channel_picons/abc.png", target)

	// Identity follows the relative symlink to the icon
	idLink, err := fsys.Identity("/out/target.png")
	require.NoError(t, err)
	idIcon, err := fsys.Identity("/out/channel_picons/abc.png")
	require.NoError(t, err)
	assert.Equal(t, idIcon, idLink)

	// Content reads through the link
	data, err := fsys.ReadFile("/out/target.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
}

func TestAferoHardLinkSimulation(t *testing.T) {
	fsys := newMemFS()
	require.NoError(t, fsys.MkdirAll("/out", 0755))
	require.NoError(t, fsys.WriteFile("/out/abc.png", []byte("img"), 0644))

	assert.Equal(t, types.LinkKindFile, fsys.Classify("/out/abc.png"))

	require.NoError(t, fsys.Link("/out/abc.png", "/out/target.png"))

	assert.Equal(t, types.LinkKindHard, fsys.Classify("/out/abc.png"))
	assert.Equal(t, types.LinkKindHard, fsys.Classify("/out/target.png"))

	idOrig, err := fsys.Identity("/out/abc.png")
	require.NoError(t, err)
	idLink, err := fsys.Identity("/out/target.png")
	require.NoError(t, err)
	assert.Equal(t, idOrig, idLink)

	// Removing the link drops the original back to a plain file
	require.NoError(t, fsys.Remove("/out/target.png"))
	assert.Equal(t, types.LinkKindFile, fsys.Classify("/out/abc.png"))
}

func TestAferoClassifyAbsent(t *testing.T) {
	fsys := newMemFS()
	assert.Equal(t, types.LinkKindError, fsys.Classify("/nope.png"))
}

func TestAferoLinkExisting(t *testing.T) {
	fsys := newMemFS()
	require.NoError(t, fsys.WriteFile("/a.png", []byte("a"), 0644))
	require.NoError(t, fsys.WriteFile("/b.png", []byte("b"), 0644))

	assert.Error(t, fsys.Link("/a.png", "/b.png"))
	assert.Error(t, fsys.Symlink("/a.png", "/b.png"))
}

func TestAferoRenameKeepsIdentity(t *testing.T) {
	fsys := newMemFS()
	require.NoError(t, fsys.WriteFile("/a.png", []byte("a"), 0644))

	idBefore, err := fsys.Identity("/a.png")
	require.NoError(t, err)

	require.NoError(t, fsys.Rename("/a.png", "/b.png"))

	idAfter, err := fsys.Identity("/b.png")
	require.NoError(t, err)
	assert.Equal(t, idBefore, idAfter)
}

func TestAferoIdentityMissing(t *testing.T) {
	fsys := newMemFS()
	_, err := fsys.Identity("/missing.png")
	assert.Error(t, err)
}
