package inventory_test

import (
	"testing"

	"github.com/arthur-debert/piconlink/pkg/config"
	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/arthur-debert/piconlink/pkg/filesystem"
	"github.com/arthur-debert/piconlink/pkg/inventory"
	"github.com/arthur-debert/piconlink/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chanDir = "/picons/channel_picons"

func setup(t *testing.T, files ...string) types.FS {
	t.Helper()
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll(chanDir, 0755))
	for _, name := range files {
		require.NoError(t, fsys.WriteFile(chanDir+"/"+name, []byte(name), 0644))
	}
	return fsys
}

func TestScan(t *testing.T) {
	fsys := setup(t, "abc.png", "seven.png", "notes.txt")

	icons, err := inventory.Scan(fsys, chanDir, config.Default())
	require.NoError(t, err)

	require.Len(t, icons, 2, "non-png entries are ignored")
	assert.Equal(t, "abc.png", icons["abc"].FileName)
	assert.Equal(t, "seven.png", icons["seven"].FileName)
	assert.NotEqual(t, icons["abc"].Identity, icons["seven"].Identity)
}

func TestScanStripsSourceTag(t *testing.T) {
	fsys := setup(t, "abc_sbs.png", "nine_wp.png")

	icons, err := inventory.Scan(fsys, chanDir, config.Default())
	require.NoError(t, err)

	assert.Equal(t, "abc_sbs.png", icons["abc"].FileName)
	assert.Equal(t, "nine_wp.png", icons["nine"].FileName)
}

func TestScanUnknownTagIsPartOfKey(t *testing.T) {
	fsys := setup(t, "abc_hd.png")

	icons, err := inventory.Scan(fsys, chanDir, config.Default())
	require.NoError(t, err)

	assert.Contains(t, icons, "abc_hd")
	assert.NotContains(t, icons, "abc")
}

func TestScanCollisionLaterWins(t *testing.T) {
	// ReadDir returns sorted names: abc_sbs.png scans after abc_lw.png
	// and takes over the key.
	fsys := setup(t, "abc_lw.png", "abc_sbs.png")

	icons, err := inventory.Scan(fsys, chanDir, config.Default())
	require.NoError(t, err)

	require.Len(t, icons, 1)
	assert.Equal(t, "abc_sbs.png", icons["abc"].FileName)
}

func TestScanSuffixedVariantDisplacesPlainFile(t *testing.T) {
	// abc.png scans first and owns "abc"; abc_sbs.png then claims the key,
	// since suffixed variants always win, logged as a rename.
	fsys := setup(t, "abc.png", "abc_sbs.png")

	icons, err := inventory.Scan(fsys, chanDir, config.Default())
	require.NoError(t, err)

	require.Len(t, icons, 1)
	assert.Equal(t, "abc_sbs.png", icons["abc"].FileName)
}

func TestScanMissingDirIsFatal(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())

	_, err := inventory.Scan(fsys, "/nope/channel_picons", config.Default())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInventoryScan))
}

func TestScanSkipsDanglingSymlink(t *testing.T) {
	fsys := setup(t, "abc.png")
	require.NoError(t, fsys.Symlink("gone.png", chanDir+"/dangling.png"))

	icons, err := inventory.Scan(fsys, chanDir, config.Default())
	require.NoError(t, err)

	assert.Len(t, icons, 1)
	assert.Contains(t, icons, "abc")
}
