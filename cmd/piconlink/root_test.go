package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCmd builds a root command with captured output and log files
// redirected into a throwaway state directory.
func newTestCmd(t *testing.T) (cmd *cobra.Command, stdout, stderr *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	rootCmd := NewRootCmd()
	stdout = &bytes.Buffer{}
	stderr = &bytes.Buffer{}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// newPiconDir lays out a picon directory with the given icon images.
func newPiconDir(t *testing.T, name string, icons ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "channel_picons"), 0755))
	for _, icon := range icons {
		path := filepath.Join(dir, "channel_picons", icon)
		require.NoError(t, os.WriteFile(path, []byte(icon), 0644))
	}
	return dir
}

func writeDefs(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picon-defs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootRequiresDefsAndDir(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"/some/defs"})
	assert.Error(t, cmd.Execute())
}

func TestRootRejectsFoldWithAddFold(t *testing.T) {
	cmd, _, stderr := newTestCmd(t)
	cmd.SetArgs([]string{"--fold", "--addfold", "/some/defs", "/some/dir"})
	require.Error(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "mutually exclusive")
}

func TestRootCreatesLinks(t *testing.T) {
	defs := writeDefs(t, "1:0:1:4A:6:85:0:0:0:0 ABC abc\n")
	dir := newPiconDir(t, "flatPicons", "abc.png")

	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"--full", defs, dir})
	require.NoError(t, cmd.Execute())

	link := filepath.Join(dir, "1_0_1_4A_6_85_0_0_0_0.png")
	fi, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink)

	assert.Contains(t, stdout.String(), "flatPicons")
	assert.Contains(t, stdout.String(), "1 records")
}

func TestRootContinuesPastFailedDir(t *testing.T) {
	defs := writeDefs(t, "1:0:1:4A:6:85:0:0:0:0 ABC abc\n")
	good := newPiconDir(t, "goodPicons", "abc.png")
	bad := filepath.Join(t.TempDir(), "badPicons") // no channel_picons

	cmd, _, stderr := newTestCmd(t)
	cmd.SetArgs([]string{"--full", defs, bad, good})
	require.Error(t, cmd.Execute())

	// The good directory is still processed
	_, err := os.Lstat(filepath.Join(good, "1_0_1_4A_6_85_0_0_0_0.png"))
	assert.NoError(t, err)
	assert.Contains(t, stderr.String(), "1 of 2 picon directories failed")
}

func TestRootShortRuleNotice(t *testing.T) {
	defs := writeDefs(t, "1:0:1:4A:6:85:0:0:0:0 ABC abc\n")
	dir := newPiconDir(t, "shortPicons", "abc.png")

	cmd, _, stderr := newTestCmd(t)
	cmd.SetArgs([]string{"--short", defs, dir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "not yet supported")
}

func TestVersionCmd(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "piconlink version")
}

func TestGenConfigCmd(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"gen-config"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "image_ext")
	assert.Contains(t, stdout.String(), "channel_dir")
}
