package steamworkshop_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamworkshop/steamworkshop-go"
)

// TestAddonFiles tests that only .vpk files directly in the directory are
// listed.
func TestAddonFiles(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	for _, name := range []string{"121221044.vpk", "mymap.vpk", "readme.txt", "addonlist.vpk.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("VPK"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.vpk"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folder.vpk", "nested.vpk"), []byte("VPK"), 0o600))

	// Act
	files, err := steamworkshop.AddonFiles(dir)

	// Assert
	require.NoError(t, err)
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"121221044.vpk", "mymap.vpk"}, names)
}

// TestAddonFiles_Empty tests a directory without addons.
func TestAddonFiles_Empty(t *testing.T) {
	files, err := steamworkshop.AddonFiles(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, files)
}

// TestAddonFiles_MissingDir tests the filesystem error is kept.
func TestAddonFiles_MissingDir(t *testing.T) {
	files, err := steamworkshop.AddonFiles(filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.Nil(t, files)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

// TestAddonID tests reading a published file id from an addon name.
func TestAddonID(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		wantID string
		wantOK bool
	}{
		{name: "workshop addon", file: "121221044.vpk", wantID: "121221044", wantOK: true},
		{name: "with directory", file: filepath.Join("addons", "workshop", "1643520526.vpk"), wantID: "1643520526", wantOK: true},
		{name: "named addon", file: "mymap.vpk"},
		{name: "leading zero", file: "0121221044.vpk"},
		{name: "other extension", file: "121221044.bsp"},
		{name: "bare extension", file: ".vpk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := steamworkshop.AddonID(tt.file)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
