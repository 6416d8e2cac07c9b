package helper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func TestXcarchivePath(t *testing.T) {
	at := time.Date(2019, time.June, 4, 15, 7, 9, 0, time.UTC)

	got := XcarchivePath("/archives", "/src/.build/release/hello", at)
	assert.Equal(t, "/archives/2019-06-04/xchelper-hello 06-04-2019, 3.07.09 PM.xcarchive", got)
}

func TestCreateXcarchive(t *testing.T) {
	h, runner, _ := newTestHelper(t)
	at := time.Date(2019, time.June, 4, 9, 30, 0, 0, time.UTC)
	h.Now = func() time.Time { return at }
	dir := t.TempDir()

	path, err := h.CreateXcarchive(context.Background(), dir, "/src/.build/release/hello", "Hello-Package")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2019-06-04", "xchelper-hello 06-04-2019, 9.30.00 AM.xcarchive"), path)

	data, err := os.ReadFile(filepath.Join(path, "Info.plist"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<key>ArchiveVersion</key>")
	assert.Contains(t, string(data), "<date>2019-06-04T09:30:00Z</date>")

	var info xcarchiveInfo
	_, err = plist.Unmarshal(data, &info)
	require.NoError(t, err)
	assert.Equal(t, "2", info.ArchiveVersion)
	assert.Equal(t, "hello", info.Name)
	assert.Equal(t, "Hello-Package", info.SchemeName)
	assert.True(t, at.Equal(info.CreationDate))

	products := filepath.Join(path, "Products", "hello.tar")
	assert.Equal(t, "/usr/bin/tar -cvzf "+products+" -C /src/.build/release hello", runner.Last().String())
	assert.DirExists(t, filepath.Join(path, "Products"))
}

func TestCreateXcarchiveDirectoryFailure(t *testing.T) {
	h, _, _ := newTestHelper(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := h.CreateXcarchive(context.Background(), blocker, "/bin/hello", "Hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, KindCreateXcarchive))
}
