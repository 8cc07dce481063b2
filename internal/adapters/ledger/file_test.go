package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileCreatesEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "processed_videos.txt")
	l := New(path)

	seen, err := l.Load()
	require.NoError(t, err)
	require.Equal(t, 0, seen.Len())

	// the file now exists, empty
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestRecordThenLoad(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "processed_videos.txt"))

	require.NoError(t, l.Record("1122334455"))
	require.NoError(t, l.Record("2233445566"))

	seen, err := l.Load()
	require.NoError(t, err)
	require.True(t, seen.Contains("1122334455"))
	require.True(t, seen.Contains("2233445566"))
	require.Equal(t, 2, seen.Len())
}

func TestRecordWritesNewlineDelimitedIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_videos.txt")
	l := New(path)

	require.NoError(t, l.Record("a1"))
	require.NoError(t, l.Record("b2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a1\nb2\n", string(data))
}

func TestLoadSkipsBlanksAndCollapsesDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_videos.txt")
	raw := "111\n\n  \n222\n111\n  333  \n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	seen, err := New(path).Load()
	require.NoError(t, err)
	require.Equal(t, 3, seen.Len())
	for _, id := range []string{"111", "222", "333"} {
		require.True(t, seen.Contains(id), "expected %s in set", id)
	}
}

func TestLoadFailsWhenPathUnusable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// parent of the ledger path is a regular file
	l := New(filepath.Join(blocker, "processed_videos.txt"))
	_, err := l.Load()
	require.Error(t, err)
}

func TestRecordSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_videos.txt")

	first := New(path)
	require.NoError(t, first.Record("42"))

	second := New(path)
	seen, err := second.Load()
	require.NoError(t, err)
	require.True(t, seen.Contains("42"))
}
