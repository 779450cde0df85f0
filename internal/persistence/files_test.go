package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
)

func TestInitDataDirLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitDataDir(dir))

	for _, category := range domain.Categories {
		info, err := os.Stat(filepath.Join(dir, AccountsDirName, string(category)))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
	for _, name := range []string{UserAccessFileName, CooldownsFileName, UserCooldownsFileName} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
	}
}

func TestInitDataDirPreservesExistingState(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, UserAccessFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"u1":["vip"]}`), 0o644))

	require.NoError(t, InitDataDir(dir))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"u1":["vip"]}`, string(data))
}

func TestReadJSONFileMissingIsNoop(t *testing.T) {
	table := domain.EntitlementTable{}
	require.NoError(t, ReadJSONFile(filepath.Join(t.TempDir(), "missing.json"), &table))
	require.Empty(t, table)
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
