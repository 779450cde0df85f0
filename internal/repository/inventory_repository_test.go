package repository

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/persistence"
)

func newTestInventory(t *testing.T) (InventoryRepository, string) {
	t.Helper()
	dir := t.TempDir()
	return NewInventoryRepository(dir, rand.New(rand.NewSource(1))), dir
}

func TestAddBatchCountsKeptLines(t *testing.T) {
	repo, _ := newTestInventory(t)

	stored, err := repo.AddBatch(domain.CategoryPremium, "netflix", []string{
		"user1:pass1",
		"  ",
		"user2:pass2",
		"",
		"\tuser3:pass3\t",
	})
	require.NoError(t, err)
	require.Equal(t, 3, stored)

	count, err := repo.Count(domain.CategoryPremium, "netflix")
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestAddBatchAllBlankCreatesNothing(t *testing.T) {
	repo, dir := newTestInventory(t)

	stored, err := repo.AddBatch(domain.CategoryFree, "spotify", []string{"", "   ", "\t"})
	require.NoError(t, err)
	require.Zero(t, stored)

	_, err = os.Stat(filepath.Join(dir, persistence.AccountsDirName, "free", "spotify"))
	require.True(t, os.IsNotExist(err))
}

func TestCountAcrossServices(t *testing.T) {
	repo, _ := newTestInventory(t)

	_, err := repo.AddBatch(domain.CategoryVIP, "netflix", []string{"a", "b"})
	require.NoError(t, err)
	_, err = repo.AddBatch(domain.CategoryVIP, "spotify", []string{"c"})
	require.NoError(t, err)

	total, err := repo.Count(domain.CategoryVIP, "")
	require.NoError(t, err)
	require.Equal(t, 3, total)

	netflix, err := repo.Count(domain.CategoryVIP, "netflix")
	require.NoError(t, err)
	require.Equal(t, 2, netflix)
}

func TestCountMissingCategoryIsZero(t *testing.T) {
	repo, _ := newTestInventory(t)

	count, err := repo.Count(domain.CategoryBooster, "")
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = repo.Count(domain.CategoryBooster, "netflix")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestDrawConsumesEveryLineExactlyOnce(t *testing.T) {
	repo, _ := newTestInventory(t)

	lines := []string{"cred1", "cred2", "cred3", "cred4", "cred5"}
	_, err := repo.AddBatch(domain.CategoryFree, "netflix", lines)
	require.NoError(t, err)

	seen := map[string]bool{}
	for range lines {
		credential, ok, err := repo.Draw(domain.CategoryFree, "netflix")
		require.NoError(t, err)
		require.True(t, ok)
		require.False(t, seen[credential], "credential %q drawn twice", credential)
		seen[credential] = true
	}
	require.Len(t, seen, len(lines))

	_, ok, err := repo.Draw(domain.CategoryFree, "netflix")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDrawFromEmptyPool(t *testing.T) {
	repo, _ := newTestInventory(t)

	credential, ok, err := repo.Draw(domain.CategoryPremium, "netflix")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, credential)
}

func TestDrawRemovesExhaustedBatchFile(t *testing.T) {
	repo, dir := newTestInventory(t)

	_, err := repo.AddBatch(domain.CategoryFree, "netflix", []string{"only-one"})
	require.NoError(t, err)

	credential, ok, err := repo.Draw(domain.CategoryFree, "netflix")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "only-one", credential)

	entries, err := os.ReadDir(filepath.Join(dir, persistence.AccountsDirName, "free", "netflix"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestDrawHealsEmptyBatches(t *testing.T) {
	repo, dir := newTestInventory(t)

	serviceDir := filepath.Join(dir, persistence.AccountsDirName, "free", "netflix")
	require.NoError(t, os.MkdirAll(serviceDir, 0o755))

	empty := filepath.Join(serviceDir, "accounts_empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n  \n"), 0o644))

	_, err := repo.AddBatch(domain.CategoryFree, "netflix", []string{"real"})
	require.NoError(t, err)

	credential, ok, err := repo.Draw(domain.CategoryFree, "netflix")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "real", credential)

	_, err = os.Stat(empty)
	require.True(t, os.IsNotExist(err))
}

func TestDrawToleratesCRLFBatches(t *testing.T) {
	repo, dir := newTestInventory(t)

	serviceDir := filepath.Join(dir, persistence.AccountsDirName, "premium", "netflix")
	require.NoError(t, os.MkdirAll(serviceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(serviceDir, "accounts_win.txt"),
		[]byte("a:1\r\nb:2\r\n"), 0o644))

	count, err := repo.Count(domain.CategoryPremium, "netflix")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, ok, err := repo.Draw(domain.CategoryPremium, "netflix")
	require.NoError(t, err)
	require.True(t, ok)

	count, err = repo.Count(domain.CategoryPremium, "netflix")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestClearService(t *testing.T) {
	repo, _ := newTestInventory(t)

	_, err := repo.AddBatch(domain.CategoryFree, "netflix", []string{"a"})
	require.NoError(t, err)
	_, err = repo.AddBatch(domain.CategoryFree, "netflix", []string{"b"})
	require.NoError(t, err)
	_, err = repo.AddBatch(domain.CategoryFree, "spotify", []string{"c"})
	require.NoError(t, err)

	deleted, err := repo.Clear(domain.CategoryFree, "netflix")
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	count, err := repo.Count(domain.CategoryFree, "")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestClearWholeCategory(t *testing.T) {
	repo, _ := newTestInventory(t)

	_, err := repo.AddBatch(domain.CategoryFree, "netflix", []string{"a"})
	require.NoError(t, err)
	_, err = repo.AddBatch(domain.CategoryFree, "spotify", []string{"b"})
	require.NoError(t, err)
	_, err = repo.AddBatch(domain.CategoryPremium, "netflix", []string{"keep"})
	require.NoError(t, err)

	deleted, err := repo.Clear(domain.CategoryFree, "")
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	count, err := repo.Count(domain.CategoryFree, "")
	require.NoError(t, err)
	require.Zero(t, count)

	count, err = repo.Count(domain.CategoryPremium, "")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestClearMissingCategoryIsZero(t *testing.T) {
	repo, _ := newTestInventory(t)

	deleted, err := repo.Clear(domain.CategoryVIP, "")
	require.NoError(t, err)
	require.Zero(t, deleted)
}
