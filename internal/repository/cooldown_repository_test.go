package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/domain"
)

func TestCooldownDefaultsSeedAllCategories(t *testing.T) {
	repo := NewCooldownRepository(t.TempDir())

	defaults, err := repo.LoadDefaults()
	require.NoError(t, err)
	require.Len(t, defaults, len(domain.Categories))
	for _, category := range domain.Categories {
		require.Zero(t, defaults[category])
	}
}

func TestCooldownDefaultsRoundTrip(t *testing.T) {
	repo := NewCooldownRepository(t.TempDir())

	defaults, err := repo.LoadDefaults()
	require.NoError(t, err)
	defaults.SetDefault(domain.CategoryPremium, 45_000)
	require.NoError(t, repo.SaveDefaults(defaults))

	loaded, err := repo.LoadDefaults()
	require.NoError(t, err)
	require.Equal(t, int64(45_000), loaded[domain.CategoryPremium])
	// Untouched categories still present after the overlay.
	require.Zero(t, loaded[domain.CategoryFree])
}

func TestCooldownUpdateUserPersists(t *testing.T) {
	repo := NewCooldownRepository(t.TempDir())

	err := repo.UpdateUser(func(table domain.UserCooldownTable) error {
		table.RecordUse("u1", domain.CategoryFree, 5000)
		return nil
	})
	require.NoError(t, err)

	loaded, err := repo.LoadUser()
	require.NoError(t, err)
	require.Equal(t, int64(5000), loaded.LastUse("u1", domain.CategoryFree))
}
