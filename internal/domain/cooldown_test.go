package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCooldownTableHasAllCategories(t *testing.T) {
	table := NewCooldownTable()
	require.Len(t, table, len(Categories))
	for _, category := range Categories {
		millis, ok := table[category]
		require.True(t, ok)
		require.Zero(t, millis)
	}
}

func TestOnCooldownAndRemaining(t *testing.T) {
	defaults := NewCooldownTable()
	defaults.SetDefault(CategoryPremium, 30_000)

	users := UserCooldownTable{}

	// Never claimed: last use is time zero, not on cooldown.
	require.False(t, users.OnCooldown("u", CategoryPremium, defaults, nowMillis))
	require.Zero(t, users.Remaining("u", CategoryPremium, defaults, nowMillis))

	users.RecordUse("u", CategoryPremium, nowMillis)

	require.True(t, users.OnCooldown("u", CategoryPremium, defaults, nowMillis+1))
	require.Equal(t, int64(29_999), users.Remaining("u", CategoryPremium, defaults, nowMillis+1))

	// Exactly at the boundary the wait is over.
	require.False(t, users.OnCooldown("u", CategoryPremium, defaults, nowMillis+30_000))
	require.Zero(t, users.Remaining("u", CategoryPremium, defaults, nowMillis+30_000))
}

func TestZeroCooldownNeverBlocks(t *testing.T) {
	defaults := NewCooldownTable()
	users := UserCooldownTable{}
	users.RecordUse("u", CategoryFree, nowMillis)

	require.False(t, users.OnCooldown("u", CategoryFree, defaults, nowMillis))
}

func TestCooldownsAreScopedPerCategory(t *testing.T) {
	defaults := NewCooldownTable()
	defaults.SetDefault(CategoryFree, 60_000)
	defaults.SetDefault(CategoryVIP, 60_000)

	users := UserCooldownTable{}
	users.RecordUse("u", CategoryFree, nowMillis)

	require.True(t, users.OnCooldown("u", CategoryFree, defaults, nowMillis+1))
	require.False(t, users.OnCooldown("u", CategoryVIP, defaults, nowMillis+1))
	require.False(t, users.OnCooldown("other", CategoryFree, defaults, nowMillis+1))
}
