package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const nowMillis = int64(1_700_000_000_000)

func TestEntitlementTableLegacyDecode(t *testing.T) {
	raw := []byte(`{
		"user-legacy": ["free", "premium"],
		"user-records": {"vip": {"permanent": true}}
	}`)

	table := EntitlementTable{}
	require.NoError(t, json.Unmarshal(raw, &table))

	require.Equal(t, []Category{CategoryFree, CategoryPremium}, table["user-legacy"].Legacy)
	require.True(t, table.HasAccess("user-legacy", CategoryFree, nowMillis))
	require.True(t, table.HasAccess("user-legacy", CategoryPremium, nowMillis))
	require.False(t, table.HasAccess("user-legacy", CategoryVIP, nowMillis))
	require.True(t, table.HasAccess("user-records", CategoryVIP, nowMillis))
}

func TestEntitlementTableNeverEmitsLegacyForm(t *testing.T) {
	table := EntitlementTable{
		"u1": {Legacy: []Category{CategoryBooster}},
	}

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var decoded map[string]map[string]AccessRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.True(t, decoded["u1"]["booster"].Permanent)
}

func TestNormalizePromotesLegacyAndDropsExpired(t *testing.T) {
	table := EntitlementTable{
		"legacy-user": {Legacy: []Category{CategoryFree}},
		"mixed-user": {Records: map[Category]AccessRecord{
			CategoryPremium: ExpiringAccess(nowMillis - 1),
			CategoryVIP:     ExpiringAccess(nowMillis + 60_000),
		}},
		"expired-user": {Records: map[Category]AccessRecord{
			CategoryBooster: ExpiringAccess(nowMillis),
		}},
	}

	cleaned := table.Normalize(nowMillis)

	require.True(t, cleaned["legacy-user"].Records[CategoryFree].Permanent)
	require.Nil(t, cleaned["legacy-user"].Legacy)

	_, hasPremium := cleaned["mixed-user"].Records[CategoryPremium]
	require.False(t, hasPremium)
	require.True(t, cleaned.HasAccess("mixed-user", CategoryVIP, nowMillis))

	// A record expiring exactly now is semantically absent; the user had
	// nothing else, so the entry disappears entirely.
	_, exists := cleaned["expired-user"]
	require.False(t, exists)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	table := EntitlementTable{
		"a": {Legacy: []Category{CategoryFree, CategoryVIP}},
		"b": {Records: map[Category]AccessRecord{
			CategoryPremium: ExpiringAccess(nowMillis - 5),
			CategoryFree:    PermanentAccess(),
		}},
	}

	once := table.Normalize(nowMillis)
	twice := once.Normalize(nowMillis)
	require.Equal(t, once, twice)
}

func TestHasAccessDoesNotMutate(t *testing.T) {
	table := EntitlementTable{
		"u": {Records: map[Category]AccessRecord{
			CategoryPremium: ExpiringAccess(nowMillis - 1),
		}},
	}

	require.False(t, table.HasAccess("u", CategoryPremium, nowMillis))

	// The expired record is still there until Normalize runs.
	_, exists := table["u"].Records[CategoryPremium]
	require.True(t, exists)
}

func TestHasAccessExpiryBoundary(t *testing.T) {
	table := EntitlementTable{
		"u": {Records: map[Category]AccessRecord{
			CategoryPremium: ExpiringAccess(nowMillis),
		}},
	}

	require.True(t, table.HasAccess("u", CategoryPremium, nowMillis-1))
	require.False(t, table.HasAccess("u", CategoryPremium, nowMillis))
}

func TestGrantResolvesLegacyEntries(t *testing.T) {
	table := EntitlementTable{
		"u": {Legacy: []Category{CategoryFree}},
	}

	table.Grant("u", CategoryPremium, ExpiringAccess(nowMillis+1000))

	grants := table["u"]
	require.Nil(t, grants.Legacy)
	require.True(t, grants.Records[CategoryFree].Permanent)
	require.Equal(t, nowMillis+1000, grants.Records[CategoryPremium].Expiry)
}

func TestGrantCreatesUserEntry(t *testing.T) {
	table := EntitlementTable{}
	table.Grant("new-user", CategoryVIP, PermanentAccess())
	require.True(t, table.HasAccess("new-user", CategoryVIP, nowMillis))
}
