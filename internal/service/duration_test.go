package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToMilliseconds(t *testing.T) {
	cases := []struct {
		quantity int64
		unit     TimeUnit
		want     int64
	}{
		{30, UnitSeconds, 30_000},
		{1, UnitMinutes, 60_000},
		{2, UnitHours, 7_200_000},
		{1, UnitDays, 86_400_000},
		{1, UnitWeeks, 604_800_000},
		{0, UnitMinutes, 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ToMilliseconds(tc.quantity, tc.unit),
			"%d %s", tc.quantity, tc.unit)
	}
}

func TestToMillisecondsUnknownUnitFallsBackToSeconds(t *testing.T) {
	require.Equal(t, int64(5000), ToMilliseconds(5, TimeUnit("fortnights")))
}
