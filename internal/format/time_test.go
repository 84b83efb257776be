package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFiletimeRoundTrip(t *testing.T) {
	want := time.Date(2024, time.March, 1, 12, 30, 45, 123456700, time.UTC)
	ft := TimeToFiletime(want)
	require.Equal(t, want, FiletimeToTime(ft))
}

func TestFiletimeBeforeUnixEpoch(t *testing.T) {
	require.Equal(t, time.Unix(0, 0).UTC(), FiletimeToTime(0))
}

func TestOLEDate(t *testing.T) {
	tests := []struct {
		date float64
		want time.Time
	}{
		{0, time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)},
		{2.25, time.Date(1900, time.January, 1, 6, 0, 0, 0, time.UTC)},
		{-1.25, time.Date(1899, time.December, 29, 6, 0, 0, 0, time.UTC)},
		{45352.5, time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, OLEDateToTime(tt.date), "date %v", tt.date)
		require.InDelta(t, tt.date, TimeToOLEDate(tt.want), 1e-9, "time %v", tt.want)
	}
}
