package parking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-06-10", "2024-06-10"}, // Monday
		{"2024-06-12", "2024-06-10"},
		{"2024-06-16", "2024-06-10"}, // Sunday belongs to the week before
		{"2024-06-17", "2024-06-17"},
		{"2025-01-01", "2024-12-30"}, // across a year boundary
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekKey(mustDate(t, tt.in)).String())
		})
	}
}

func TestDate_JSONAndScan(t *testing.T) {
	d := mustDate(t, "2024-06-10")

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-06-10"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
	assert.Error(t, json.Unmarshal([]byte(`"June 10"`), &back))

	var scanned Date
	require.NoError(t, scanned.Scan(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, d, scanned)
	require.NoError(t, scanned.Scan([]byte("2024-06-11T00:00:00Z")))
	assert.Equal(t, d.AddDays(1), scanned)
	assert.Error(t, scanned.Scan(42))
}

func TestIndex(t *testing.T) {
	guestDay := mustDate(t, "2024-06-10")
	snap := Snapshot{
		Spots: []Spot{
			{ID: 1, Code: "O1", Category: CategoryOutside},
			{ID: 2, Code: "U1", Category: CategoryUnderground},
			{ID: 3, Code: "G1", Category: CategoryGuest, AvailableDate: &guestDay},
			{ID: 4, Code: "G2", Category: CategoryGuest},
		},
		Bookings: []Booking{
			booking(t, 2, "2024-06-10", "u1"),
			booking(t, 1, "2024-06-11", "u2"),
			booking(t, 2, "2024-06-14", "u1"),
			booking(t, 2, "2024-06-17", "u1"),
			booking(t, 99, "2024-06-12", "u1"), // spot since deleted
		},
	}
	idx := NewIndex(snap)

	codes := func(spots []Spot) []string {
		var out []string
		for _, s := range spots {
			out = append(out, s.Code)
		}
		return out
	}
	assert.Equal(t, []string{"O1", "G1"}, codes(idx.FreeSpots(mustDate(t, "2024-06-10"))))
	assert.Equal(t, []string{"U1"}, codes(idx.FreeSpots(mustDate(t, "2024-06-11"))))
	assert.Equal(t, []string{"O1", "U1"}, codes(idx.FreeSpots(mustDate(t, "2024-06-13"))))

	week := mustDate(t, "2024-06-10")
	assert.Equal(t, 2, idx.ScarceCountInWeek("u1", week))
	assert.Equal(t, 1, idx.ScarceCountInWeek("u1", mustDate(t, "2024-06-17")))
	assert.Equal(t, 0, idx.ScarceCountInWeek("u2", week))

	assert.True(t, idx.HasBooking("u1", mustDate(t, "2024-06-12")))
	assert.False(t, idx.HasBooking("u2", mustDate(t, "2024-06-10")))

	s, ok := idx.SpotByCode("G1")
	require.True(t, ok)
	assert.Equal(t, int64(3), s.ID)
}

func TestAnnotateSpots(t *testing.T) {
	guestDay := mustDate(t, "2024-06-11")
	spots := []Spot{
		{ID: 1, Code: "O1", Category: CategoryOutside},
		{ID: 2, Code: "U1", Category: CategoryUnderground},
		{ID: 3, Code: "G1", Category: CategoryGuest, AvailableDate: &guestDay},
	}
	bookings := []Booking{
		booking(t, 2, "2024-06-10", "u1"),
		booking(t, 1, "2024-06-11", "u2"),
	}

	got := AnnotateSpots(spots, bookings, mustDate(t, "2024-06-10"), "u1")
	require.Len(t, got, 2)
	assert.False(t, got[0].Booked)
	assert.True(t, got[1].Booked)
	assert.True(t, got[1].Mine)
	assert.Equal(t, "u1@example.com", got[1].BookedBy)

	got = AnnotateSpots(spots, bookings, mustDate(t, "2024-06-11"), "u1")
	require.Len(t, got, 3)
	assert.True(t, got[0].Booked)
	assert.False(t, got[0].Mine)
	assert.False(t, got[2].Booked)
}

func TestSnapshotWindow(t *testing.T) {
	from, to := SnapshotWindow([]Date{
		mustDate(t, "2024-06-19"),
		mustDate(t, "2024-06-11"),
		mustDate(t, "2024-06-14"),
	})
	assert.Equal(t, "2024-06-10", from.String())
	assert.Equal(t, "2024-06-23", to.String())

	from, to = SnapshotWindow([]Date{mustDate(t, "2024-06-16")})
	assert.Equal(t, "2024-06-10", from.String())
	assert.Equal(t, "2024-06-16", to.String())
}
