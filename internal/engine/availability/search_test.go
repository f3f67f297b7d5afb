package availability

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchoolBooking/internal/domain"
)

func TestFirstAvailable(t *testing.T) {
	idx := Build([]domain.Reservation{
		reservation(domain.StatusConfirmed, jun(10), jun(14)),
		reservation(domain.StatusConfirmed, jun(16), jun(18)),
	})

	tests := []struct {
		name   string
		today  time.Time
		nights int
		want   time.Time
	}{
		{"today is free", jun(1), 3, jun(1)},
		{"stay would run into booking", jun(8), 3, jun(18)},
		{"gap fits exactly", jun(12), 2, jun(14)},
		{"today inside booking", jun(11), 1, jun(14)},
		{"zero nights", jun(11), 0, jun(11)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstAvailable(idx, tt.today, tt.nights, 365)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.False(t, idx.RangeOverlaps(got, tt.nights))
		})
	}
}

func TestFirstAvailable_JuneScenario(t *testing.T) {
	idx := Build([]domain.Reservation{reservation(domain.StatusConfirmed, jun(10), jun(14))})

	assert.True(t, idx.RangeOverlaps(jun(12), 3), "3 nights from Jun 12 must be rejected")
	assert.True(t, idx.RangeOverlaps(jun(11), 3))

	got, ok := FirstAvailable(idx, jun(11), 3, 365)
	require.True(t, ok)
	assert.Equal(t, jun(14), got)
}

func TestFirstAvailable_NoAvailability(t *testing.T) {
	idx := Build([]domain.Reservation{reservation(domain.StatusConfirmed, jun(1), jun(30))})

	got, ok := FirstAvailable(idx, jun(5), 2, 10)
	assert.False(t, ok)
	assert.Equal(t, jun(5), got, "fallback is today")
}

func TestFirstAvailable_DefaultWindow(t *testing.T) {
	idx := Build([]domain.Reservation{
		reservation(domain.StatusConfirmed, jun(1), jun(1).AddDate(0, 0, 400)),
	})

	_, ok := FirstAvailable(idx, jun(1), 1, 0)
	assert.False(t, ok)
}

func TestFirstAvailable_MatchesNaiveScan(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	today := jun(1)

	for round := 0; round < 200; round++ {
		var reservations []domain.Reservation
		for i := 0; i < rnd.Intn(12); i++ {
			from := today.AddDate(0, 0, rnd.Intn(60)-5)
			to := from.AddDate(0, 0, 1+rnd.Intn(6))
			reservations = append(reservations, reservation(domain.StatusConfirmed, from, to))
		}
		idx := Build(reservations)
		nights := 1 + rnd.Intn(5)
		window := 10 + rnd.Intn(60)

		wantDate, wantOK := today, false
		for d := 0; d < window; d++ {
			candidate := today.AddDate(0, 0, d)
			if !naiveOverlaps(reservations, candidate, nights) {
				wantDate, wantOK = candidate, true
				break
			}
		}

		gotDate, gotOK := FirstAvailable(idx, today, nights, window)
		require.Equal(t, wantOK, gotOK, "round %d", round)
		require.Equal(t, wantDate, gotDate, "round %d", round)
	}
}

func naiveOverlaps(reservations []domain.Reservation, start time.Time, nights int) bool {
	stay := domain.MustInterval(start, start.AddDate(0, 0, nights))
	for _, r := range reservations {
		if domain.Overlaps(r.Stay, stay) {
			return true
		}
	}
	return false
}
