//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"room-reservation/internal/domain/reservation"
	"room-reservation/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func june(day int) reservation.Date {
	return reservation.NewDate(2024, time.June, day)
}

func period(from, to reservation.Date) reservation.Period {
	return reservation.NewStayPeriod(from, to)
}

func TestComputeAvailabilities(t *testing.T) {
	policy := reservation.DefaultBookingPolicy()
	today := builder.Today

	cases := []struct {
		name     string
		from, to reservation.Date
		periods  []reservation.Period
		want     []reservation.Availability
		errIs    error
	}{
		{
			name: "no reservations leaves the whole window",
			from: june(10), to: june(20),
			want: []reservation.Availability{reservation.NewAvailability(june(10), june(20))},
		},
		{
			name: "reservations outside or touching the window are ignored",
			from: june(10), to: june(20),
			periods: []reservation.Period{
				period(june(5), june(10)),
				period(june(20), june(22)),
				period(june(25), june(27)),
			},
			want: []reservation.Availability{reservation.NewAvailability(june(10), june(20))},
		},
		{
			name: "gaps between bordering and inner reservations",
			from: june(10), to: june(20),
			periods: []reservation.Period{
				period(june(9), june(11)),
				period(june(14), june(15)),
				period(june(19), june(21)),
			},
			want: []reservation.Availability{
				reservation.NewAvailability(june(11), june(14)),
				reservation.NewAvailability(june(15), june(19)),
			},
		},
		{
			name: "unsorted input is sorted by arrival",
			from: june(10), to: june(20),
			periods: []reservation.Period{
				period(june(19), june(21)),
				period(june(9), june(11)),
				period(june(14), june(15)),
			},
			want: []reservation.Availability{
				reservation.NewAvailability(june(11), june(14)),
				reservation.NewAvailability(june(15), june(19)),
			},
		},
		{
			name: "trailing gap after the last reservation",
			from: june(10), to: june(20),
			periods: []reservation.Period{
				period(june(12), june(13)),
			},
			want: []reservation.Availability{
				reservation.NewAvailability(june(10), june(12)),
				reservation.NewAvailability(june(13), june(20)),
			},
		},
		{
			name: "adjacent reservations leave no empty window",
			from: june(10), to: june(20),
			periods: []reservation.Period{
				period(june(12), june(14)),
				period(june(14), june(16)),
			},
			want: []reservation.Availability{
				reservation.NewAvailability(june(10), june(12)),
				reservation.NewAvailability(june(16), june(20)),
			},
		},
		{
			name: "reservations tiling the window leave nothing",
			from: june(10), to: june(14),
			periods: []reservation.Period{
				period(june(10), june(12)),
				period(june(12), june(14)),
			},
			want: []reservation.Availability{},
		},
		{
			name: "nested overlap never moves the cursor backwards",
			from: june(10), to: june(20),
			periods: []reservation.Period{
				period(june(11), june(15)),
				period(june(12), june(13)),
			},
			want: []reservation.Availability{
				reservation.NewAvailability(june(10), june(11)),
				reservation.NewAvailability(june(15), june(20)),
			},
		},
		{
			name: "past window is rejected",
			from: june(1).AddDays(-1), to: june(5),
			errIs: reservation.ErrAlreadyPast,
		},
		{
			name: "inverted window is rejected",
			from: june(12), to: june(10),
			errIs: reservation.ErrTooShort,
		},
		{
			name: "window too far ahead is rejected",
			from: reservation.NewDate(2024, time.July, 2), to: reservation.NewDate(2024, time.July, 4),
			errIs: reservation.ErrTooFar,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := policy.ComputeAvailabilities(today, c.from, c.to, c.periods)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("availabilities mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeAvailabilitiesDisjointSetOutsideWindow(t *testing.T) {
	policy := reservation.DefaultBookingPolicy()
	periods := []reservation.Period{
		period(june(2), june(4)),
		period(june(4), june(6)),
		period(june(22), june(25)),
		period(june(26), june(28)),
	}
	for start := 6; start < 20; start++ {
		for end := start + 1; end <= 22; end++ {
			got, err := policy.ComputeAvailabilities(builder.Today, june(start), june(end), periods)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, reservation.NewAvailability(june(start), june(end)), got[0])
		}
	}
}

func TestCheckAvailable(t *testing.T) {
	policy := reservation.DefaultBookingPolicy()
	taken := []reservation.Period{period(june(10), june(12))}

	t.Run("free period", func(t *testing.T) {
		require.NoError(t, policy.CheckAvailable(builder.Today, period(june(12), june(14)), taken))
	})

	t.Run("overlap is not available", func(t *testing.T) {
		err := policy.CheckAvailable(builder.Today, period(june(9), june(11)), taken)
		require.ErrorIs(t, err, reservation.ErrNotAvailable)
	})

	t.Run("validation runs first", func(t *testing.T) {
		err := policy.CheckAvailable(builder.Today, period(june(9), june(14)), taken)
		require.ErrorIs(t, err, reservation.ErrTooLong)
	})

	t.Run("containing window is not exact", func(t *testing.T) {
		windows := []reservation.Availability{reservation.NewAvailability(june(9), june(14))}
		assert.False(t, reservation.IsExactlyAvailable(period(june(10), june(12)), windows))
		assert.True(t, reservation.IsExactlyAvailable(period(june(9), june(14)), windows))
		assert.False(t, reservation.IsExactlyAvailable(period(june(9), june(14)), nil))
	})
}

func TestAvailabilityJSON(t *testing.T) {
	a := reservation.NewAvailability(june(11), june(14))
	b, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"2024-06-11","to":"2024-06-14","nbDays":3}`, string(b))
}
