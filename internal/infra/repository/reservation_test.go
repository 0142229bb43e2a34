//go:build unit

package repository

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"room-reservation/internal/domain/reservation"
	"room-reservation/internal/infra"
	"room-reservation/internal/pkg/clock"
	"room-reservation/internal/pkg/errs"
	"room-reservation/internal/pkg/patch"
	"room-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo() *ReservationRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewReservationRepository(logger, clock.NewMockClock(builder.TodayTime))
}

func seed(t *testing.T, repo *ReservationRepository, b *builder.ReservationBuilder) *reservation.Reservation {
	t.Helper()
	res := b.BuildDomain()
	require.NoError(t, repo.Insert(context.Background(), res))
	return res
}

func TestReservationRepository_CRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		repo := newTestRepo()
		b := builder.NewReservationBuilder()

		created, err := repo.Create(ctx, b.BuildClient(), b.BuildPeriod())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusActive, created.Status())

		found, err := repo.FindByID(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, created.ID(), found.ID())
		assert.Equal(t, b.BuildPeriod(), found.Period())
	})

	t.Run("returned copies do not alias the store", func(t *testing.T) {
		repo := newTestRepo()
		res := seed(t, repo, builder.NewReservationBuilder())

		found, err := repo.FindByID(ctx, res.ID())
		require.NoError(t, err)
		found.ApplyUpdate(reservation.CancelUpdate(), builder.TodayTime)

		again, err := repo.FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.True(t, again.IsActive())
	})

	t.Run("update leaves unset fields", func(t *testing.T) {
		repo := newTestRepo()
		res := seed(t, repo, builder.NewReservationBuilder().Days(2, 4))

		updated, err := repo.Update(ctx, res.ID(), reservation.Update{Departure: patch.Set(builder.Today.AddDays(5))})
		require.NoError(t, err)
		assert.Equal(t, builder.Today.AddDays(2), updated.ArrivalDate())
		assert.Equal(t, builder.Today.AddDays(5), updated.DepartureDate())
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		repo := newTestRepo()
		res := seed(t, repo, builder.NewReservationBuilder())

		first, err := repo.Cancel(ctx, res.ID())
		require.NoError(t, err)
		second, err := repo.Cancel(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCanceled, first.Status())
		assert.Equal(t, reservation.StatusCanceled, second.Status())
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		repo := newTestRepo()
		id := uuid.New()

		_, err := repo.FindByID(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)

		_, err = repo.Update(ctx, id, reservation.CancelUpdate())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))

		_, err = repo.Cancel(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("insert keeps fixtures as built, past stays included", func(t *testing.T) {
		repo := newTestRepo()
		res := seed(t, repo, builder.NewReservationBuilder().Days(-5, -3).Canceled())

		found, err := repo.FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, res.ID(), found.ID())
		assert.Equal(t, res.Period(), found.Period())
		assert.Equal(t, res.CreatedAt(), found.CreatedAt())
		assert.True(t, found.IsCanceled())
	})

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		repo := newTestRepo()
		res := seed(t, repo, builder.NewReservationBuilder())

		err := repo.Insert(ctx, res)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("canceled context", func(t *testing.T) {
		repo := newTestRepo()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.FindFrom(cctx, builder.Today)
		assert.True(t, infra.IsKind(err, infra.KindCanceled))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestReservationRepository_FindFrom(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	early := seed(t, repo, builder.NewReservationBuilder().Days(1, 3))
	boundary := seed(t, repo, builder.NewReservationBuilder().Days(3, 5))
	canceled := seed(t, repo, builder.NewReservationBuilder().Days(6, 8).Canceled())
	late := seed(t, repo, builder.NewReservationBuilder().Days(10, 12))

	ids := func(rs []*reservation.Reservation) []uuid.UUID {
		out := make([]uuid.UUID, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID())
		}
		return out
	}

	t.Run("departure on or after the date, any status, ordered by arrival", func(t *testing.T) {
		got, err := repo.FindFrom(ctx, builder.Today.AddDays(5))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{boundary.ID(), canceled.ID(), late.ID()}, ids(got))
	})

	t.Run("except skips one id", func(t *testing.T) {
		got, err := repo.FindFromExcept(ctx, builder.Today, late.ID())
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{early.ID(), boundary.ID(), canceled.ID()}, ids(got))
	})
}

func TestReservationRepository_Guarded(t *testing.T) {
	ctx := context.Background()
	policy := reservation.DefaultBookingPolicy()

	guardFor := func(period reservation.Period) reservation.CreateGuard {
		return func(candidates []*reservation.Reservation) error {
			return policy.CheckAvailable(builder.Today, period, reservation.ActivePeriods(candidates))
		}
	}

	t.Run("guard rejection writes nothing", func(t *testing.T) {
		repo := newTestRepo()
		seed(t, repo, builder.NewReservationBuilder().Days(2, 4))
		b := builder.NewReservationBuilder().Days(3, 5)

		_, err := repo.CreateIfAvailable(ctx, b.BuildClient(), b.BuildPeriod(), guardFor(b.BuildPeriod()))
		require.ErrorIs(t, err, reservation.ErrNotAvailable)

		all, err := repo.FindFrom(ctx, builder.Today)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("concurrent overlapping creates book once", func(t *testing.T) {
		repo := newTestRepo()
		b := builder.NewReservationBuilder().Days(5, 7)

		const workers = 32
		var ok atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.CreateIfAvailable(ctx, b.BuildClient(), b.BuildPeriod(), guardFor(b.BuildPeriod())); err == nil {
					ok.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
	})

	t.Run("update decider sees stored state and excludes itself", func(t *testing.T) {
		repo := newTestRepo()
		res := seed(t, repo, builder.NewReservationBuilder().Days(2, 4))
		other := seed(t, repo, builder.NewReservationBuilder().Days(6, 8))

		var seen []uuid.UUID
		updated, err := repo.UpdateIfAvailable(ctx, res.ID(), func(current *reservation.Reservation, candidates reservation.Candidates) (reservation.Update, error) {
			assert.Equal(t, res.ID(), current.ID())
			for _, c := range candidates(builder.Today) {
				seen = append(seen, c.ID())
			}
			return reservation.Update{Departure: patch.Set(builder.Today.AddDays(5))}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{other.ID()}, seen)
		assert.Equal(t, builder.Today.AddDays(5), updated.DepartureDate())
	})

	t.Run("update decider error writes nothing", func(t *testing.T) {
		repo := newTestRepo()
		res := seed(t, repo, builder.NewReservationBuilder().Days(2, 4))

		_, err := repo.UpdateIfAvailable(ctx, res.ID(), func(*reservation.Reservation, reservation.Candidates) (reservation.Update, error) {
			return reservation.Update{}, reservation.ErrNotAvailable
		})
		require.ErrorIs(t, err, reservation.ErrNotAvailable)

		found, err := repo.FindByID(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, res.Period(), found.Period())
	})

	t.Run("update of unknown id", func(t *testing.T) {
		repo := newTestRepo()
		_, err := repo.UpdateIfAvailable(ctx, uuid.New(), func(*reservation.Reservation, reservation.Candidates) (reservation.Update, error) {
			t.Fatal("decider must not run")
			return reservation.Update{}, nil
		})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
