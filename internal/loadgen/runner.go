package loadgen

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"room-reservation/internal/domain/reservation"
	reqdto "room-reservation/internal/handler/dto/request"
	"room-reservation/internal/pkg/clock"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Duration    time.Duration
	Concurrency int
	Seed        uint64
	// Warmup reservations are booked back to back before the mixed traffic starts.
	Warmup int
	// BadRatio is the share of creates that start today and of lookups that use an unknown id.
	BadRatio float64
	Weights  map[Op]int
}

func DefaultConfig() Config {
	return Config{
		Duration:    10 * time.Second,
		Concurrency: 16,
		Seed:        1,
		Warmup:      10,
		BadRatio:    0.15,
		Weights: map[Op]int{
			OpCreate:         3,
			OpRetrieve:       4,
			OpUpdate:         2,
			OpCancel:         1,
			OpAvailabilities: 3,
		},
	}
}

type Runner struct {
	client *Client
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger
	stats  *Stats

	rngMu sync.Mutex
	rng   *rand.Rand

	idsMu sync.Mutex
	ids   []uuid.UUID
	seq   int
}

func NewRunner(client *Client, cfg Config, c clock.Clock, logger *slog.Logger) *Runner {
	return &Runner{
		client: client,
		cfg:    cfg,
		clock:  c,
		logger: logger,
		stats:  NewStats(),
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Run replays mixed traffic until cfg.Duration elapses or ctx ends.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	if err := r.warmup(ctx); err != nil {
		return Report{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.Concurrency, 1))
	picker := newPicker(r.cfg.Weights)

loop:
	for {
		select {
		case <-gctx.Done():
			break loop
		default:
		}
		op := picker.pick(r.intn)
		g.Go(func() error {
			r.perform(gctx, op)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return r.stats.Report(time.Since(start)), nil
}

func (r *Runner) warmup(ctx context.Context) error {
	today := reservation.DateOf(r.clock.Now())
	cursor := 1

	g, gctx := errgroup.WithContext(ctx)
	for range r.cfg.Warmup {
		skip := r.intn(2)
		nights := 1 + r.intn(2)
		arrival := today.AddDays(cursor + skip)
		cursor += skip + nights
		g.Go(func() error {
			r.create(gctx, arrival, arrival.AddDays(nights))
			return nil
		})
	}
	return g.Wait()
}

func (r *Runner) perform(ctx context.Context, op Op) {
	today := reservation.DateOf(r.clock.Now())

	switch op {
	case OpCreate:
		arrival := today.AddDays(1 + r.intn(26))
		if r.chance(r.cfg.BadRatio) {
			arrival = today
		}
		r.create(ctx, arrival, arrival.AddDays(1+r.intn(2)))
	case OpRetrieve:
		r.timed(ctx, OpRetrieve, func() (int, error) {
			_, status, err := r.client.Get(ctx, r.randomID())
			return status, err
		})
	case OpUpdate:
		r.update(ctx)
	case OpCancel:
		r.timed(ctx, OpCancel, func() (int, error) {
			_, status, err := r.client.Cancel(ctx, r.randomID())
			return status, err
		})
	case OpAvailabilities:
		// up to 40 days wide so some windows break the one month rule
		from := today.AddDays(r.intn(25))
		to := from.AddDays(r.intn(40))
		r.timed(ctx, OpAvailabilities, func() (int, error) {
			_, status, err := r.client.Availabilities(ctx, from.String(), to.String())
			return status, err
		})
	}
}

func (r *Runner) create(ctx context.Context, arrival, departure reservation.Date) {
	r.idsMu.Lock()
	r.seq++
	n := r.seq
	r.idsMu.Unlock()

	req := reqdto.CreateReservationRequest{
		ClientEmail:   fmt.Sprintf("guest-%d@loadgen.example", n),
		ClientName:    fmt.Sprintf("Guest %d", n),
		ArrivalDate:   arrival.String(),
		DepartureDate: departure.String(),
	}
	r.timed(ctx, OpCreate, func() (int, error) {
		res, status, err := r.client.Create(ctx, req)
		if res != nil {
			r.idsMu.Lock()
			r.ids = append(r.ids, res.ID)
			r.idsMu.Unlock()
		}
		return status, err
	})
}

// update fetches a reservation first, then shifts it one day later.
func (r *Runner) update(ctx context.Context) {
	id := r.randomID()
	var current string
	r.timed(ctx, OpRetrieve, func() (int, error) {
		res, status, err := r.client.Get(ctx, id)
		if res != nil {
			current = res.ArrivalDate
		}
		return status, err
	})
	arrivalDate, err := reservation.ParseDate(current)
	if err != nil {
		return
	}

	arrival := arrivalDate.AddDays(1).String()
	departure := arrivalDate.AddDays(2).String()
	r.timed(ctx, OpUpdate, func() (int, error) {
		_, status, err := r.client.Update(ctx, id, reqdto.UpdateReservationRequest{
			ArrivalDate:   &arrival,
			DepartureDate: &departure,
		})
		return status, err
	})
}

func (r *Runner) timed(ctx context.Context, op Op, call func() (int, error)) {
	started := time.Now()
	status, err := call()
	if err != nil && ctx.Err() != nil {
		// cut off by the end of the run
		return
	}
	r.stats.Record(op, status, time.Since(started))
	if err != nil {
		r.logger.Debug("Request failed", "op", op, "error", err)
	}
}

// randomID returns an unknown id BadRatio of the time so some lookups miss.
func (r *Runner) randomID() uuid.UUID {
	if r.chance(r.cfg.BadRatio) {
		return uuid.New()
	}
	if id := r.randomKnownID(); id != uuid.Nil {
		return id
	}
	return uuid.New()
}

func (r *Runner) randomKnownID() uuid.UUID {
	r.idsMu.Lock()
	defer r.idsMu.Unlock()
	if len(r.ids) == 0 {
		return uuid.Nil
	}
	return r.ids[r.intn(len(r.ids))]
}

func (r *Runner) intn(n int) int {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.IntN(n)
}

func (r *Runner) chance(p float64) bool {
	r.rngMu.Lock()
	defer r.rngMu.Unlock()
	return r.rng.Float64() < p
}

type picker struct {
	ops   []Op
	total int
	cum   []int
}

func newPicker(weights map[Op]int) picker {
	var p picker
	for _, op := range opOrder {
		w := weights[op]
		if w <= 0 {
			continue
		}
		p.total += w
		p.ops = append(p.ops, op)
		p.cum = append(p.cum, p.total)
	}
	return p
}

func (p picker) pick(intn func(int) int) Op {
	if p.total == 0 {
		return OpRetrieve
	}
	n := intn(p.total)
	for i, c := range p.cum {
		if n < c {
			return p.ops[i]
		}
	}
	return p.ops[len(p.ops)-1]
}
