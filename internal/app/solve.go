package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_allocation/internal/adapters/observability"
	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/solver"
)

type SolveOptions struct {
	DefaultTimeLimit time.Duration
	MaxTimeLimit     time.Duration
	MaxIterations    int
	Concurrency      int
	ResultTTL        time.Duration
	// Seed feeds each solve's random source; nil draws a fresh seed per solve.
	Seed func() uint64
}

// SolveService loads tenant constraints and runs construct + optimize + final
// scoring. Each call works on its own copy of the allocation.
type SolveService struct {
	repo  domain.ConstraintRepository
	store domain.ResultStore
	sem   *semaphore.Weighted
	opts  SolveOptions
}

// NewSolveService wires the orchestrator. store may be nil.
func NewSolveService(repo domain.ConstraintRepository, store domain.ResultStore, opts SolveOptions) *SolveService {
	if opts.DefaultTimeLimit <= 0 {
		opts.DefaultTimeLimit = solver.DefaultTimeLimit
	}
	if opts.MaxTimeLimit <= 0 {
		opts.MaxTimeLimit = 4 * opts.DefaultTimeLimit
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = solver.DefaultMaxIterations
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Seed == nil {
		opts.Seed = rand.Uint64
	}
	return &SolveService{
		repo:  repo,
		store: store,
		sem:   semaphore.NewWeighted(int64(opts.Concurrency)),
		opts:  opts,
	}
}

// Solve returns a new allocation with assignments, score, matches and timing.
// timeLimit <= 0 uses the configured default; larger values are capped.
func (s *SolveService) Solve(ctx context.Context, a domain.HotelAllocation, timeLimit time.Duration) (domain.HotelAllocation, error) {
	if err := ValidateAllocation(a); err != nil {
		observability.ObserveSolve("invalid", 0, 0)
		return domain.HotelAllocation{}, err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return domain.HotelAllocation{}, err
	}
	defer s.sem.Release(1)

	start := time.Now()
	cfgs, err := s.repo.GetTenantConstraints(ctx, a.TenantID)
	if err != nil {
		observability.ObserveSolve("error", time.Since(start), 0)
		return domain.HotelAllocation{}, fmt.Errorf("%w: tenant %s: %w", domain.ErrConfigLoad, a.TenantID, err)
	}
	cs, err := solver.Bind(cfgs)
	if err != nil {
		observability.ObserveSolve("error", time.Since(start), 0)
		return domain.HotelAllocation{}, fmt.Errorf("%w: tenant %s: %w", domain.ErrConfigLoad, a.TenantID, err)
	}

	out := a.Clone()
	if out.ID == "" {
		out.ID = uuid.NewString()
	}

	sol := solver.NewSolution(out)
	solver.Construct(sol)
	opt := solver.NewOptimizer(s.limit(timeLimit), s.opts.MaxIterations, s.opts.Seed())
	res := opt.Run(ctx, sol, cs)

	// Authoritative score from a fresh pass, not the optimizer's bookkeeping.
	score, matches := solver.Score(res.Best, cs)
	res.Best.Apply(&out)

	elapsed := time.Since(start)
	solvedAt := time.Now().UTC()
	out.Score = &score
	out.Matches = matches
	out.SolveTime = elapsed
	out.Iterations = res.Iterations
	out.SolvedAt = &solvedAt

	outcome := "feasible"
	if !score.Feasible() {
		outcome = "infeasible"
	}
	observability.ObserveSolve(outcome, elapsed, res.Iterations)
	observability.ObserveHardScore(score.Hard)
	log.Info().
		Str("tenant", out.TenantID).
		Str("allocation", out.ID).
		Int("bookings", len(out.Bookings)).
		Int("rooms", len(out.Rooms)).
		Int("constraints", len(cs)).
		Int("iterations", res.Iterations).
		Int("hard", score.Hard).
		Int("soft", score.Soft).
		Int("unassigned", out.Unassigned()).
		Dur("duration", elapsed).
		Msg("solve completed")

	if s.store != nil {
		if err := s.store.Put(ctx, out, int(s.opts.ResultTTL.Seconds())); err != nil {
			// the solve itself succeeded; storage is best-effort
			log.Warn().Err(err).Str("allocation", out.ID).Msg("store solve result failed")
		}
	}
	return out, nil
}

func (s *SolveService) limit(d time.Duration) time.Duration {
	if d <= 0 {
		return s.opts.DefaultTimeLimit
	}
	if d > s.opts.MaxTimeLimit {
		return s.opts.MaxTimeLimit
	}
	return d
}
