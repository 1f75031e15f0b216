package solver

import (
	"context"
	"math/rand/v2"
	"time"

	"hotel_allocation/internal/domain"
)

const (
	DefaultMaxIterations = 1000
	DefaultTimeLimit     = 30 * time.Second
)

type state int

const (
	searching state = iota
	done
)

// Optimizer is a first-improvement hill climber over pairwise room swaps.
// It keeps searching for the whole budget even once feasible.
type Optimizer struct {
	MaxIterations int
	TimeLimit     time.Duration
	Rand          *rand.Rand

	now func() time.Time
}

// NewOptimizer returns an optimizer with its own random source.
func NewOptimizer(timeLimit time.Duration, maxIterations int, seed uint64) *Optimizer {
	return &Optimizer{
		MaxIterations: maxIterations,
		TimeLimit:     timeLimit,
		Rand:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

type Result struct {
	Best       *Solution
	Score      domain.HardSoftScore
	Iterations int
}

// Run starts from initial, which it does not modify. The deadline, the
// iteration cap and ctx are checked between iterations only.
func (o *Optimizer) Run(ctx context.Context, initial *Solution, cs []Constraint) Result {
	maxIter := o.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	limit := o.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	now := o.now
	if now == nil {
		now = time.Now
	}
	r := o.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	best := initial.Copy()
	bestScore := ScoreOnly(best, cs)
	deadline := now().Add(limit)
	n := best.Len()

	st := searching
	iter := 0
	for st == searching {
		if n < 2 || iter >= maxIter || !now().Before(deadline) || ctx.Err() != nil {
			st = done
			continue
		}
		i := r.IntN(n)
		j := r.IntN(n - 1)
		if j >= i {
			j++
		}
		best, bestScore, _ = improve(best, bestScore, cs, i, j)
		iter++
	}
	return Result{Best: best, Score: bestScore, Iterations: iter}
}

// improve scores the neighbor obtained by swapping i and j and returns it only
// if it strictly dominates the incumbent.
func improve(best *Solution, bestScore domain.HardSoftScore, cs []Constraint, i, j int) (*Solution, domain.HardSoftScore, bool) {
	cand := best.Copy()
	cand.Swap(i, j)
	s := ScoreOnly(cand, cs)
	if s.Dominates(bestScore) {
		return cand, s, true
	}
	return best, bestScore, false
}
