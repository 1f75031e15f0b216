package solver

import "hotel_allocation/internal/domain"

// Score evaluates every bound constraint against every booking and returns the
// summed score and the individual matches, in constraint then booking order.
// It never mutates sol.
func Score(sol *Solution, cs []Constraint) (domain.HardSoftScore, []domain.ConstraintMatch) {
	return evaluate(sol, cs, true)
}

// ScoreOnly is Score without collecting matches.
func ScoreOnly(sol *Solution, cs []Constraint) domain.HardSoftScore {
	s, _ := evaluate(sol, cs, false)
	return s
}

func evaluate(sol *Solution, cs []Constraint, collect bool) (domain.HardSoftScore, []domain.ConstraintMatch) {
	var (
		total   domain.HardSoftScore
		matches []domain.ConstraintMatch
	)
	for _, c := range cs {
		for i := range sol.Bookings {
			m := c.Evaluate(sol, i)
			if m == nil {
				continue
			}
			total = total.Add(m.Score)
			if collect {
				matches = append(matches, *m)
			}
		}
	}
	return total, matches
}
