package solver

import "sort"

// Construct builds the initial assignment: VIP bookings first, then by
// check-in date, ties in input order; each booking takes the first free room
// of the requested type. Bookings left without a room stay unassigned.
func Construct(sol *Solution) {
	order := make([]int, sol.Len())
	for i := range order {
		order[i] = i
		sol.Unassign(i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		x, y := sol.Bookings[order[a]], sol.Bookings[order[b]]
		if x.Guest.VIP != y.Guest.VIP {
			return x.Guest.VIP
		}
		return x.CheckIn.Before(y.CheckIn)
	})

	taken := make([]bool, len(sol.Rooms))
	for _, bi := range order {
		want := sol.Bookings[bi].RequestedType
		for ri, r := range sol.Rooms {
			if taken[ri] || r.Type != want {
				continue
			}
			taken[ri] = true
			sol.Assign(bi, ri)
			break
		}
	}
}
