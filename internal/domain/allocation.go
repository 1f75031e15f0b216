package domain

import "time"

// HotelAllocation is the aggregate handed to a solve and returned from it.
// Score, Matches and the timing fields are only set on solver output.
type HotelAllocation struct {
	ID       string         `json:"id,omitempty"`
	TenantID string         `json:"tenantId" validate:"required"`
	Rooms    []Room         `json:"rooms" validate:"dive"`
	Bookings []GuestBooking `json:"bookings" validate:"dive"`

	Score      *HardSoftScore    `json:"score,omitempty"`
	Matches    []ConstraintMatch `json:"constraintMatches,omitempty"`
	SolveTime  time.Duration     `json:"solveTimeNs,omitempty"`
	Iterations int               `json:"iterations,omitempty"`
	SolvedAt   *time.Time        `json:"solvedAt,omitempty"`
}

// Clone returns a deep copy; the solver never touches caller-owned slices.
func (a HotelAllocation) Clone() HotelAllocation {
	out := a
	out.Rooms = append([]Room(nil), a.Rooms...)
	out.Bookings = make([]GuestBooking, len(a.Bookings))
	for i, b := range a.Bookings {
		if b.Guest.BudgetMax != nil {
			v := *b.Guest.BudgetMax
			b.Guest.BudgetMax = &v
		}
		if b.AssignedRoomID != nil {
			v := *b.AssignedRoomID
			b.AssignedRoomID = &v
		}
		out.Bookings[i] = b
	}
	out.Matches = append([]ConstraintMatch(nil), a.Matches...)
	if a.Score != nil {
		s := *a.Score
		out.Score = &s
	}
	if a.SolvedAt != nil {
		t := *a.SolvedAt
		out.SolvedAt = &t
	}
	return out
}

// Unassigned counts bookings without a room.
func (a HotelAllocation) Unassigned() int {
	n := 0
	for _, b := range a.Bookings {
		if b.AssignedRoomID == nil {
			n++
		}
	}
	return n
}

// HardSoftScore is compared lexicographically: hard first, then soft.
// Hard == 0 means feasible.
type HardSoftScore struct {
	Hard int `json:"hardScore"`
	Soft int `json:"softScore"`
}

func (s HardSoftScore) Add(o HardSoftScore) HardSoftScore {
	return HardSoftScore{Hard: s.Hard + o.Hard, Soft: s.Soft + o.Soft}
}

func (s HardSoftScore) Feasible() bool { return s.Hard >= 0 }

// Compare returns -1, 0 or +1.
func (s HardSoftScore) Compare(o HardSoftScore) int {
	switch {
	case s.Hard != o.Hard:
		if s.Hard > o.Hard {
			return 1
		}
		return -1
	case s.Soft > o.Soft:
		return 1
	case s.Soft < o.Soft:
		return -1
	}
	return 0
}

// Dominates is a strict improvement; equal scores do not dominate.
func (s HardSoftScore) Dominates(o HardSoftScore) bool { return s.Compare(o) > 0 }

type ConstraintMatch struct {
	Code          string        `json:"code"`
	Name          string        `json:"name"`
	Score         HardSoftScore `json:"score"`
	Justification string        `json:"justification"`
	BookingID     string        `json:"bookingId"`
}
