package solver

import "hotel_allocation/internal/domain"

const unassigned = -1

// Solution is an arena over the allocation's rooms and bookings. Rooms and
// bookings are shared read-only between copies; only the assignment vector
// (booking index -> room index, or -1) differs.
type Solution struct {
	Rooms    []domain.Room
	Bookings []domain.GuestBooking

	assign  []int
	roomIdx map[string]int
}

// NewSolution indexes the allocation. Existing AssignedRoomID values are kept;
// ids that name no room are treated as unassigned.
func NewSolution(a domain.HotelAllocation) *Solution {
	s := &Solution{
		Rooms:    a.Rooms,
		Bookings: a.Bookings,
		assign:   make([]int, len(a.Bookings)),
		roomIdx:  make(map[string]int, len(a.Rooms)),
	}
	for i, r := range a.Rooms {
		s.roomIdx[r.ID] = i
	}
	for i, b := range a.Bookings {
		s.assign[i] = unassigned
		if b.AssignedRoomID == nil {
			continue
		}
		if ri, ok := s.roomIdx[*b.AssignedRoomID]; ok {
			s.assign[i] = ri
		}
	}
	return s
}

func (s *Solution) Len() int { return len(s.Bookings) }

// Room returns the room assigned to booking i, or nil.
func (s *Solution) Room(i int) *domain.Room {
	ri := s.assign[i]
	if ri == unassigned {
		return nil
	}
	return &s.Rooms[ri]
}

// RoomIndex returns the room index assigned to booking i, or -1.
func (s *Solution) RoomIndex(i int) int { return s.assign[i] }

func (s *Solution) Assign(i, room int) { s.assign[i] = room }

func (s *Solution) Unassign(i int) { s.assign[i] = unassigned }

// Swap exchanges the rooms of bookings i and j.
func (s *Solution) Swap(i, j int) { s.assign[i], s.assign[j] = s.assign[j], s.assign[i] }

// Copy shares the immutable arena and duplicates the assignment vector.
func (s *Solution) Copy() *Solution {
	c := *s
	c.assign = append([]int(nil), s.assign...)
	return &c
}

// Apply writes the assignment back into a, which must be built from the same
// rooms and bookings.
func (s *Solution) Apply(a *domain.HotelAllocation) {
	for i := range a.Bookings {
		if r := s.Room(i); r != nil {
			id := r.ID
			a.Bookings[i].AssignedRoomID = &id
		} else {
			a.Bookings[i].AssignedRoomID = nil
		}
	}
}
