package solver

import (
	"fmt"

	"hotel_allocation/internal/domain"
)

func registerHard() {
	register(Entry{Code: RoomTypeMatch, Name: "Room type must match request", Kind: domain.KindHard, DefaultWeight: -1, eval: roomTypeMatch})
	register(Entry{Code: NoDoubleBooking, Name: "No double booking", Kind: domain.KindHard, DefaultWeight: -1, eval: noDoubleBooking})
	register(Entry{Code: AccessibilityRequired, Name: "Accessibility requirement must be met", Kind: domain.KindHard, DefaultWeight: -1, eval: accessibilityRequired})
	register(Entry{Code: SmokingPolicy, Name: "Smoking policy must be satisfied", Kind: domain.KindHard, DefaultWeight: -1, eval: smokingPolicy})
	register(Entry{Code: PetPolicy, Name: "Pet policy must be satisfied", Kind: domain.KindHard, DefaultWeight: -1, eval: petPolicy})
	register(Entry{Code: AllBookingsAssigned, Name: "Every booking must have a room", Kind: domain.KindHard, DefaultWeight: -1, eval: allBookingsAssigned})
}

func violation(format string, args ...any) *domain.ConstraintMatch {
	return &domain.ConstraintMatch{
		Score:         domain.HardSoftScore{Hard: -1},
		Justification: fmt.Sprintf(format, args...),
	}
}

func roomTypeMatch(ev Eval, _ Params) *domain.ConstraintMatch {
	r := ev.Room()
	if r == nil {
		return nil
	}
	b := ev.Booking()
	if r.Type == b.RequestedType {
		return nil
	}
	return violation("booking %s requested %s but room %s is %s", b.ID, b.RequestedType, r.Number, r.Type)
}

// noDoubleBooking flags the booking if any other booking holds the same room
// on an overlapping night. Each side of a clash is reported on its own booking.
func noDoubleBooking(ev Eval, _ Params) *domain.ConstraintMatch {
	ri := ev.Sol.RoomIndex(ev.Index)
	if ri == unassigned {
		return nil
	}
	b := ev.Booking()
	for j := range ev.Sol.Bookings {
		if j == ev.Index || ev.Sol.RoomIndex(j) != ri {
			continue
		}
		o := &ev.Sol.Bookings[j]
		if b.Overlaps(*o) {
			return violation("room %s is double booked by %s (%s..%s) and %s (%s..%s)",
				ev.Sol.Rooms[ri].Number, b.ID, b.CheckIn, b.CheckOut, o.ID, o.CheckIn, o.CheckOut)
		}
	}
	return nil
}

func accessibilityRequired(ev Eval, _ Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || !b.Guest.Preferences.NeedsAccessible || r.Accessible {
		return nil
	}
	return violation("guest %s needs an accessible room but room %s is not accessible", b.Guest.ID, r.Number)
}

// smokingPolicy requires an exact match in both directions.
func smokingPolicy(ev Eval, _ Params) *domain.ConstraintMatch {
	r := ev.Room()
	if r == nil {
		return nil
	}
	b := ev.Booking()
	if r.SmokingAllowed == b.Guest.Preferences.Smoking {
		return nil
	}
	if b.Guest.Preferences.Smoking {
		return violation("guest %s smokes but room %s is non-smoking", b.Guest.ID, r.Number)
	}
	return violation("guest %s is non-smoking but room %s is a smoking room", b.Guest.ID, r.Number)
}

func petPolicy(ev Eval, _ Params) *domain.ConstraintMatch {
	r := ev.Room()
	b := ev.Booking()
	if r == nil || !b.Guest.Preferences.HasPet || r.PetFriendly {
		return nil
	}
	return violation("guest %s travels with a pet but room %s is not pet-friendly", b.Guest.ID, r.Number)
}

// allBookingsAssigned is opt-in; unassigned bookings are otherwise free.
func allBookingsAssigned(ev Eval, _ Params) *domain.ConstraintMatch {
	if ev.Room() != nil {
		return nil
	}
	b := ev.Booking()
	return violation("booking %s has no room assigned", b.ID)
}
