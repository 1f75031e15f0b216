package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"hotel_allocation/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateAllocation rejects input the evaluators cannot handle: missing ids,
// duplicate ids, empty or inverted stays and assignments to unknown rooms.
func ValidateAllocation(a domain.HotelAllocation) error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidAllocation, err)
	}

	rooms := make(map[string]struct{}, len(a.Rooms))
	for _, r := range a.Rooms {
		if _, dup := rooms[r.ID]; dup {
			return fmt.Errorf("%w: duplicate room id %q", domain.ErrInvalidAllocation, r.ID)
		}
		rooms[r.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(a.Bookings))
	for _, b := range a.Bookings {
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: duplicate booking id %q", domain.ErrInvalidAllocation, b.ID)
		}
		seen[b.ID] = struct{}{}

		if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
			return fmt.Errorf("%w: booking %q: check-in and check-out are required", domain.ErrInvalidAllocation, b.ID)
		}
		if !b.CheckOut.After(b.CheckIn) {
			return fmt.Errorf("%w: booking %q: check-out %s is not after check-in %s",
				domain.ErrInvalidAllocation, b.ID, b.CheckOut, b.CheckIn)
		}
		if b.AssignedRoomID != nil {
			if _, ok := rooms[*b.AssignedRoomID]; !ok {
				return fmt.Errorf("%w: booking %q: unknown room %q", domain.ErrInvalidAllocation, b.ID, *b.AssignedRoomID)
			}
		}
	}
	return nil
}
