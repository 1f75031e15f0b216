package solver_test

import (
	"testing"

	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/solver"
)

func TestHardConstraints_Soundness(t *testing.T) {
	accessible := room("A1", domain.RoomDouble)
	accessible.Accessible = true
	smoking := room("S1", domain.RoomDouble)
	smoking.SmokingAllowed = true
	petRoom := room("P1", domain.RoomDouble)
	petRoom.PetFriendly = true
	plain := room("R1", domain.RoomDouble)
	suite := room("X1", domain.RoomSuite)

	needsAccess := booking("B1", domain.RoomDouble, 1, 3)
	needsAccess.Guest.Preferences.NeedsAccessible = true
	smoker := booking("B1", domain.RoomDouble, 1, 3)
	smoker.Guest.Preferences.Smoking = true
	withPet := booking("B1", domain.RoomDouble, 1, 3)
	withPet.Guest.Preferences.HasPet = true
	regular := booking("B1", domain.RoomDouble, 1, 3)

	cases := []struct {
		name      string
		code      solver.Code
		room      domain.Room
		booking   domain.GuestBooking
		violating bool
	}{
		{"room type mismatch", solver.RoomTypeMatch, suite, regular, true},
		{"room type match", solver.RoomTypeMatch, plain, regular, false},
		{"accessibility missing", solver.AccessibilityRequired, plain, needsAccess, true},
		{"accessibility met", solver.AccessibilityRequired, accessible, needsAccess, false},
		{"accessible room for anyone", solver.AccessibilityRequired, accessible, regular, false},
		{"smoker in non-smoking room", solver.SmokingPolicy, plain, smoker, true},
		{"non-smoker in smoking room", solver.SmokingPolicy, smoking, regular, true},
		{"smoker in smoking room", solver.SmokingPolicy, smoking, smoker, false},
		{"non-smoker in non-smoking room", solver.SmokingPolicy, plain, regular, false},
		{"pet in regular room", solver.PetPolicy, plain, withPet, true},
		{"pet in pet room", solver.PetPolicy, petRoom, withPet, false},
		{"no pet in regular room", solver.PetPolicy, plain, regular, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := domain.HotelAllocation{
				TenantID: "t1",
				Rooms:    []domain.Room{tc.room},
				Bookings: []domain.GuestBooking{assigned(tc.booking, tc.room.ID)},
			}
			m := evalOne(t, tc.code, a, 0)
			if !tc.violating {
				if m != nil {
					t.Fatalf("expected no match, got %+v", *m)
				}
				return
			}
			if m == nil {
				t.Fatalf("expected a violation")
			}
			if m.Score != (domain.HardSoftScore{Hard: -1}) {
				t.Fatalf("expected (-1, 0), got %+v", m.Score)
			}
			if m.Code != string(tc.code) || m.BookingID != "B1" || m.Justification == "" {
				t.Fatalf("unexpected match: %+v", *m)
			}
		})
	}
}

func TestHardConstraints_UnassignedNeverFires(t *testing.T) {
	b := booking("B1", domain.RoomSuite, 1, 3)
	b.Guest.Preferences.NeedsAccessible = true
	b.Guest.Preferences.HasPet = true
	b.Guest.Preferences.Smoking = true
	a := domain.HotelAllocation{
		TenantID: "t1",
		Rooms:    []domain.Room{room("R1", domain.RoomDouble)},
		Bookings: []domain.GuestBooking{b},
	}
	score, matches := solver.Score(solver.NewSolution(a), bind(t, hardCodes()...))
	if score != (domain.HardSoftScore{}) || len(matches) != 0 {
		t.Fatalf("unassigned booking should be free, got %+v %+v", score, matches)
	}
}

func TestNoDoubleBooking_Boundary(t *testing.T) {
	r := room("R1", domain.RoomDouble)

	// A checks out on the 5th, B checks in on the 5th: touching, not overlapping.
	touching := domain.HotelAllocation{
		TenantID: "t1",
		Rooms:    []domain.Room{r},
		Bookings: []domain.GuestBooking{
			assigned(booking("A", domain.RoomDouble, 1, 5), "R1"),
			assigned(booking("B", domain.RoomDouble, 5, 8), "R1"),
		},
	}
	for i := range touching.Bookings {
		if m := evalOne(t, solver.NoDoubleBooking, touching, i); m != nil {
			t.Fatalf("touching stays flagged: %+v", *m)
		}
	}

	// B checks in one day before A checks out.
	overlapping := domain.HotelAllocation{
		TenantID: "t1",
		Rooms:    []domain.Room{r},
		Bookings: []domain.GuestBooking{
			assigned(booking("A", domain.RoomDouble, 1, 5), "R1"),
			assigned(booking("B", domain.RoomDouble, 4, 8), "R1"),
		},
	}
	for i := range overlapping.Bookings {
		m := evalOne(t, solver.NoDoubleBooking, overlapping, i)
		if m == nil {
			t.Fatalf("overlap not flagged for booking %d", i)
		}
		if m.Score.Hard != -1 || m.Score.Soft != 0 {
			t.Fatalf("unexpected score %+v", m.Score)
		}
	}
}

func TestNoDoubleBooking_DifferentRooms(t *testing.T) {
	a := domain.HotelAllocation{
		TenantID: "t1",
		Rooms:    []domain.Room{room("R1", domain.RoomDouble), room("R2", domain.RoomDouble)},
		Bookings: []domain.GuestBooking{
			assigned(booking("A", domain.RoomDouble, 1, 5), "R1"),
			assigned(booking("B", domain.RoomDouble, 1, 5), "R2"),
		},
	}
	if m := evalOne(t, solver.NoDoubleBooking, a, 0); m != nil {
		t.Fatalf("different rooms flagged: %+v", *m)
	}
}

func TestAllBookingsAssigned(t *testing.T) {
	a := domain.HotelAllocation{
		TenantID: "t1",
		Rooms:    []domain.Room{room("R1", domain.RoomDouble)},
		Bookings: []domain.GuestBooking{
			assigned(booking("A", domain.RoomDouble, 1, 5), "R1"),
			booking("B", domain.RoomDouble, 1, 5),
		},
	}
	if m := evalOne(t, solver.AllBookingsAssigned, a, 0); m != nil {
		t.Fatalf("assigned booking flagged: %+v", *m)
	}
	m := evalOne(t, solver.AllBookingsAssigned, a, 1)
	if m == nil || m.Score.Hard != -1 {
		t.Fatalf("expected violation for unassigned booking, got %+v", m)
	}
}

func TestInfeasiblePair_UnassignedBeatsDoubleBooking(t *testing.T) {
	r := room("R1", domain.RoomDouble)
	cs := bind(t, enable(solver.NoDoubleBooking), enable(solver.AllBookingsAssigned))

	doubled := domain.HotelAllocation{
		TenantID: "t1",
		Rooms:    []domain.Room{r},
		Bookings: []domain.GuestBooking{
			assigned(booking("A", domain.RoomDouble, 1, 5), "R1"),
			assigned(booking("B", domain.RoomDouble, 2, 6), "R1"),
		},
	}
	one := domain.HotelAllocation{
		TenantID: "t1",
		Rooms:    []domain.Room{r},
		Bookings: []domain.GuestBooking{
			assigned(booking("A", domain.RoomDouble, 1, 5), "R1"),
			booking("B", domain.RoomDouble, 2, 6),
		},
	}

	ds := solver.ScoreOnly(solver.NewSolution(doubled), cs)
	if ds.Hard != -2 {
		t.Fatalf("each side of a clash is charged, expected hard -2, got %+v", ds)
	}
	us := solver.ScoreOnly(solver.NewSolution(one), cs)
	if us.Hard != -1 {
		t.Fatalf("one unassigned booking should cost -1, got %+v", us)
	}
	if us.Compare(ds) <= 0 {
		t.Fatalf("unassigned %+v should dominate double booking %+v", us, ds)
	}
}
