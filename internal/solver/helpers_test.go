package solver_test

import (
	"testing"
	"time"

	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/solver"
)

func ptr[T any](v T) *T { return &v }

func day(d int) domain.Date { return domain.NewDate(2025, time.October, d) }

func room(id string, typ domain.RoomType) domain.Room {
	return domain.Room{ID: id, Number: id, Type: typ, Floor: 1, View: domain.ViewCity, PricePerNight: 100}
}

func booking(id string, typ domain.RoomType, in, out int) domain.GuestBooking {
	return domain.GuestBooking{
		ID:            id,
		Guest:         domain.Guest{ID: "G-" + id},
		CheckIn:       day(in),
		CheckOut:      day(out),
		RequestedType: typ,
	}
}

func assigned(b domain.GuestBooking, roomID string) domain.GuestBooking {
	b.AssignedRoomID = ptr(roomID)
	return b
}

func bind(t *testing.T, cfgs ...domain.TenantConstraintConfig) []solver.Constraint {
	t.Helper()
	cs, err := solver.Bind(cfgs)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	return cs
}

func enable(code solver.Code) domain.TenantConstraintConfig {
	return domain.TenantConstraintConfig{TenantID: "t1", Code: string(code), Enabled: true}
}

func enableWith(code solver.Code, params map[string]any) domain.TenantConstraintConfig {
	c := enable(code)
	c.Params = params
	return c
}

func hardCodes() []domain.TenantConstraintConfig {
	return []domain.TenantConstraintConfig{
		enable(solver.RoomTypeMatch),
		enable(solver.NoDoubleBooking),
		enable(solver.AccessibilityRequired),
		enable(solver.SmokingPolicy),
		enable(solver.PetPolicy),
	}
}

// evalOne binds a single constraint and evaluates it for booking i.
func evalOne(t *testing.T, code solver.Code, a domain.HotelAllocation, i int) *domain.ConstraintMatch {
	t.Helper()
	cs := bind(t, enable(code))
	return cs[0].Evaluate(solver.NewSolution(a), i)
}
