package app_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"hotel_allocation/internal/domain"
	"hotel_allocation/internal/solver"
)

// ---- fakes ----

type fakeRepo struct {
	cfgs  []domain.TenantConstraintConfig
	err   error
	calls atomic.Int32
}

func (f *fakeRepo) GetTenantConstraints(ctx context.Context, tenantID string) ([]domain.TenantConstraintConfig, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.TenantConstraintConfig, len(f.cfgs))
	for i, c := range f.cfgs {
		c.TenantID = tenantID
		out[i] = c
	}
	return out, nil
}

type fakeStore struct {
	mu   sync.Mutex
	data map[string]domain.HotelAllocation
	ttl  int
	err  error
}

func (s *fakeStore) Put(ctx context.Context, a domain.HotelAllocation, ttlSec int) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string]domain.HotelAllocation{}
	}
	s.data[a.ID] = a
	s.ttl = ttlSec
	return nil
}

func (s *fakeStore) Get(ctx context.Context, id string) (domain.HotelAllocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.data[id]
	if !ok {
		return domain.HotelAllocation{}, domain.ErrNotFound
	}
	return a, nil
}

type fakeWriter struct {
	templates []domain.ConstraintTemplate
	tenant    []domain.TenantConstraintConfig
	err       error
}

func (w *fakeWriter) UpsertTemplate(ctx context.Context, t domain.ConstraintTemplate) error {
	if w.err != nil {
		return w.err
	}
	w.templates = append(w.templates, t)
	return nil
}

func (w *fakeWriter) UpsertTenantConstraint(ctx context.Context, c domain.TenantConstraintConfig) error {
	if w.err != nil {
		return w.err
	}
	w.tenant = append(w.tenant, c)
	return nil
}

// ---- fixtures ----

func ptr[T any](v T) *T { return &v }

func day(d int) domain.Date { return domain.NewDate(2025, time.October, d) }

func enabled(codes ...solver.Code) []domain.TenantConstraintConfig {
	out := make([]domain.TenantConstraintConfig, 0, len(codes))
	for _, c := range codes {
		out = append(out, domain.TenantConstraintConfig{Code: string(c), Enabled: true})
	}
	return out
}

func hardAndOcean() []domain.TenantConstraintConfig {
	return enabled(solver.RoomTypeMatch, solver.NoDoubleBooking, solver.AccessibilityRequired,
		solver.SmokingPolicy, solver.PetPolicy, solver.VIPOceanView)
}

// twoRooms: one plain guest and one VIP who wants the ocean; both rooms fit both.
func twoRooms() domain.HotelAllocation {
	return domain.HotelAllocation{
		TenantID: "acme",
		Rooms: []domain.Room{
			{ID: "101", Number: "101", Type: domain.RoomDouble, Floor: 1, View: domain.ViewCity, PricePerNight: 120},
			{ID: "102", Number: "102", Type: domain.RoomDouble, Floor: 6, View: domain.ViewOcean, PricePerNight: 180},
		},
		Bookings: []domain.GuestBooking{
			{
				ID: "B1", Guest: domain.Guest{ID: "G1", Name: "Ana"},
				CheckIn: day(1), CheckOut: day(4), RequestedType: domain.RoomDouble,
			},
			{
				ID: "B2", Guest: domain.Guest{ID: "G2", Name: "Bo", VIP: true, LoyaltyTier: 3,
					Preferences: domain.Preferences{View: domain.ViewOcean}},
				CheckIn: day(1), CheckOut: day(4), RequestedType: domain.RoomDouble,
			},
		},
	}
}

func fixedSeed() uint64 { return 42 }
