package redisad_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "hotel_allocation/internal/adapters/redis"
	"hotel_allocation/internal/domain"
)

func newStore(t *testing.T) (*redisad.ResultStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestResultStore_PutGet(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	roomID := "102"
	in := domain.HotelAllocation{
		ID:       "sol-1",
		TenantID: "t1",
		Rooms:    []domain.Room{{ID: "102", Number: "102", Type: domain.RoomDouble, View: domain.ViewOcean}},
		Bookings: []domain.GuestBooking{{
			ID:             "B2",
			Guest:          domain.Guest{ID: "G2", VIP: true},
			CheckIn:        domain.NewDate(2025, time.October, 1),
			CheckOut:       domain.NewDate(2025, time.October, 4),
			RequestedType:  domain.RoomDouble,
			AssignedRoomID: &roomID,
		}},
		Score:      &domain.HardSoftScore{Hard: 0, Soft: 100},
		Matches:    []domain.ConstraintMatch{{Code: "VIP_OCEAN_VIEW", Score: domain.HardSoftScore{Soft: 100}, BookingID: "B2"}},
		Iterations: 1000,
	}
	if err := store.Put(ctx, in, 60); err != nil {
		t.Fatalf("put: %v", err)
	}

	out, err := store.Get(ctx, "sol-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Score == nil || *out.Score != *in.Score || len(out.Matches) != 1 {
		t.Fatalf("unexpected solution: %+v", out)
	}
	b := out.Bookings[0]
	if b.AssignedRoomID == nil || *b.AssignedRoomID != "102" || !b.CheckOut.Equal(in.Bookings[0].CheckOut) {
		t.Fatalf("booking did not round trip: %+v", b)
	}
}

func TestResultStore_MissAndExpiry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, domain.HotelAllocation{ID: "short", TenantID: "t1"}, 10); err != nil {
		t.Fatalf("put: %v", err)
	}
	mr.FastForward(11 * time.Second)
	if _, err := store.Get(ctx, "short"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestResultStore_RejectsEmptyID(t *testing.T) {
	store, _ := newStore(t)
	if err := store.Put(context.Background(), domain.HotelAllocation{TenantID: "t1"}, 10); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
