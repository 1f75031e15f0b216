package domain

import (
	"fmt"
	"strings"
	"time"
)

type RoomType string

const (
	RoomSingle   RoomType = "single"
	RoomDouble   RoomType = "double"
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
)

type View string

const (
	ViewOcean     View = "ocean"
	ViewBeach     View = "beach"
	ViewCity      View = "city"
	ViewGarden    View = "garden"
	ViewCourtyard View = "courtyard"
)

type FloorPreference string

const (
	FloorAny    FloorPreference = ""
	FloorLow    FloorPreference = "low"
	FloorMedium FloorPreference = "medium"
	FloorHigh   FloorPreference = "high"
)

type Room struct {
	ID               string   `json:"id" validate:"required"`
	Number           string   `json:"number" validate:"required"`
	Type             RoomType `json:"type" validate:"required"`
	Floor            int      `json:"floor"`
	View             View     `json:"view,omitempty"`
	Accessible       bool     `json:"accessible"`
	SmokingAllowed   bool     `json:"smokingAllowed"`
	PetFriendly      bool     `json:"petFriendly"`
	HasBalcony       bool     `json:"hasBalcony"`
	HasKitchenette   bool     `json:"hasKitchenette"`
	ElevatorDistance int      `json:"elevatorDistance" validate:"gte=0"` // proxy for quietness
	PricePerNight    float64  `json:"pricePerNight" validate:"gte=0"`
}

type Preferences struct {
	Floor            FloorPreference `json:"floor,omitempty" validate:"omitempty,oneof=low medium high"`
	View             View            `json:"view,omitempty"`
	NeedsAccessible  bool            `json:"needsAccessible"`
	Smoking          bool            `json:"smoking"`
	Quiet            bool            `json:"quiet"`
	HasPet           bool            `json:"hasPet"`
	WantsBalcony     bool            `json:"wantsBalcony"`
	WantsKitchenette bool            `json:"wantsKitchenette"`
}

type Guest struct {
	ID          string      `json:"id" validate:"required"`
	Name        string      `json:"name,omitempty"`
	VIP         bool        `json:"vip"`
	LoyaltyTier int         `json:"loyaltyTier" validate:"gte=0"`
	Preferences Preferences `json:"preferences"`
	BudgetMax   *float64    `json:"budgetMax,omitempty" validate:"omitempty,gte=0"`
}

// GuestBooking is one stay. CheckOut is exclusive.
type GuestBooking struct {
	ID             string   `json:"id" validate:"required"`
	Guest          Guest    `json:"guest"`
	CheckIn        Date     `json:"checkIn"`
	CheckOut       Date     `json:"checkOut"`
	RequestedType  RoomType `json:"requestedType" validate:"required"`
	EarlyCheckIn   bool     `json:"earlyCheckIn"`
	LateCheckout   bool     `json:"lateCheckout"`
	AssignedRoomID *string  `json:"assignedRoomId,omitempty"`
}

// Overlaps reports whether the two stays share at least one night.
// Touching intervals (one checks out the day the other checks in) do not overlap.
func (b GuestBooking) Overlaps(o GuestBooking) bool {
	return b.CheckIn.Before(o.CheckOut) && b.CheckOut.After(o.CheckIn)
}

const dateLayout = "2006-01-02"

// Date is a calendar day serialized as YYYY-MM-DD.
type Date struct{ time.Time }

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }
func (d Date) String() string     { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	// accept full timestamps too, keep only the day
	if len(s) > len(dateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", s, err)
		}
		*d = NewDate(t.Year(), t.Month(), t.Day())
		return nil
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
